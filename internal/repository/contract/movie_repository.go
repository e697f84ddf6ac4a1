package contract

import (
	"context"

	"moviematch-be/internal/entity"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id string) (*entity.Movie, error)
	// FindByIDs preserves the order of the requested ids; unknown ids are
	// silently skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*entity.Movie, error)
	// QueryByFilter returns the catalog minus excludeIds, optionally
	// restricted to movies carrying at least one of the genre ids. Both
	// filters empty means the whole catalog.
	QueryByFilter(ctx context.Context, genreIds []int, excludeIds []string) ([]*entity.Movie, error)
	// FindPage returns a popularity-sorted page with an optional genre filter.
	FindPage(ctx context.Context, genreIds []int, limit, offset int) ([]*entity.Movie, error)
	// Search matches titles case-insensitively, most popular first.
	Search(ctx context.Context, title string, limit int) ([]*entity.Movie, error)
	// Sample returns up to n random movies (the "starter" deck).
	Sample(ctx context.Context, n int) ([]*entity.Movie, error)
	Count(ctx context.Context) (int64, error)
}
