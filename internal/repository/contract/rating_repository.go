package contract

import (
	"context"

	"moviematch-be/internal/entity"

	"github.com/google/uuid"
)

type RatingRepository interface {
	// Upsert inserts or overwrites a single rating.
	Upsert(ctx context.Context, rating *entity.Rating) error
	// BulkInsert stores a user's initial rating set.
	BulkInsert(ctx context.Context, ratings []*entity.Rating) error
	Delete(ctx context.Context, userId uuid.UUID, movieId string) error
	// GetRatedMovieIDs returns the ids of every movie the user has rated.
	// A user with no rating history yields an empty slice, not an error.
	GetRatedMovieIDs(ctx context.Context, userId uuid.UUID) ([]string, error)
	GetRating(ctx context.Context, userId uuid.UUID, movieId string) (*entity.Rating, error)
}
