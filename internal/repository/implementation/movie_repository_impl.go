package implementation

import (
	"context"
	"errors"

	"moviematch-be/internal/entity"
	"moviematch-be/internal/mapper"
	"moviematch-be/internal/model"
	"moviematch-be/internal/repository/contract"
	"moviematch-be/internal/repository/specification"

	"gorm.io/gorm"
)

type MovieRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MovieMapper
}

func NewMovieRepository(db *gorm.DB) contract.MovieRepository {
	return &MovieRepositoryImpl{
		db:     db,
		mapper: mapper.NewMovieMapper(),
	}
}

func (r *MovieRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MovieRepositoryImpl) Create(ctx context.Context, movie *entity.Movie) error {
	m := r.mapper.ToModel(movie)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*movie = *r.mapper.ToEntity(m)
	return nil
}

func (r *MovieRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.Movie, error) {
	var m model.Movie
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MovieRepositoryImpl) FindByIDs(ctx context.Context, ids []string) ([]*entity.Movie, error) {
	if len(ids) == 0 {
		return []*entity.Movie{}, nil
	}
	var models []*model.Movie
	query := r.applySpecifications(r.db.WithContext(ctx), specification.ByMovieIDs{IDs: ids})
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	// Restore request order; the candidate list order is significant.
	byId := make(map[string]*entity.Movie, len(models))
	for _, m := range models {
		byId[m.Id] = r.mapper.ToEntity(m)
	}
	movies := make([]*entity.Movie, 0, len(ids))
	for _, id := range ids {
		if movie, ok := byId[id]; ok {
			movies = append(movies, movie)
		}
	}
	return movies, nil
}

func (r *MovieRepositoryImpl) QueryByFilter(ctx context.Context, genreIds []int, excludeIds []string) ([]*entity.Movie, error) {
	var models []*model.Movie
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.HasAnyGenre{GenreIds: genreIds},
		specification.ExcludeMovieIDs{IDs: excludeIds},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MovieRepositoryImpl) FindPage(ctx context.Context, genreIds []int, limit, offset int) ([]*entity.Movie, error) {
	var models []*model.Movie
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.HasAnyGenre{GenreIds: genreIds},
		specification.ByPopularity{},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MovieRepositoryImpl) Search(ctx context.Context, title string, limit int) ([]*entity.Movie, error) {
	var models []*model.Movie
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.TitleLike{Title: title},
		specification.ByPopularity{},
		specification.Pagination{Limit: limit},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MovieRepositoryImpl) Sample(ctx context.Context, n int) ([]*entity.Movie, error) {
	var models []*model.Movie
	if err := r.db.WithContext(ctx).Order("RANDOM()").Limit(n).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MovieRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Movie{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
