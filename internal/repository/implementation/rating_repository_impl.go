package implementation

import (
	"context"
	"errors"

	"moviematch-be/internal/entity"
	"moviematch-be/internal/mapper"
	"moviematch-be/internal/model"
	"moviematch-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewRatingRepository(db *gorm.DB) contract.RatingRepository {
	return &RatingRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *RatingRepositoryImpl) Upsert(ctx context.Context, rating *entity.Rating) error {
	m := r.mapper.RatingToModel(rating)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(m).Error
}

func (r *RatingRepositoryImpl) BulkInsert(ctx context.Context, ratings []*entity.Rating) error {
	if len(ratings) == 0 {
		return nil
	}
	models := make([]*model.Rating, len(ratings))
	for i, rating := range ratings {
		models[i] = r.mapper.RatingToModel(rating)
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(models).Error
}

func (r *RatingRepositoryImpl) Delete(ctx context.Context, userId uuid.UUID, movieId string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userId, movieId).
		Delete(&model.Rating{}).Error
}

func (r *RatingRepositoryImpl) GetRatedMovieIDs(ctx context.Context, userId uuid.UUID) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Where("user_id = ?", userId).
		Pluck("movie_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *RatingRepositoryImpl) GetRating(ctx context.Context, userId uuid.UUID, movieId string) (*entity.Rating, error) {
	var m model.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userId, movieId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.RatingToEntity(&m), nil
}
