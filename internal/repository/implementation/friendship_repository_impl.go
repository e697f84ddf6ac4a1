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

type FriendshipRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewFriendshipRepository(db *gorm.DB) contract.FriendshipRepository {
	return &FriendshipRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *FriendshipRepositoryImpl) GetRelation(ctx context.Context, userId, friendId uuid.UUID) (entity.RelationState, error) {
	var m model.Friendship
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", userId, friendId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return entity.RelationState(m.State), nil
}

func (r *FriendshipRepositoryImpl) ListRelations(ctx context.Context, userId uuid.UUID) ([]*entity.Friendship, error) {
	var models []*model.Friendship
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).Find(&models).Error; err != nil {
		return nil, err
	}
	relations := make([]*entity.Friendship, len(models))
	for i, m := range models {
		relations[i] = r.mapper.FriendshipToEntity(m)
	}
	return relations, nil
}

// SetPairStates upserts both directed rows in one transaction so a reader
// never sees the pair half-updated.
func (r *FriendshipRepositoryImpl) SetPairStates(ctx context.Context, userId, friendId uuid.UUID, userSide, friendSide entity.RelationState) error {
	rows := []*model.Friendship{
		{UserId: userId, FriendId: friendId, State: string(userSide)},
		{UserId: friendId, FriendId: userId, State: string(friendSide)},
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "friend_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
			}).Create(row).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *FriendshipRepositoryImpl) DeletePair(ctx context.Context, userId, friendId uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND friend_id = ?", userId, friendId).
			Delete(&model.Friendship{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND friend_id = ?", friendId, userId).
			Delete(&model.Friendship{}).Error
	})
}
