package mapper

import (
	"moviematch-be/internal/entity"
	"moviematch-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:          u.Id,
		Username:    u.Username,
		Initialized: u.Initialized,
		DeviceToken: u.DeviceToken,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:          u.Id,
		Username:    u.Username,
		Initialized: u.Initialized,
		DeviceToken: u.DeviceToken,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (m *UserMapper) FriendshipToEntity(f *model.Friendship) *entity.Friendship {
	if f == nil {
		return nil
	}
	return &entity.Friendship{
		UserId:    f.UserId,
		FriendId:  f.FriendId,
		State:     entity.RelationState(f.State),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (m *UserMapper) FriendshipToModel(f *entity.Friendship) *model.Friendship {
	if f == nil {
		return nil
	}
	return &model.Friendship{
		UserId:    f.UserId,
		FriendId:  f.FriendId,
		State:     string(f.State),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (m *UserMapper) RatingToEntity(r *model.Rating) *entity.Rating {
	if r == nil {
		return nil
	}
	return &entity.Rating{
		UserId:    r.UserId,
		MovieId:   r.MovieId,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (m *UserMapper) RatingToModel(r *entity.Rating) *model.Rating {
	if r == nil {
		return nil
	}
	return &model.Rating{
		UserId:    r.UserId,
		MovieId:   r.MovieId,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
