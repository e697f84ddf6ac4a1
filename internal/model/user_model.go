package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username    string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Initialized bool      `gorm:"default:false"`
	DeviceToken *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// Friendship is one directed half of a pairwise relation, keyed by
// (user_id, friend_id). A sparse adjacency representation: no row, no relation.
type Friendship struct {
	UserId    uuid.UUID `gorm:"type:uuid;primaryKey"`
	FriendId  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	State     string    `gorm:"type:varchar(32);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Friendship) TableName() string {
	return "friendships"
}
