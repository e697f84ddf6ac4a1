package model

import (
	"time"

	"github.com/google/uuid"
)

type Rating struct {
	UserId    uuid.UUID `gorm:"type:uuid;primaryKey"`
	MovieId   string    `gorm:"type:varchar(32);primaryKey"`
	Rating    float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Rating) TableName() string {
	return "ratings"
}
