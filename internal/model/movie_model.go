package model

import (
	"time"

	"gorm.io/datatypes"
)

type Movie struct {
	Id          string         `gorm:"type:varchar(32);primaryKey"`
	Title       string         `gorm:"type:varchar(512);not null;index"`
	Overview    string         `gorm:"type:text"`
	PosterPath  string         `gorm:"type:text"`
	ReleaseDate string         `gorm:"type:varchar(32)"`
	GenreIds    datatypes.JSON `gorm:"type:jsonb"`
	Popularity  float64        `gorm:"index"`
	VoteAverage float64
	VoteCount   int
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Movie) TableName() string {
	return "movies"
}
