package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Session stores the candidate list, per-participant progress and results as
// jsonb columns. The pair of participant ids is flattened to two uuid columns
// so an open session for a pair can be found with an indexed lookup.
// Version backs the optimistic concurrency check in the repository.
type Session struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserA         uuid.UUID      `gorm:"type:uuid;not null;index:idx_sessions_pair"`
	UserB         uuid.UUID      `gorm:"type:uuid;not null;index:idx_sessions_pair"`
	Candidates    datatypes.JSON `gorm:"type:jsonb;not null"`
	Progress      datatypes.JSON `gorm:"type:jsonb;not null"`
	PendingVoters int            `gorm:"not null;default:0"`
	State         string         `gorm:"type:varchar(32);not null"`
	Results       datatypes.JSON `gorm:"type:jsonb"`
	Version       int            `gorm:"not null;default:0"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
}

func (Session) TableName() string {
	return "sessions"
}

type MatchRecord struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserA     uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserB     uuid.UUID      `gorm:"type:uuid;not null;index"`
	MovieIds  datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (MatchRecord) TableName() string {
	return "match_records"
}
