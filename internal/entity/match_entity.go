package entity

import (
	"time"

	"github.com/google/uuid"
)

// MatchRecord is the archived outcome of a session that reached a mutual
// match. Written by the match-history consumer, never updated.
type MatchRecord struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	UserA     uuid.UUID
	UserB     uuid.UUID
	MovieIds  []string
	CreatedAt time.Time
}
