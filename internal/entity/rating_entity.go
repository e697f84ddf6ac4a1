package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rating is one user's rating of one movie. A rating submitted as 0 removes
// the row instead of storing a zero.
type Rating struct {
	UserId    uuid.UUID
	MovieId   string
	Rating    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
