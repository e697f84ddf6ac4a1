package contract

import (
	"context"
	"errors"

	"moviematch-be/internal/entity"

	"github.com/google/uuid"
)

// ErrVersionConflict is returned by Update when the session row changed since
// it was read. Callers re-read and recompute; the conflict never reaches the
// API surface.
var ErrVersionConflict = errors.New("session version conflict")

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	// FindByParticipants finds the session for a pair in either order.
	FindByParticipants(ctx context.Context, userA, userB uuid.UUID) (*entity.Session, error)
	// Update persists the session if and only if the stored version still
	// matches session.Version, then bumps it. Returns ErrVersionConflict
	// otherwise.
	Update(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MatchRepository interface {
	Create(ctx context.Context, record *entity.MatchRecord) error
	FindByUser(ctx context.Context, userId uuid.UUID) ([]*entity.MatchRecord, error)
}
