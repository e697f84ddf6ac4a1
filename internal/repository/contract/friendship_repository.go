package contract

import (
	"context"

	"moviematch-be/internal/entity"

	"github.com/google/uuid"
)

// FriendshipRepository stores the sparse per-user relation map. GetRelation
// returns ("", nil) when no relation row exists. SetPairStates writes both
// directed halves in one transaction so the pair can never be observed
// half-updated.
type FriendshipRepository interface {
	GetRelation(ctx context.Context, userId, friendId uuid.UUID) (entity.RelationState, error)
	ListRelations(ctx context.Context, userId uuid.UUID) ([]*entity.Friendship, error)
	SetPairStates(ctx context.Context, userId, friendId uuid.UUID, userSide, friendSide entity.RelationState) error
	DeletePair(ctx context.Context, userId, friendId uuid.UUID) error
}
