package contract

import (
	"context"

	"moviematch-be/internal/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error)
	SetInitialized(ctx context.Context, id uuid.UUID) error
	SetDeviceToken(ctx context.Context, id uuid.UUID, token string) error
}
