package unitofwork

import (
	"context"

	"moviematch-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	MovieRepository() contract.MovieRepository
	RatingRepository() contract.RatingRepository
	FriendshipRepository() contract.FriendshipRepository
	SessionRepository() contract.SessionRepository
	MatchRepository() contract.MatchRepository
	NotificationRepository() contract.NotificationRepository
}
