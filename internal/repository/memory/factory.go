package memory

import (
	"context"
	"sync"

	"moviematch-be/internal/model"
	"moviematch-be/internal/repository/contract"
	"moviematch-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Factory is an in-memory unitofwork.RepositoryFactory. All units of work
// share the same backing stores; Begin/Commit/Rollback are no-ops since there
// is nothing transactional to coordinate.
type Factory struct {
	Users         *UserRepository
	Movies        *MovieRepository
	Ratings       *RatingRepository
	Friendships   *FriendshipRepository
	Sessions      *SessionRepository
	Matches       *MatchRepository
	Notifications *NotificationRepository
}

func NewFactory() *Factory {
	return &Factory{
		Users:         NewUserRepository(),
		Movies:        NewMovieRepository(),
		Ratings:       NewRatingRepository(),
		Friendships:   NewFriendshipRepository(),
		Sessions:      NewSessionRepository(),
		Matches:       NewMatchRepository(),
		Notifications: NewNotificationRepository(),
	}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{factory: f}
}

type unitOfWork struct {
	factory *Factory
}

func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) UserRepository() contract.UserRepository {
	return u.factory.Users
}

func (u *unitOfWork) MovieRepository() contract.MovieRepository {
	return u.factory.Movies
}

func (u *unitOfWork) RatingRepository() contract.RatingRepository {
	return u.factory.Ratings
}

func (u *unitOfWork) FriendshipRepository() contract.FriendshipRepository {
	return u.factory.Friendships
}

func (u *unitOfWork) SessionRepository() contract.SessionRepository {
	return u.factory.Sessions
}

func (u *unitOfWork) MatchRepository() contract.MatchRepository {
	return u.factory.Matches
}

func (u *unitOfWork) NotificationRepository() contract.NotificationRepository {
	return u.factory.Notifications
}

type NotificationRepository struct {
	mu            sync.RWMutex
	notifications []*model.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	clone := *notification
	r.notifications = append(r.notifications, &clone)
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var hits []*model.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].UserID == userId {
			clone := *r.notifications[i]
			hits = append(hits, &clone)
		}
	}
	if offset >= len(hits) {
		return []*model.Notification{}, nil
	}
	hits = hits[offset:]
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			n.IsRead = true
		}
	}
	return nil
}
