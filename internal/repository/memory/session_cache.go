package memory

import (
	"context"
	"errors"
	"time"

	"moviematch-be/internal/entity"
	"moviematch-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionCache is a read-through cache in front of the session repository.
// Vote submission reads the session on every request; the cache keeps the hot
// path off the database between writes. Writes go straight through and
// refresh the cached copy; a version conflict evicts so the retry re-reads
// from the store. Assumes the per-session serialization done by the service
// layer (single writer per session per instance).
type SessionCache struct {
	inner contract.SessionRepository
	cache *cache.Cache
}

func NewSessionCache(inner contract.SessionRepository, ttl, purgePeriod time.Duration) contract.SessionRepository {
	return &SessionCache{
		inner: inner,
		cache: cache.New(ttl, purgePeriod),
	}
}

func (r *SessionCache) Create(ctx context.Context, session *entity.Session) error {
	if err := r.inner.Create(ctx, session); err != nil {
		return err
	}
	r.cache.Set(session.Id.String(), cloneSession(session), cache.DefaultExpiration)
	return nil
}

func (r *SessionCache) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	if x, found := r.cache.Get(id.String()); found {
		return cloneSession(x.(*entity.Session)), nil
	}
	session, err := r.inner.FindByID(ctx, id)
	if err != nil || session == nil {
		return session, err
	}
	r.cache.Set(id.String(), cloneSession(session), cache.DefaultExpiration)
	return session, nil
}

func (r *SessionCache) FindByParticipants(ctx context.Context, userA, userB uuid.UUID) (*entity.Session, error) {
	// Pair lookups only happen on open; not worth a second index.
	return r.inner.FindByParticipants(ctx, userA, userB)
}

func (r *SessionCache) Update(ctx context.Context, session *entity.Session) error {
	if err := r.inner.Update(ctx, session); err != nil {
		if errors.Is(err, contract.ErrVersionConflict) {
			r.cache.Delete(session.Id.String())
		}
		return err
	}
	r.cache.Set(session.Id.String(), cloneSession(session), cache.DefaultExpiration)
	return nil
}

func (r *SessionCache) Delete(ctx context.Context, id uuid.UUID) error {
	r.cache.Delete(id.String())
	return r.inner.Delete(ctx, id)
}

// cloneSession deep-copies so cache entries are never aliased by callers that
// mutate the session in place before Update.
func cloneSession(s *entity.Session) *entity.Session {
	clone := *s
	clone.Participants = append([]uuid.UUID(nil), s.Participants...)
	clone.Candidates = append([]string(nil), s.Candidates...)
	clone.Results = append([]string(nil), s.Results...)
	clone.Progress = make(map[uuid.UUID]*entity.ParticipantProgress, len(s.Progress))
	for uid, p := range s.Progress {
		clone.Progress[uid] = &entity.ParticipantProgress{
			Status: p.Status,
			Votes:  append([]bool(nil), p.Votes...),
		}
	}
	return &clone
}
