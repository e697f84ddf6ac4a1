package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"moviematch-be/internal/dto"
	"moviematch-be/internal/entity"
	"moviematch-be/internal/pkg/logger"
	"moviematch-be/internal/repository/contract"
	"moviematch-be/internal/repository/unitofwork"
	"moviematch-be/pkg/events"
	pktNats "moviematch-be/pkg/nats"

	"github.com/google/uuid"
)

type ISessionService interface {
	// OpenPairedSession starts a session ranked by averaged predicted
	// ratings for the pair. The relation must be peer.
	OpenPairedSession(ctx context.Context, userId, friendId uuid.UUID, genreIds []int) (uuid.UUID, error)
	// OpenSimilaritySession starts a session seeded by one movie, with the
	// oracle's neighbor list as candidates.
	OpenSimilaritySession(ctx context.Context, userId, friendId uuid.UUID, seedMovieId string) (uuid.UUID, error)
	// SubmitVotes replaces the caller's full vote history and runs
	// aggregation once both participants have a pending batch.
	SubmitVotes(ctx context.Context, sessionId, userId uuid.UUID, votes []bool) (entity.SessionState, error)
	GetSession(ctx context.Context, sessionId, userId uuid.UUID) (*entity.Session, error)
	// GetResults returns the matched movie ids, empty unless the session
	// state is matched.
	GetResults(ctx context.Context, sessionId, userId uuid.UUID) (entity.SessionState, []string, error)
	// CloseSession tears the session down and reverts the pair relation to
	// peer. Closing an unknown or already-closed session reports success.
	CloseSession(ctx context.Context, sessionId, userId uuid.UUID) error
	// MatchHistory lists the caller's archived mutual matches, newest first.
	MatchHistory(ctx context.Context, userId uuid.UUID) ([]*dto.MatchHistoryResponse, error)
}

type sessionService struct {
	sessions       contract.SessionRepository
	uowFactory     unitofwork.RepositoryFactory
	recommendation IRecommendationService
	friendService  IFriendService
	publisher      *pktNats.Publisher
	matchPublisher IPublisherService
	logger         logger.ILogger

	// Per-session locks serialize submit-vote-and-maybe-aggregate within
	// this instance; the version check on Update covers other instances.
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewSessionService(
	sessions contract.SessionRepository,
	uowFactory unitofwork.RepositoryFactory,
	recommendation IRecommendationService,
	friendService IFriendService,
	publisher *pktNats.Publisher,
	matchPublisher IPublisherService,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		sessions:       sessions,
		uowFactory:     uowFactory,
		recommendation: recommendation,
		friendService:  friendService,
		publisher:      publisher,
		matchPublisher: matchPublisher,
		logger:         log,
		locks:          map[uuid.UUID]*sync.Mutex{},
	}
}

func (s *sessionService) lockFor(sessionId uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[sessionId]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionId] = lock
	}
	return lock
}

func (s *sessionService) releaseLock(sessionId uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, sessionId)
}

func (s *sessionService) OpenPairedSession(ctx context.Context, userId, friendId uuid.UUID, genreIds []int) (uuid.UUID, error) {
	return s.open(ctx, userId, friendId, func() ([]string, error) {
		return s.recommendation.PairedCandidates(ctx, userId, friendId, genreIds)
	})
}

func (s *sessionService) OpenSimilaritySession(ctx context.Context, userId, friendId uuid.UUID, seedMovieId string) (uuid.UUID, error) {
	return s.open(ctx, userId, friendId, func() ([]string, error) {
		return s.recommendation.SimilarityCandidates(ctx, seedMovieId)
	})
}

func (s *sessionService) open(ctx context.Context, userId, friendId uuid.UUID, selectCandidates func() ([]string, error)) (uuid.UUID, error) {
	ok, err := s.friendService.CanOpenSession(ctx, userId, friendId)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, ErrAlreadyInSession
	}

	// Candidate generation happens before anything is persisted so an
	// oracle failure leaves no partial session behind.
	candidates, err := selectCandidates()
	if err != nil {
		return uuid.Nil, err
	}

	now := time.Now()
	session := &entity.Session{
		Id:           uuid.New(),
		Participants: []uuid.UUID{userId, friendId},
		Candidates:   candidates,
		Progress: map[uuid.UUID]*entity.ParticipantProgress{
			userId:   {Status: entity.VoterVoting, Votes: []bool{}},
			friendId: {Status: entity.VoterVoting, Votes: []bool{}},
		},
		PendingVoters: 0,
		State:         entity.SessionAwaitingVotes,
		Results:       []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return uuid.Nil, err
	}

	if err := s.friendService.MarkInSession(ctx, userId, friendId); err != nil {
		// Roll the session back rather than strand the pair half-opened.
		if delErr := s.sessions.Delete(ctx, session.Id); delErr != nil {
			s.logger.Error("SessionService", "Failed to roll back session after relation update failure", map[string]interface{}{
				"session_id": session.Id, "error": delErr.Error(),
			})
		}
		return uuid.Nil, err
	}

	s.publishEvent(ctx, events.NewSessionStartedEvent(session.Id, userId, friendId))

	s.logger.Info("SessionService", "Session opened", map[string]interface{}{
		"session_id": session.Id, "candidates": len(candidates),
	})
	return session.Id, nil
}

func (s *sessionService) SubmitVotes(ctx context.Context, sessionId, userId uuid.UUID, votes []bool) (entity.SessionState, error) {
	lock := s.lockFor(sessionId)
	lock.Lock()
	defer lock.Unlock()

	for {
		session, err := s.sessions.FindByID(ctx, sessionId)
		if err != nil {
			return "", err
		}
		if session == nil || !session.HasParticipant(userId) {
			return "", ErrNotFound
		}
		if session.State.Terminal() {
			return session.State, nil
		}

		progress := session.Progress[userId]
		if len(votes) > len(session.Candidates) {
			return "", ErrInvalidVoteSequence
		}
		if len(votes) < len(progress.Votes) {
			return "", ErrInvalidVoteSequence
		}
		for i, prior := range progress.Votes {
			if votes[i] != prior {
				return "", ErrInvalidVoteSequence
			}
		}

		// An identical resubmission while already counted is a no-op, which
		// keeps the operation idempotent and the rendezvous counter honest.
		if len(votes) == len(progress.Votes) && progress.Status == entity.VoterWaiting {
			return session.State, nil
		}

		progress.Votes = append([]bool(nil), votes...)
		if progress.Status == entity.VoterVoting {
			progress.Status = entity.VoterWaiting
			session.PendingVoters++
		}

		matchedNow := false
		if session.PendingVoters >= len(session.Participants) {
			s.aggregate(session)
			matchedNow = session.State == entity.SessionMatched
		}

		err = s.sessions.Update(ctx, session)
		if errors.Is(err, contract.ErrVersionConflict) {
			// Another instance got in between the read and the write.
			// Re-read and redo the whole submission.
			continue
		}
		if err != nil {
			return "", err
		}

		if matchedNow {
			s.onMatched(ctx, session)
		}
		return session.State, nil
	}
}

// aggregate runs the rendezvous outcome on a session both participants have
// voted into. It mutates the session in place.
func (s *sessionService) aggregate(session *entity.Session) {
	a := session.Progress[session.Participants[0]].Votes
	b := session.Progress[session.Participants[1]].Votes

	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	matched := make([]string, 0)
	for i := 0; i < n; i++ {
		if a[i] && b[i] {
			matched = append(matched, session.Candidates[i])
		}
	}

	switch {
	case len(matched) > 0:
		// First pass with any mutual accept ends the session; we do not
		// wait for both sides to exhaust the list.
		session.State = entity.SessionMatched
		session.Results = matched
	case session.FullyVoted():
		session.State = entity.SessionExhausted
	default:
		// Reopen the rendezvous for whoever still has candidates left.
		for _, uid := range session.Participants {
			p := session.Progress[uid]
			if len(p.Votes) < len(session.Candidates) {
				p.Status = entity.VoterVoting
				session.PendingVoters--
			}
		}
	}
}

func (s *sessionService) onMatched(ctx context.Context, session *entity.Session) {
	for _, uid := range session.Participants {
		s.publishEvent(ctx, events.NewSessionMatchedEvent(session.Id, uid, session.Results))
	}

	if s.matchPublisher != nil {
		payload, err := json.Marshal(dto.MatchFoundMessage{
			SessionId: session.Id,
			UserA:     session.Participants[0],
			UserB:     session.Participants[1],
			MovieIds:  session.Results,
		})
		if err == nil {
			if err := s.matchPublisher.Publish(ctx, payload); err != nil {
				s.logger.Warn("SessionService", "Failed to publish match history message", map[string]interface{}{
					"session_id": session.Id, "error": err.Error(),
				})
			}
		}
	}

	s.logger.Info("SessionService", "Session matched", map[string]interface{}{
		"session_id": session.Id, "results": len(session.Results),
	})
}

func (s *sessionService) publishEvent(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("SessionService", fmt.Sprintf("Failed to publish %s event", event.EventType()), map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *sessionService) GetSession(ctx context.Context, sessionId, userId uuid.UUID) (*entity.Session, error) {
	session, err := s.sessions.FindByID(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.HasParticipant(userId) {
		return nil, ErrNotFound
	}
	return session, nil
}

func (s *sessionService) GetResults(ctx context.Context, sessionId, userId uuid.UUID) (entity.SessionState, []string, error) {
	session, err := s.GetSession(ctx, sessionId, userId)
	if err != nil {
		return "", nil, err
	}
	if session.State != entity.SessionMatched {
		return session.State, []string{}, nil
	}
	return session.State, session.Results, nil
}

func (s *sessionService) CloseSession(ctx context.Context, sessionId, userId uuid.UUID) error {
	lock := s.lockFor(sessionId)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.sessions.FindByID(ctx, sessionId)
	if err != nil {
		return err
	}
	if session == nil {
		// Already closed. Idempotent by contract.
		return nil
	}
	if !session.HasParticipant(userId) {
		return ErrNotFound
	}

	if err := s.friendService.MarkPeer(ctx, session.Participants[0], session.Participants[1]); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, sessionId); err != nil {
		return err
	}
	s.releaseLock(sessionId)

	s.logger.Info("SessionService", "Session closed", map[string]interface{}{"session_id": sessionId})
	return nil
}

func (s *sessionService) MatchHistory(ctx context.Context, userId uuid.UUID) ([]*dto.MatchHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	records, err := uow.MatchRepository().FindByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MatchHistoryResponse, 0, len(records))
	for _, rec := range records {
		peer := rec.UserA
		if peer == userId {
			peer = rec.UserB
		}
		result = append(result, &dto.MatchHistoryResponse{
			SessionId: rec.SessionId,
			PeerId:    peer,
			MovieIds:  rec.MovieIds,
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}
