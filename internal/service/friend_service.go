package service

import (
	"context"
	"fmt"

	"moviematch-be/internal/dto"
	"moviematch-be/internal/entity"
	"moviematch-be/internal/pkg/logger"
	"moviematch-be/internal/repository/unitofwork"
	"moviematch-be/pkg/events"
	pktNats "moviematch-be/pkg/nats"

	"github.com/google/uuid"
)

type IFriendService interface {
	// SendRequest creates a pending relation toward the user owning the
	// given username.
	SendRequest(ctx context.Context, fromId uuid.UUID, username string) (*dto.FriendResponse, error)
	// Respond accepts or declines a pending incoming request. Accepting
	// makes the pair peers; declining removes the relation.
	Respond(ctx context.Context, userId, requesterId uuid.UUID, accept bool) error
	Delete(ctx context.Context, userId, friendId uuid.UUID) error
	List(ctx context.Context, userId uuid.UUID) ([]*dto.FriendResponse, error)

	// Session gating. The session engine is the only caller of these three.
	CanOpenSession(ctx context.Context, userId, friendId uuid.UUID) (bool, error)
	MarkInSession(ctx context.Context, userId, friendId uuid.UUID) error
	MarkPeer(ctx context.Context, userId, friendId uuid.UUID) error
}

type friendService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  *pktNats.Publisher
	logger     logger.ILogger
}

func NewFriendService(
	uowFactory unitofwork.RepositoryFactory,
	publisher *pktNats.Publisher,
	log logger.ILogger,
) IFriendService {
	return &friendService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *friendService) SendRequest(ctx context.Context, fromId uuid.UUID, username string) (*dto.FriendResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	target, err := uow.UserRepository().FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNotFound
	}
	if target.Id == fromId {
		return nil, ErrSelfRequest
	}

	existing, err := uow.FriendshipRepository().GetRelation(ctx, fromId, target.Id)
	if err != nil {
		return nil, err
	}
	if existing != "" {
		return nil, ErrRelationExists
	}

	err = uow.FriendshipRepository().SetPairStates(ctx, fromId, target.Id,
		entity.RelationOutgoingPending, entity.RelationIncomingPending)
	if err != nil {
		return nil, err
	}

	sender, err := uow.UserRepository().FindByID(ctx, fromId)
	if err != nil {
		return nil, err
	}
	senderName := ""
	if sender != nil {
		senderName = sender.Username
	}
	s.publishEvent(ctx, events.NewFriendRequestEvent(fromId, senderName, target.Id))

	return &dto.FriendResponse{
		Uid:      target.Id,
		Username: target.Username,
		State:    string(entity.RelationOutgoingPending),
	}, nil
}

func (s *friendService) Respond(ctx context.Context, userId, requesterId uuid.UUID, accept bool) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	relation, err := uow.FriendshipRepository().GetRelation(ctx, userId, requesterId)
	if err != nil {
		return err
	}
	if relation != entity.RelationIncomingPending {
		return ErrNotFound
	}

	if !accept {
		return uow.FriendshipRepository().DeletePair(ctx, userId, requesterId)
	}

	err = uow.FriendshipRepository().SetPairStates(ctx, userId, requesterId,
		entity.RelationPeer, entity.RelationPeer)
	if err != nil {
		return err
	}

	accepter, err := uow.UserRepository().FindByID(ctx, userId)
	if err != nil {
		return err
	}
	accepterName := ""
	if accepter != nil {
		accepterName = accepter.Username
	}
	s.publishEvent(ctx, events.NewFriendAcceptedEvent(userId, accepterName, requesterId))
	return nil
}

func (s *friendService) Delete(ctx context.Context, userId, friendId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	relation, err := uow.FriendshipRepository().GetRelation(ctx, userId, friendId)
	if err != nil {
		return err
	}
	if relation == "" {
		return ErrNotFound
	}
	return uow.FriendshipRepository().DeletePair(ctx, userId, friendId)
}

func (s *friendService) List(ctx context.Context, userId uuid.UUID) ([]*dto.FriendResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	relations, err := uow.FriendshipRepository().ListRelations(ctx, userId)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(relations))
	for _, rel := range relations {
		ids = append(ids, rel.FriendId)
	}
	users, err := uow.UserRepository().FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	usernames := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		usernames[u.Id] = u.Username
	}

	result := make([]*dto.FriendResponse, 0, len(relations))
	for _, rel := range relations {
		result = append(result, &dto.FriendResponse{
			Uid:      rel.FriendId,
			Username: usernames[rel.FriendId],
			State:    string(rel.State),
		})
	}
	return result, nil
}

func (s *friendService) CanOpenSession(ctx context.Context, userId, friendId uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	relation, err := uow.FriendshipRepository().GetRelation(ctx, userId, friendId)
	if err != nil {
		return false, err
	}
	return relation == entity.RelationPeer, nil
}

func (s *friendService) MarkInSession(ctx context.Context, userId, friendId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.FriendshipRepository().SetPairStates(ctx, userId, friendId,
		entity.RelationInSession, entity.RelationInSession)
}

func (s *friendService) MarkPeer(ctx context.Context, userId, friendId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.FriendshipRepository().SetPairStates(ctx, userId, friendId,
		entity.RelationPeer, entity.RelationPeer)
}

func (s *friendService) publishEvent(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("FriendService", fmt.Sprintf("Failed to publish %s event", event.EventType()), map[string]interface{}{
			"error": err.Error(),
		})
	}
}
