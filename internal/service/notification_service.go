package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"moviematch-be/internal/model"
	"moviematch-be/internal/pkg/logger"
	"moviematch-be/internal/repository/contract"
	"moviematch-be/pkg/events"
	pktNats "moviematch-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
}

type NotificationService struct {
	repo       contract.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo contract.NotificationRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	// The NATS subject carries the stream prefix ("events.FRIEND_REQUEST").
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	toId, err := uuid.Parse(stringField(payload, "to_id"))
	if err != nil {
		s.logger.Warn("NotificationService", "Event without a valid to_id, skipping", map[string]interface{}{"type": typeCode})
		return nil
	}

	title, message := renderNotification(typeCode, payload)
	if title == "" {
		// Unknown event type, nothing to deliver.
		return nil
	}

	notif := model.Notification{
		ID:        uuid.New(),
		UserID:    toId,
		TypeCode:  typeCode,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if actorId, err := uuid.Parse(stringField(payload, "from_id")); err == nil {
		notif.ActorID = &actorId
	}
	if meta, err := json.Marshal(payload); err == nil {
		notif.Metadata = datatypes.JSON(meta)
	}

	if err := s.repo.Create(ctx, &notif); err != nil {
		s.logger.Error("NotificationService", "Failed to store notification", map[string]interface{}{"error": err.Error()})
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(toId, notif)
	}
	return nil
}

func renderNotification(eventType string, payload map[string]interface{}) (title, message string) {
	switch eventType {
	case events.TypeFriendRequest:
		return "New friend request", fmt.Sprintf("%s wants to match movies with you", stringField(payload, "from_username"))
	case events.TypeFriendAccepted:
		return "Friend request accepted", fmt.Sprintf("%s accepted your friend request", stringField(payload, "from_username"))
	case events.TypeSessionStarted:
		return "Session started", "A friend started a matching session with you"
	case events.TypeSessionMatched:
		return "It's a match!", "You and your friend agreed on a movie"
	default:
		return "", ""
	}
}

func stringField(payload map[string]interface{}, key string) string {
	v, _ := payload[key].(string)
	return v
}
