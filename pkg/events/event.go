package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "FRIEND_REQUEST").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeFriendRequest  = "FRIEND_REQUEST"
	TypeFriendAccepted = "FRIEND_ACCEPTED"
	TypeSessionStarted = "SESSION_STARTED"
	TypeSessionMatched = "SESSION_MATCHED"
)

// NewFriendRequestEvent is emitted when a user sends a friend request; the
// notification worker turns it into a push to the receiving user.
func NewFriendRequestEvent(fromId uuid.UUID, fromUsername string, toId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeFriendRequest,
		Data: map[string]interface{}{
			"from_id":       fromId.String(),
			"from_username": fromUsername,
			"to_id":         toId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewFriendAcceptedEvent(byId uuid.UUID, byUsername string, toId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeFriendAccepted,
		Data: map[string]interface{}{
			"from_id":       byId.String(),
			"from_username": byUsername,
			"to_id":         toId.String(),
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionStartedEvent is emitted when a session opens so the invited
// peer learns about it even while offline.
func NewSessionStartedEvent(sessionId, fromId, toId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeSessionStarted,
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"from_id":    fromId.String(),
			"to_id":      toId.String(),
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionMatchedEvent is emitted once per participant when a session
// reaches a mutual match.
func NewSessionMatchedEvent(sessionId, toId uuid.UUID, movieIds []string) Event {
	return BaseEvent{
		Type: TypeSessionMatched,
		Data: map[string]interface{}{
			"session_id": sessionId.String(),
			"to_id":      toId.String(),
			"movie_ids":  movieIds,
		},
		OccurredAt: time.Now(),
	}
}
