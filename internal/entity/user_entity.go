package entity

import (
	"time"

	"github.com/google/uuid"
)

// RelationState is the pairwise relationship between two users as seen from
// one side of the pair. Absence of a row means no relation at all.
type RelationState string

const (
	RelationOutgoingPending RelationState = "outgoing_pending"
	RelationIncomingPending RelationState = "incoming_pending"
	RelationPeer            RelationState = "peer"
	RelationInSession       RelationState = "in_session"
)

type User struct {
	Id          uuid.UUID
	Username    string
	Initialized bool
	DeviceToken *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Friendship is one directed half of a pairwise relation. Both halves are
// always written together so the two rows stay mirror images
// (outgoing_pending on one side implies incoming_pending on the other).
type Friendship struct {
	UserId    uuid.UUID
	FriendId  uuid.UUID
	State     RelationState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Friend is the outward view of a relation, resolved with the peer's username.
type Friend struct {
	Uid      uuid.UUID
	Username string
	State    RelationState
}
