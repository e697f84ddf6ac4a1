package dto

import (
	"github.com/google/uuid"
)

type SendFriendRequestRequest struct {
	Username string `json:"username" validate:"required"`
}

type RespondFriendRequestRequest struct {
	Accept bool `json:"accept"`
}

type FriendResponse struct {
	Uid      uuid.UUID `json:"uid"`
	Username string    `json:"username"`
	State    string    `json:"state"`
}
