package dto

import (
	"github.com/google/uuid"
)

type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
}

type RegisterUserResponse struct {
	Id       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Token    string    `json:"token"`
}

type InitialRating struct {
	MovieId string  `json:"movie_id" validate:"required"`
	Rating  float64 `json:"rating" validate:"required,gte=0.5,lte=5"`
}

// InitializeUserRequest carries the cold-start ratings collected during
// onboarding. Submitting it flips the user's initialized flag.
type InitializeUserRequest struct {
	Ratings []InitialRating `json:"ratings" validate:"required,min=1,dive"`
}

type DeviceTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type UserProfileResponse struct {
	Id          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Initialized bool      `json:"initialized"`
}
