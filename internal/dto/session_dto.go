package dto

import (
	"github.com/google/uuid"
)

type OpenPairedSessionRequest struct {
	FriendId uuid.UUID `json:"friend_id" validate:"required"`
	GenreIds []int     `json:"genre_ids"`
}

type OpenSimilaritySessionRequest struct {
	FriendId    uuid.UUID `json:"friend_id" validate:"required"`
	SeedMovieId string    `json:"seed_movie_id" validate:"required"`
}

type OpenSessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
}

type SubmitVotesRequest struct {
	// Votes is the participant's full decision history so far, positionally
	// aligned to the session candidate list, not a delta.
	Votes []bool `json:"votes" validate:"required,min=1"`
}

type SessionStateResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	State     string    `json:"state"`
	// Status is the caller's own voter status within the session.
	Status string `json:"status,omitempty"`
}

type SessionResultsResponse struct {
	State    string   `json:"state"`
	MovieIds []string `json:"movie_ids"`
}

// MatchFoundMessage is the in-process bus payload recorded into match history.
type MatchFoundMessage struct {
	SessionId uuid.UUID `json:"session_id"`
	UserA     uuid.UUID `json:"user_a"`
	UserB     uuid.UUID `json:"user_b"`
	MovieIds  []string  `json:"movie_ids"`
}

type MatchHistoryResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	PeerId    uuid.UUID `json:"peer_id"`
	MovieIds  []string  `json:"movie_ids"`
	CreatedAt string    `json:"created_at"`
}
