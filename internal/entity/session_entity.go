package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionState is the lifecycle state of a voting session. Matched and
// exhausted are terminal.
type SessionState string

const (
	SessionAwaitingVotes SessionState = "awaiting_votes"
	SessionMatched       SessionState = "matched"
	SessionExhausted     SessionState = "exhausted"
)

// Terminal reports whether no further transition may leave the state.
func (s SessionState) Terminal() bool {
	return s == SessionMatched || s == SessionExhausted
}

// VoterStatus is a participant's position in the voting rendezvous.
type VoterStatus string

const (
	VoterVoting  VoterStatus = "voting"
	VoterWaiting VoterStatus = "waiting"
)

// ParticipantProgress tracks one participant inside a session. Votes is a
// positional prefix of the session candidate list: Votes[i] is the decision
// on Candidates[i]. It only ever grows.
type ParticipantProgress struct {
	Status VoterStatus
	Votes  []bool
}

// Session is a bounded voting round between exactly two users over a shared,
// immutable candidate list.
type Session struct {
	Id            uuid.UUID
	Participants  []uuid.UUID
	Candidates    []string
	Progress      map[uuid.UUID]*ParticipantProgress
	PendingVoters int
	State         SessionState
	Results       []string
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasParticipant reports whether uid is one of the two session members.
func (s *Session) HasParticipant(uid uuid.UUID) bool {
	for _, p := range s.Participants {
		if p == uid {
			return true
		}
	}
	return false
}

// FullyVoted reports whether every participant has voted on every candidate.
func (s *Session) FullyVoted() bool {
	for _, p := range s.Participants {
		progress, ok := s.Progress[p]
		if !ok || len(progress.Votes) < len(s.Candidates) {
			return false
		}
	}
	return true
}
