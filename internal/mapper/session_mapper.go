package mapper

import (
	"encoding/json"
	"fmt"

	"moviematch-be/internal/entity"
	"moviematch-be/internal/model"

	"github.com/google/uuid"
)

// progressColumn is the jsonb shape of the per-participant voting progress,
// keyed by participant uuid string.
type progressColumn map[string]progressEntry

type progressEntry struct {
	Status string `json:"status"`
	Votes  []bool `json:"votes"`
}

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session) (*entity.Session, error) {
	if s == nil {
		return nil, nil
	}

	var candidates []string
	if err := json.Unmarshal(s.Candidates, &candidates); err != nil {
		return nil, fmt.Errorf("unmarshal session candidates: %w", err)
	}

	var rawProgress progressColumn
	if err := json.Unmarshal(s.Progress, &rawProgress); err != nil {
		return nil, fmt.Errorf("unmarshal session progress: %w", err)
	}

	progress := make(map[uuid.UUID]*entity.ParticipantProgress, len(rawProgress))
	for key, p := range rawProgress {
		uid, err := uuid.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("parse participant id %q: %w", key, err)
		}
		votes := p.Votes
		if votes == nil {
			votes = []bool{}
		}
		progress[uid] = &entity.ParticipantProgress{
			Status: entity.VoterStatus(p.Status),
			Votes:  votes,
		}
	}

	var results []string
	if len(s.Results) > 0 {
		if err := json.Unmarshal(s.Results, &results); err != nil {
			return nil, fmt.Errorf("unmarshal session results: %w", err)
		}
	}

	return &entity.Session{
		Id:            s.Id,
		Participants:  []uuid.UUID{s.UserA, s.UserB},
		Candidates:    candidates,
		Progress:      progress,
		PendingVoters: s.PendingVoters,
		State:         entity.SessionState(s.State),
		Results:       results,
		Version:       s.Version,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}, nil
}

func (m *SessionMapper) ToModel(s *entity.Session) (*model.Session, error) {
	if s == nil {
		return nil, nil
	}
	if len(s.Participants) != 2 {
		return nil, fmt.Errorf("session requires exactly two participants, got %d", len(s.Participants))
	}

	candidates, err := json.Marshal(s.Candidates)
	if err != nil {
		return nil, fmt.Errorf("marshal session candidates: %w", err)
	}

	rawProgress := make(progressColumn, len(s.Progress))
	for uid, p := range s.Progress {
		votes := p.Votes
		if votes == nil {
			votes = []bool{}
		}
		rawProgress[uid.String()] = progressEntry{
			Status: string(p.Status),
			Votes:  votes,
		}
	}
	progress, err := json.Marshal(rawProgress)
	if err != nil {
		return nil, fmt.Errorf("marshal session progress: %w", err)
	}

	results := s.Results
	if results == nil {
		results = []string{}
	}
	rawResults, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("marshal session results: %w", err)
	}

	return &model.Session{
		Id:            s.Id,
		UserA:         s.Participants[0],
		UserB:         s.Participants[1],
		Candidates:    candidates,
		Progress:      progress,
		PendingVoters: s.PendingVoters,
		State:         string(s.State),
		Results:       rawResults,
		Version:       s.Version,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}, nil
}

func (m *SessionMapper) MatchRecordToEntity(r *model.MatchRecord) (*entity.MatchRecord, error) {
	if r == nil {
		return nil, nil
	}
	var movieIds []string
	if err := json.Unmarshal(r.MovieIds, &movieIds); err != nil {
		return nil, fmt.Errorf("unmarshal match movie ids: %w", err)
	}
	return &entity.MatchRecord{
		Id:        r.Id,
		SessionId: r.SessionId,
		UserA:     r.UserA,
		UserB:     r.UserB,
		MovieIds:  movieIds,
		CreatedAt: r.CreatedAt,
	}, nil
}

func (m *SessionMapper) MatchRecordToModel(r *entity.MatchRecord) (*model.MatchRecord, error) {
	if r == nil {
		return nil, nil
	}
	movieIds, err := json.Marshal(r.MovieIds)
	if err != nil {
		return nil, fmt.Errorf("marshal match movie ids: %w", err)
	}
	return &model.MatchRecord{
		Id:        r.Id,
		SessionId: r.SessionId,
		UserA:     r.UserA,
		UserB:     r.UserB,
		MovieIds:  movieIds,
		CreatedAt: r.CreatedAt,
	}, nil
}
