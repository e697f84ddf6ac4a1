package oracle

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// StaticProvider serves predictions and neighbor lists from fixed tables.
// Used by tests and by local development without a model server. Unknown
// (user, movie) pairs predict the fallback score; unknown seeds have no
// neighbors.
type StaticProvider struct {
	mu        sync.RWMutex
	scores    map[string]float64
	neighbors map[string][]string
	Fallback  float64
}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		scores:    make(map[string]float64),
		neighbors: make(map[string][]string),
		Fallback:  2.5,
	}
}

func (p *StaticProvider) SetScore(userId uuid.UUID, movieId string, score float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scores[userId.String()+"/"+movieId] = score
}

func (p *StaticProvider) SetNeighbors(movieId string, neighborIds []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.neighbors[movieId] = append([]string(nil), neighborIds...)
}

func (p *StaticProvider) Predict(ctx context.Context, userId uuid.UUID, movieId string) (float64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if score, ok := p.scores[userId.String()+"/"+movieId]; ok {
		return score, nil
	}
	return p.Fallback, nil
}

func (p *StaticProvider) Neighbors(ctx context.Context, movieId string, k int) ([]string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	neighborIds := p.neighbors[movieId]
	if len(neighborIds) > k {
		neighborIds = neighborIds[:k]
	}
	return append([]string(nil), neighborIds...), nil
}
