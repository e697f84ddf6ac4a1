package oracle

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUnavailable is returned once retries against the oracle service are
// exhausted. Callers fail the surrounding operation cleanly instead of
// leaving partial state behind.
var ErrUnavailable = errors.New("recommendation oracle unavailable")

// Provider is the trained rating-prediction/similarity model, consumed as an
// opaque service. Training and serving live elsewhere.
type Provider interface {
	// Predict estimates how userId would rate movieId.
	Predict(ctx context.Context, userId uuid.UUID, movieId string) (float64, error)
	// Neighbors returns up to k movies most similar to movieId, best first.
	Neighbors(ctx context.Context, movieId string, k int) ([]string, error)
}
