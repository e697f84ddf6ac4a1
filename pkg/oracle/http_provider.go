package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
)

// HTTPProvider talks to the model-serving process over HTTP. Transient
// failures (connection errors, 5xx) are retried with exponential backoff;
// 4xx responses are not retried. Exhausted retries surface as ErrUnavailable.
type HTTPProvider struct {
	BaseURL    string
	MaxRetries int
	client     *http.Client
}

func NewHTTPProvider(baseURL string, requestTimeout time.Duration, maxRetries int) Provider {
	if baseURL == "" {
		baseURL = "http://localhost:8501"
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &HTTPProvider{
		BaseURL:    baseURL,
		MaxRetries: maxRetries,
		client:     &http.Client{Timeout: requestTimeout},
	}
}

type predictRequest struct {
	UserId  string `json:"user_id"`
	MovieId string `json:"movie_id"`
}

type predictResponse struct {
	Score float64 `json:"score"`
}

type neighborsResponse struct {
	MovieIds []string `json:"movie_ids"`
}

func (p *HTTPProvider) Predict(ctx context.Context, userId uuid.UUID, movieId string) (float64, error) {
	reqBody, err := json.Marshal(predictRequest{UserId: userId.String(), MovieId: movieId})
	if err != nil {
		return 0, err
	}

	body, err := p.postWithRetry(ctx, "/predict", reqBody)
	if err != nil {
		return 0, err
	}

	var resp predictResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("oracle predict: decode response: %w", err)
	}
	return resp.Score, nil
}

func (p *HTTPProvider) Neighbors(ctx context.Context, movieId string, k int) ([]string, error) {
	endpoint := fmt.Sprintf("/neighbors/%s?k=%d", movieId, k)
	body, err := p.getWithRetry(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var resp neighborsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("oracle neighbors: decode response: %w", err)
	}
	return resp.MovieIds, nil
}

func (p *HTTPProvider) postWithRetry(ctx context.Context, path string, reqBody []byte) ([]byte, error) {
	return p.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+path, bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
}

func (p *HTTPProvider) getWithRetry(ctx context.Context, path string) ([]byte, error) {
	return p.doWithRetry(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+path, nil)
	})
}

func (p *HTTPProvider) doWithRetry(ctx context.Context, newRequest func() (*http.Request, error)) ([]byte, error) {
	operation := func() ([]byte, error) {
		req, err := newRequest()
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		resp, err := p.client.Do(req)
		if err != nil {
			return nil, err // retryable
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("oracle returned %d: %s", resp.StatusCode, string(body))
		default:
			return nil, backoff.Permanent(fmt.Errorf("oracle returned %d: %s", resp.StatusCode, string(body)))
		}
	}

	body, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(uint(p.MaxRetries)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return body, nil
}
