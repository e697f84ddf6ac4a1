package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPProvider_Predict(t *testing.T) {
	userId := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict", r.URL.Path)

		var req struct {
			UserId  string `json:"user_id"`
			MovieId string `json:"movie_id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, userId.String(), req.UserId)
		assert.Equal(t, "m42", req.MovieId)

		json.NewEncoder(w).Encode(map[string]float64{"score": 4.2})
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Second, 3)
	score, err := p.Predict(context.Background(), userId, "m42")
	require.NoError(t, err)
	assert.Equal(t, 4.2, score)
}

func TestHTTPProvider_Neighbors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/neighbors/m42", r.URL.Path)
		require.Equal(t, "5", r.URL.Query().Get("k"))
		json.NewEncoder(w).Encode(map[string][]string{"movie_ids": {"m1", "m2"}})
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Second, 3)
	neighbors, err := p.Neighbors(context.Background(), "m42", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2"}, neighbors)
}

func TestHTTPProvider_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]float64{"score": 3.0})
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Second, 3)
	score, err := p.Predict(context.Background(), uuid.New(), "m1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, score)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestHTTPProvider_ExhaustedRetriesSurfaceUnavailable(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Second, 2)
	_, err := p.Predict(context.Background(), uuid.New(), "m1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestHTTPProvider_ClientErrorsAreNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, time.Second, 3)
	_, err := p.Predict(context.Background(), uuid.New(), "m1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
