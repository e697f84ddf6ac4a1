package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateMovie_UpsertAndZeroDeletes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userId := f.seedUser(t, "alice")
	f.seedMovie(t, "m1", []int{28})

	require.NoError(t, f.movies.Rate(ctx, userId, "m1", 3.5))

	details, err := f.movies.Details(ctx, userId, "m1")
	require.NoError(t, err)
	require.NotNil(t, details.UserRating)
	assert.Equal(t, 3.5, *details.UserRating)

	// Overwrite, then remove with a zero rating.
	require.NoError(t, f.movies.Rate(ctx, userId, "m1", 5))
	require.NoError(t, f.movies.Rate(ctx, userId, "m1", 0))

	details, err = f.movies.Details(ctx, userId, "m1")
	require.NoError(t, err)
	assert.Nil(t, details.UserRating)
}

func TestRateMovie_UnknownMovie(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userId := f.seedUser(t, "alice")

	assert.ErrorIs(t, f.movies.Rate(ctx, userId, "missing", 4), ErrNotFound)
}

func TestSessionMovies_PagesThroughCandidates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ids := make([]string, 0, 25)
	for i := 0; i < 25; i++ {
		ids = append(ids, fmt.Sprintf("m%02d", i))
	}
	sessionId, userA, _ := f.seedPairedSession(t, ids...)

	page0, err := f.movies.SessionMovies(ctx, sessionId, userA, 0)
	require.NoError(t, err)
	assert.Len(t, page0.Movies, 10)
	require.NotNil(t, page0.NextPageKey)
	assert.Equal(t, 1, *page0.NextPageKey)
	assert.Equal(t, "m00", page0.Movies[0].Id)

	page2, err := f.movies.SessionMovies(ctx, sessionId, userA, 2)
	require.NoError(t, err)
	assert.Len(t, page2.Movies, 5)
	assert.Nil(t, page2.NextPageKey)

	// Past the end is an empty page, not an error.
	page3, err := f.movies.SessionMovies(ctx, sessionId, userA, 3)
	require.NoError(t, err)
	assert.Empty(t, page3.Movies)
}

func TestSessionMovies_OutsiderGetsNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sessionId, _, _ := f.seedPairedSession(t, "m1")
	outsider := f.seedUser(t, "carol")

	_, err := f.movies.SessionMovies(ctx, sessionId, outsider, 0)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.movies.SessionMovies(ctx, uuid.New(), outsider, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBrowseAndSearch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedUser(t, "alice")

	for i := 0; i < 20; i++ {
		f.seedMovie(t, fmt.Sprintf("m%02d", i), []int{28})
	}

	page, err := f.movies.Browse(ctx, []int{28}, 1)
	require.NoError(t, err)
	assert.Len(t, page, 15)

	results, err := f.movies.Search(ctx, "Movie m01")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "m01", results[0].Id)
}
