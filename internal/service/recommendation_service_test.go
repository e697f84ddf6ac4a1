package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"moviematch-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairedCandidates_RanksByAveragePrediction(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userA := f.seedUser(t, "alice")
	userB := f.seedUser(t, "bob")
	f.seedMovie(t, "m1", []int{28})
	f.seedMovie(t, "m2", []int{28})
	f.seedMovie(t, "m3", []int{28})

	// m2 averages 4.5, m3 averages 3.0, m1 averages 1.0.
	f.oracle.SetScore(userA, "m1", 1.0)
	f.oracle.SetScore(userB, "m1", 1.0)
	f.oracle.SetScore(userA, "m2", 5.0)
	f.oracle.SetScore(userB, "m2", 4.0)
	f.oracle.SetScore(userA, "m3", 2.0)
	f.oracle.SetScore(userB, "m3", 4.0)

	candidates, err := f.recommendation.PairedCandidates(ctx, userA, userB, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"m2", "m3", "m1"}, candidates)
}

func TestPairedCandidates_ExcludesRatedByEitherUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userA := f.seedUser(t, "alice")
	userB := f.seedUser(t, "bob")
	f.seedMovie(t, "m1", []int{28})
	f.seedMovie(t, "m2", []int{28})
	f.seedMovie(t, "m3", []int{28})

	now := time.Now()
	require.NoError(t, f.factory.Ratings.Upsert(ctx, &entity.Rating{UserId: userA, MovieId: "m1", Rating: 4, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, f.factory.Ratings.Upsert(ctx, &entity.Rating{UserId: userB, MovieId: "m2", Rating: 3, CreatedAt: now, UpdatedAt: now}))

	candidates, err := f.recommendation.PairedCandidates(ctx, userA, userB, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"m3"}, candidates)
}

func TestPairedCandidates_GenreFilterAndCap(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userA := f.seedUser(t, "alice")
	userB := f.seedUser(t, "bob")

	for i := 0; i < 60; i++ {
		f.seedMovie(t, fmt.Sprintf("a%02d", i), []int{28})
	}
	f.seedMovie(t, "romance", []int{100})

	candidates, err := f.recommendation.PairedCandidates(ctx, userA, userB, []int{28})
	require.NoError(t, err)
	assert.Len(t, candidates, 50)
	assert.NotContains(t, candidates, "romance")

	seen := map[string]bool{}
	for _, id := range candidates {
		assert.False(t, seen[id], "duplicate candidate %s", id)
		seen[id] = true
	}
}

func TestPairedCandidates_EmptyPoolIsNotAnError(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userA := f.seedUser(t, "alice")
	userB := f.seedUser(t, "bob")

	candidates, err := f.recommendation.PairedCandidates(ctx, userA, userB, nil)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestSimilarityCandidates_ReturnsNeighborListVerbatim(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.oracle.SetNeighbors("seed", []string{"m5", "m2", "m9"})

	candidates, err := f.recommendation.SimilarityCandidates(ctx, "seed")
	require.NoError(t, err)
	assert.Equal(t, []string{"m5", "m2", "m9"}, candidates)
}

func TestSimilarityCandidates_UnknownSeedYieldsEmpty(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	candidates, err := f.recommendation.SimilarityCandidates(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestPersonalRecommendations_PrefersOverlapAndPopularity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userId := f.seedUser(t, "alice")

	// Rating history establishes a preference for genre 28.
	require.NoError(t, f.factory.Movies.Create(ctx, &entity.Movie{Id: "rated", GenreIds: []int{28}, Title: "Rated"}))
	now := time.Now()
	require.NoError(t, f.factory.Ratings.Upsert(ctx, &entity.Rating{UserId: userId, MovieId: "rated", Rating: 5, CreatedAt: now, UpdatedAt: now}))

	require.NoError(t, f.factory.Movies.Create(ctx, &entity.Movie{
		Id: "hit", Title: "Hit", GenreIds: []int{28}, Popularity: 90, VoteAverage: 8, VoteCount: 1000,
	}))
	require.NoError(t, f.factory.Movies.Create(ctx, &entity.Movie{
		Id: "other", Title: "Other", GenreIds: []int{100}, Popularity: 10, VoteAverage: 4, VoteCount: 10,
	}))

	result, err := f.recommendation.PersonalRecommendations(ctx, userId)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "hit", result[0])
	assert.NotContains(t, result, "rated")
}

func TestPersonalRecommendations_ZeroMaximaYieldZeroRatios(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userId := f.seedUser(t, "alice")

	// Every metric is zero across the pool; scoring must not divide by zero.
	require.NoError(t, f.factory.Movies.Create(ctx, &entity.Movie{Id: "m1", Title: "M1"}))
	require.NoError(t, f.factory.Movies.Create(ctx, &entity.Movie{Id: "m2", Title: "M2"}))

	result, err := f.recommendation.PersonalRecommendations(ctx, userId)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"m1", "m2"}, result)
}

func TestPersonalRecommendations_RespectsCap(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userId := f.seedUser(t, "alice")

	for i := 0; i < 30; i++ {
		require.NoError(t, f.factory.Movies.Create(ctx, &entity.Movie{
			Id: fmt.Sprintf("m%02d", i), Title: "M", GenreIds: []int{28}, Popularity: float64(i),
		}))
	}

	result, err := f.recommendation.PersonalRecommendations(ctx, userId)
	require.NoError(t, err)
	assert.Len(t, result, 20)
}
