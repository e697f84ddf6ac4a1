package service

import (
	"context"
	"testing"

	"moviematch-be/internal/config"
	"moviematch-be/internal/entity"
	"moviematch-be/internal/repository/memory"
	"moviematch-be/pkg/oracle"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		PairedListCap:   50,
		SimilarityK:     20,
		PersonalListCap: 20,
		MoviesPageSize:  15,
		SessionPageSize: 10,
	}
}

// fixture wires the service stack against in-memory stores and a static
// oracle.
type fixture struct {
	factory        *memory.Factory
	oracle         *oracle.StaticProvider
	friends        IFriendService
	recommendation IRecommendationService
	sessions       ISessionService
	movies         IMovieService
	users          IUserService
}

func newFixture() *fixture {
	factory := memory.NewFactory()
	provider := oracle.NewStaticProvider()
	cfg := testSessionConfig()

	friends := NewFriendService(factory, nil, nopLogger{})
	recommendation := NewRecommendationService(factory, provider, cfg)
	sessions := NewSessionService(factory.Sessions, factory, recommendation, friends, nil, nil, nopLogger{})
	movies := NewMovieService(factory, factory.Sessions, cfg)
	users := NewUserService(factory, "test-secret", nopLogger{})

	return &fixture{
		factory:        factory,
		oracle:         provider,
		friends:        friends,
		recommendation: recommendation,
		sessions:       sessions,
		movies:         movies,
		users:          users,
	}
}

func (f *fixture) seedUser(t *testing.T, username string) uuid.UUID {
	t.Helper()
	user := &entity.User{Id: uuid.New(), Username: username}
	require.NoError(t, f.factory.Users.Create(context.Background(), user))
	return user.Id
}

func (f *fixture) seedMovie(t *testing.T, id string, genreIds []int) {
	t.Helper()
	require.NoError(t, f.factory.Movies.Create(context.Background(), &entity.Movie{
		Id:       id,
		Title:    "Movie " + id,
		GenreIds: genreIds,
	}))
}

func (f *fixture) makePeers(t *testing.T, a, b uuid.UUID) {
	t.Helper()
	err := f.factory.Friendships.SetPairStates(context.Background(), a, b,
		entity.RelationPeer, entity.RelationPeer)
	require.NoError(t, err)
}

// seedPairedSession prepares two peer users, three movies and an open
// session between them, returning the session id and participants.
func (f *fixture) seedPairedSession(t *testing.T, movieIds ...string) (uuid.UUID, uuid.UUID, uuid.UUID) {
	t.Helper()
	userA := f.seedUser(t, "alice")
	userB := f.seedUser(t, "bob")
	f.makePeers(t, userA, userB)
	for _, id := range movieIds {
		f.seedMovie(t, id, []int{28})
	}

	sessionId, err := f.sessions.OpenPairedSession(context.Background(), userA, userB, nil)
	require.NoError(t, err)
	return sessionId, userA, userB
}
