package service

import (
	"context"
	"testing"

	"moviematch-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_IssuesToken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.users.Register(ctx, &dto.RegisterUserRequest{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Username)
	assert.NotEmpty(t, res.Token)

	_, err = f.users.Register(ctx, &dto.RegisterUserRequest{Username: "alice"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestInitialize_StoresRatingsAndFlipsFlag(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userId := f.seedUser(t, "alice")
	f.seedMovie(t, "m1", []int{28})
	f.seedMovie(t, "m2", []int{28})

	err := f.users.Initialize(ctx, userId, &dto.InitializeUserRequest{
		Ratings: []dto.InitialRating{
			{MovieId: "m1", Rating: 4},
			{MovieId: "m2", Rating: 2.5},
		},
	})
	require.NoError(t, err)

	profile, err := f.users.GetProfile(ctx, userId)
	require.NoError(t, err)
	assert.True(t, profile.Initialized)

	rated, err := f.factory.Ratings.GetRatedMovieIDs(ctx, userId)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"m1", "m2"}, rated)
}

func TestSetDeviceToken_UnknownUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userId := f.seedUser(t, "alice")

	require.NoError(t, f.users.SetDeviceToken(ctx, userId, "token-123"))

	user, err := f.factory.Users.FindByID(ctx, userId)
	require.NoError(t, err)
	require.NotNil(t, user.DeviceToken)
	assert.Equal(t, "token-123", *user.DeviceToken)
}
