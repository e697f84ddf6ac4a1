package service

import (
	"context"
	"testing"

	"moviematch-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRequest_CreatesMirroredPendingStates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")

	res, err := f.friends.SendRequest(ctx, alice, "bob")
	require.NoError(t, err)
	assert.Equal(t, bob, res.Uid)
	assert.Equal(t, string(entity.RelationOutgoingPending), res.State)

	fromSide, err := f.factory.Friendships.GetRelation(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, entity.RelationOutgoingPending, fromSide)

	toSide, err := f.factory.Friendships.GetRelation(ctx, bob, alice)
	require.NoError(t, err)
	assert.Equal(t, entity.RelationIncomingPending, toSide)
}

func TestSendRequest_Rejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.seedUser(t, "alice")
	f.seedUser(t, "bob")

	_, err := f.friends.SendRequest(ctx, alice, "alice")
	assert.ErrorIs(t, err, ErrSelfRequest)

	_, err = f.friends.SendRequest(ctx, alice, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.friends.SendRequest(ctx, alice, "bob")
	require.NoError(t, err)
	_, err = f.friends.SendRequest(ctx, alice, "bob")
	assert.ErrorIs(t, err, ErrRelationExists)
}

func TestRespond_AcceptMakesPeersBothWays(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")

	_, err := f.friends.SendRequest(ctx, alice, "bob")
	require.NoError(t, err)

	require.NoError(t, f.friends.Respond(ctx, bob, alice, true))

	for _, pair := range [][2]uuid.UUID{{alice, bob}, {bob, alice}} {
		relation, err := f.factory.Friendships.GetRelation(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.Equal(t, entity.RelationPeer, relation)
	}

	ok, err := f.friends.CanOpenSession(ctx, alice, bob)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRespond_DeclineRemovesRelation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")

	_, err := f.friends.SendRequest(ctx, alice, "bob")
	require.NoError(t, err)

	require.NoError(t, f.friends.Respond(ctx, bob, alice, false))

	relation, err := f.factory.Friendships.GetRelation(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, entity.RelationState(""), relation)
}

func TestRespond_OnlyPendingIncomingCanBeAnswered(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")

	// No request at all.
	assert.ErrorIs(t, f.friends.Respond(ctx, bob, alice, true), ErrNotFound)

	// The sender cannot answer their own request.
	_, err := f.friends.SendRequest(ctx, alice, "bob")
	require.NoError(t, err)
	assert.ErrorIs(t, f.friends.Respond(ctx, alice, bob, true), ErrNotFound)
}

func TestDeleteFriend(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	f.makePeers(t, alice, bob)

	require.NoError(t, f.friends.Delete(ctx, alice, bob))

	relation, err := f.factory.Friendships.GetRelation(ctx, bob, alice)
	require.NoError(t, err)
	assert.Equal(t, entity.RelationState(""), relation)

	assert.ErrorIs(t, f.friends.Delete(ctx, alice, bob), ErrNotFound)
}

func TestListFriends_ResolvesUsernames(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	carol := f.seedUser(t, "carol")
	f.makePeers(t, alice, bob)
	_, err := f.friends.SendRequest(ctx, alice, "carol")
	require.NoError(t, err)

	list, err := f.friends.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)

	byUid := map[uuid.UUID]string{}
	for _, fr := range list {
		byUid[fr.Uid] = fr.Username
	}
	assert.Equal(t, "bob", byUid[bob])
	assert.Equal(t, "carol", byUid[carol])
}

func TestSessionGatingTransitions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	f.makePeers(t, alice, bob)

	require.NoError(t, f.friends.MarkInSession(ctx, alice, bob))
	ok, err := f.friends.CanOpenSession(ctx, alice, bob)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.friends.MarkPeer(ctx, alice, bob))
	ok, err = f.friends.CanOpenSession(ctx, alice, bob)
	require.NoError(t, err)
	assert.True(t, ok)
}
