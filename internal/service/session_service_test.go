package service

import (
	"context"
	"sync"
	"testing"

	"moviematch-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitVotes_FirstOverlapWins(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sessionId, userA, userB := f.seedPairedSession(t, "m1", "m2", "m3")

	state, err := f.sessions.SubmitVotes(ctx, sessionId, userA, []bool{true, false, true})
	require.NoError(t, err)
	assert.Equal(t, entity.SessionAwaitingVotes, state)

	state, err = f.sessions.SubmitVotes(ctx, sessionId, userB, []bool{true, true, false})
	require.NoError(t, err)
	assert.Equal(t, entity.SessionMatched, state)

	resultState, results, err := f.sessions.GetResults(ctx, sessionId, userA)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionMatched, resultState)
	assert.Equal(t, []string{"m1"}, results)
}

func TestSubmitVotes_ExhaustedWhenNoOverlap(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sessionId, userA, userB := f.seedPairedSession(t, "m1", "m2")

	_, err := f.sessions.SubmitVotes(ctx, sessionId, userA, []bool{false, false})
	require.NoError(t, err)

	state, err := f.sessions.SubmitVotes(ctx, sessionId, userB, []bool{false, false})
	require.NoError(t, err)
	assert.Equal(t, entity.SessionExhausted, state)

	_, results, err := f.sessions.GetResults(ctx, sessionId, userB)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSubmitVotes_PartialPassReopensRendezvous(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sessionId, userA, userB := f.seedPairedSession(t, "m1", "m2", "m3")

	_, err := f.sessions.SubmitVotes(ctx, sessionId, userA, []bool{false})
	require.NoError(t, err)

	state, err := f.sessions.SubmitVotes(ctx, sessionId, userB, []bool{false, false})
	require.NoError(t, err)
	assert.Equal(t, entity.SessionAwaitingVotes, state)

	// Both sides still have candidates left, so both go back to voting and
	// the rendezvous counter drops back to zero.
	session, err := f.sessions.GetSession(ctx, sessionId, userA)
	require.NoError(t, err)
	assert.Equal(t, entity.VoterVoting, session.Progress[userA].Status)
	assert.Equal(t, entity.VoterVoting, session.Progress[userB].Status)
	assert.Equal(t, 0, session.PendingVoters)
}

func TestOpenPairedSession_RequiresPeerRelation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userA := f.seedUser(t, "alice")
	userB := f.seedUser(t, "bob")
	f.seedMovie(t, "m1", []int{28})

	// No relation at all.
	_, err := f.sessions.OpenPairedSession(ctx, userA, userB, nil)
	assert.ErrorIs(t, err, ErrAlreadyInSession)

	// Pending is not enough either.
	require.NoError(t, f.factory.Friendships.SetPairStates(ctx, userA, userB,
		entity.RelationOutgoingPending, entity.RelationIncomingPending))
	_, err = f.sessions.OpenPairedSession(ctx, userA, userB, nil)
	assert.ErrorIs(t, err, ErrAlreadyInSession)

	// No session row was left behind.
	session, err := f.factory.Sessions.FindByParticipants(ctx, userA, userB)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestOpenPairedSession_MarksPairInSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, userA, userB := f.seedPairedSession(t, "m1")

	relation, err := f.factory.Friendships.GetRelation(ctx, userA, userB)
	require.NoError(t, err)
	assert.Equal(t, entity.RelationInSession, relation)

	// A second open while the first is alive is refused.
	_, err = f.sessions.OpenPairedSession(ctx, userA, userB, nil)
	assert.ErrorIs(t, err, ErrAlreadyInSession)
}

func TestSubmitVotes_IdempotentResubmission(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sessionId, userA, _ := f.seedPairedSession(t, "m1", "m2", "m3")

	votes := []bool{true, false}
	state1, err := f.sessions.SubmitVotes(ctx, sessionId, userA, votes)
	require.NoError(t, err)

	state2, err := f.sessions.SubmitVotes(ctx, sessionId, userA, votes)
	require.NoError(t, err)
	assert.Equal(t, state1, state2)

	session, err := f.sessions.GetSession(ctx, sessionId, userA)
	require.NoError(t, err)
	assert.Equal(t, 1, session.PendingVoters)
}

func TestSubmitVotes_RejectsShorterOrDivergentHistory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sessionId, userA, _ := f.seedPairedSession(t, "m1", "m2", "m3")

	_, err := f.sessions.SubmitVotes(ctx, sessionId, userA, []bool{true, false})
	require.NoError(t, err)

	// Shorter than what was already submitted.
	_, err = f.sessions.SubmitVotes(ctx, sessionId, userA, []bool{true})
	assert.ErrorIs(t, err, ErrInvalidVoteSequence)

	// Diverges on an already-submitted position.
	_, err = f.sessions.SubmitVotes(ctx, sessionId, userA, []bool{false, false, true})
	assert.ErrorIs(t, err, ErrInvalidVoteSequence)

	// Longer than the candidate list.
	_, err = f.sessions.SubmitVotes(ctx, sessionId, userA, []bool{true, false, true, true})
	assert.ErrorIs(t, err, ErrInvalidVoteSequence)

	// Prior state is untouched.
	session, err := f.sessions.GetSession(ctx, sessionId, userA)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, session.Progress[userA].Votes)
	assert.Equal(t, 1, session.PendingVoters)
}

func TestSubmitVotes_MatchingIsSymmetric(t *testing.T) {
	votesX := []bool{true, false, true, false}
	votesY := []bool{false, false, true, true}

	run := func(first, second []bool) []string {
		f := newFixture()
		ctx := context.Background()
		sessionId, userA, userB := f.seedPairedSession(t, "m1", "m2", "m3", "m4")

		_, err := f.sessions.SubmitVotes(ctx, sessionId, userA, first)
		require.NoError(t, err)
		_, err = f.sessions.SubmitVotes(ctx, sessionId, userB, second)
		require.NoError(t, err)

		_, results, err := f.sessions.GetResults(ctx, sessionId, userA)
		require.NoError(t, err)
		return results
	}

	assert.Equal(t, run(votesX, votesY), run(votesY, votesX))
}

func TestSubmitVotes_TerminalStateIsAbsorbing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sessionId, userA, userB := f.seedPairedSession(t, "m1", "m2")

	_, err := f.sessions.SubmitVotes(ctx, sessionId, userA, []bool{true, false})
	require.NoError(t, err)
	state, err := f.sessions.SubmitVotes(ctx, sessionId, userB, []bool{true, false})
	require.NoError(t, err)
	require.Equal(t, entity.SessionMatched, state)

	// Further submissions no longer change anything.
	state, err = f.sessions.SubmitVotes(ctx, sessionId, userA, []bool{true, true})
	require.NoError(t, err)
	assert.Equal(t, entity.SessionMatched, state)

	_, results, err := f.sessions.GetResults(ctx, sessionId, userA)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, results)
}

func TestGetResults_EmptyUnlessMatched(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sessionId, userA, _ := f.seedPairedSession(t, "m1", "m2")

	state, results, err := f.sessions.GetResults(ctx, sessionId, userA)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionAwaitingVotes, state)
	assert.Empty(t, results)
}

func TestCloseSession_IdempotentAndRevertsRelation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sessionId, userA, userB := f.seedPairedSession(t, "m1")

	require.NoError(t, f.sessions.CloseSession(ctx, sessionId, userA))

	relation, err := f.factory.Friendships.GetRelation(ctx, userA, userB)
	require.NoError(t, err)
	assert.Equal(t, entity.RelationPeer, relation)

	// Closing again, or closing an unknown id, still reports success.
	assert.NoError(t, f.sessions.CloseSession(ctx, sessionId, userA))
	assert.NoError(t, f.sessions.CloseSession(ctx, uuid.New(), userA))

	_, err = f.sessions.GetSession(ctx, sessionId, userA)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitVotes_UnknownSessionOrOutsider(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sessionId, _, _ := f.seedPairedSession(t, "m1")
	outsider := f.seedUser(t, "carol")

	_, err := f.sessions.SubmitVotes(ctx, uuid.New(), outsider, []bool{true})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.sessions.SubmitVotes(ctx, sessionId, outsider, []bool{true})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitVotes_ConcurrentSubmissionsAggregateOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sessionId, userA, userB := f.seedPairedSession(t, "m1", "m2", "m3")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := f.sessions.SubmitVotes(ctx, sessionId, userA, []bool{true, false, true})
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := f.sessions.SubmitVotes(ctx, sessionId, userB, []bool{true, true, false})
		assert.NoError(t, err)
	}()
	wg.Wait()

	session, err := f.sessions.GetSession(ctx, sessionId, userA)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionMatched, session.State)
	assert.Equal(t, []string{"m1"}, session.Results)
	assert.LessOrEqual(t, session.PendingVoters, len(session.Participants))
}

func TestMatchHistory_ReportsPeer(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userA := f.seedUser(t, "alice")
	userB := f.seedUser(t, "bob")

	require.NoError(t, f.factory.Matches.Create(ctx, &entity.MatchRecord{
		Id:        uuid.New(),
		SessionId: uuid.New(),
		UserA:     userA,
		UserB:     userB,
		MovieIds:  []string{"m1"},
	}))

	history, err := f.sessions.MatchHistory(ctx, userA)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, userB, history[0].PeerId)
	assert.Equal(t, []string{"m1"}, history[0].MovieIds)
}
