package store

import (
	"context"
	"testing"

	"game-score-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_DecrementAvailableStopsAtZero(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.InsertCode(ctx, &models.Code{Code: "ab12", Available: 2, NbPlayers: 2}))

	require.NoError(t, s.DecrementAvailable(ctx, "ab12"))
	require.NoError(t, s.DecrementAvailable(ctx, "ab12"))

	err := s.DecrementAvailable(ctx, "ab12")
	assert.ErrorIs(t, err, ErrConditionFailed)

	c, err := s.GetCode(ctx, "ab12")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Available)
}

func TestMemoryStore_DecrementUnknownCode(t *testing.T) {
	err := NewMemoryStore().DecrementAvailable(context.Background(), "zzzz")
	assert.ErrorIs(t, err, ErrConditionFailed)
}

func TestMemoryStore_InsertCodeIsInsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.InsertCode(ctx, &models.Code{Code: "ab12", Label: "first", Available: 1}))
	err := s.InsertCode(ctx, &models.Code{Code: "ab12", Label: "second", Available: 5})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	c, err := s.GetCode(ctx, "ab12")
	require.NoError(t, err)
	assert.Equal(t, "first", c.Label)
	assert.Equal(t, 1, c.Available)
}

func TestMemoryStore_CreateUserIsInsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateUser(ctx, &models.User{Pseudo: "bob", CreatedAt: "2026-01-01T00:00:00Z"}))
	err := s.CreateUser(ctx, &models.User{Pseudo: "bob", CreatedAt: "2026-02-01T00:00:00Z"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "2026-01-01T00:00:00Z", users[0].CreatedAt)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.GetCode(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := s.CodeExists(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryStore_ScansAreStrictlyBetweenBounds(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for i, at := range []int64{100, 200, 300} {
		require.NoError(t, s.PutScoreEvent(ctx, &models.ScoreEvent{ID: string(rune('a' + i)), CreatedAt: at}))
		require.NoError(t, s.PutRedemption(ctx, &models.Redemption{ID: string(rune('a' + i)), CreatedAt: at}))
	}

	events, err := s.ScanScoreEvents(ctx, 100, 300)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(200), events[0].CreatedAt)

	redemptions, err := s.ScanRedemptions(ctx, 99, 301)
	require.NoError(t, err)
	assert.Len(t, redemptions, 3)
}
