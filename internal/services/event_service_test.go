package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRoundTrip(t *testing.T) {
	db := newTestDB(t)
	s := NewEventService(db, nil)
	ctx := context.Background()

	userID := "user-123"
	require.NoError(t, s.CreateEvent(ctx, "user_login", "info", "Signed in", &userID))
	require.NoError(t, s.CreateEvent(ctx, "goal_due", "warn", "Goal due", &userID))

	otherID := "user-456"
	require.NoError(t, s.CreateEvent(ctx, "user_login", "info", "Signed in", &otherID))

	events, err := s.GetRecentEventsForUser(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, event := range events {
		require.NotNil(t, event.UserID)
		assert.Equal(t, userID, *event.UserID)
	}
}

func TestEventLimit(t *testing.T) {
	db := newTestDB(t)
	s := NewEventService(db, nil)
	ctx := context.Background()

	userID := "user-123"
	for i := 0; i < 5; i++ {
		require.NoError(t, s.CreateEvent(ctx, "goal_created", "info", "Goal created", &userID))
	}

	events, err := s.GetRecentEventsForUser(ctx, userID, 3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestPruneOlderThan(t *testing.T) {
	db := newTestDB(t)
	s := NewEventService(db, nil)
	ctx := context.Background()

	userID := "user-123"
	require.NoError(t, s.CreateEvent(ctx, "user_login", "info", "Signed in", &userID))

	// Nothing is old enough yet.
	removed, err := s.PruneOlderThan(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, removed)

	// A future cutoff sweeps everything.
	removed, err = s.PruneOlderThan(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	events, err := s.GetRecentEventsForUser(ctx, userID, 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}
