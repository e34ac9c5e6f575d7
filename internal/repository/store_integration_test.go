//go:build integration

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
)

// Run with: DATABASE_URL=postgres://... go test -tags integration ./internal/repository/
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := NewDB(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, InitSchema(ctx, db))
	return db
}

func uniqueHandle() string {
	return "it_" + uuid.NewString()[:8]
}

func TestStore_GetOrCreateUserIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	s := NewStore(db, false)
	ctx := context.Background()
	handle := uniqueHandle()

	first, err := s.GetOrCreateUser(ctx, handle)
	require.NoError(t, err)
	second, err := s.GetOrCreateUser(ctx, handle)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, handle, second.Username)
}

func TestStore_CreateRoastWritesOutboxEvent(t *testing.T) {
	db := openTestDB(t)
	s := NewStore(db, true)
	ctx := context.Background()

	u, err := s.GetOrCreateUser(ctx, uniqueHandle())
	require.NoError(t, err)

	rs, err := s.CreateRoast(ctx, u, "your grid is a beige fever dream", true)
	require.NoError(t, err)

	var (
		eventType string
		payload   []byte
	)
	err = db.QueryRowContext(ctx, `
		SELECT event_type, payload FROM outbox_events
		WHERE aggregate_type = $1 AND aggregate_id = $2
	`, model.AggregateRoast, rs.ID).Scan(&eventType, &payload)
	require.NoError(t, err)
	assert.Equal(t, model.EventRoastCreate, eventType)

	var ev model.RoastCreatedEvent
	require.NoError(t, json.Unmarshal(payload, &ev))
	assert.Equal(t, rs.ID, ev.RoastID)
	assert.Equal(t, u.Username, ev.Username)
	assert.True(t, ev.IsMockData)
}

func TestStore_CreateRoastWithoutEvents(t *testing.T) {
	db := openTestDB(t)
	s := NewStore(db, false)
	ctx := context.Background()

	u, err := s.GetOrCreateUser(ctx, uniqueHandle())
	require.NoError(t, err)
	rs, err := s.CreateRoast(ctx, u, "roast", false)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM outbox_events WHERE aggregate_id = $1`, rs.ID).Scan(&n))
	assert.Zero(t, n)
}

func TestStore_CountsAndRecentRoasts(t *testing.T) {
	db := openTestDB(t)
	s := NewStore(db, false)
	ctx := context.Background()

	before, err := s.Totals(ctx)
	require.NoError(t, err)

	u, err := s.GetOrCreateUser(ctx, uniqueHandle())
	require.NoError(t, err)
	for _, text := range []string{"one", "two", "three"} {
		_, err := s.CreateRoast(ctx, u, text, false)
		require.NoError(t, err)
	}

	n, err := s.CountRoasts(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	recent, err := s.RecentRoasts(ctx, u.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.False(t, recent[0].CreatedAt.Before(recent[1].CreatedAt))

	after, err := s.Totals(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, after.TotalUsers, before.TotalUsers+1)
	assert.GreaterOrEqual(t, after.TotalRoasts, before.TotalRoasts+3)
}
