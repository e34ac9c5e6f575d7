package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/model"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func profile(handle string, followers int64) *model.Profile {
	return &model.Profile{Username: handle, FollowersCount: followers}
}

func TestMemory_GetMiss(t *testing.T) {
	c := NewMemory(time.Hour, 0)

	p, err := c.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestMemory_HitWithinTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemory(time.Hour, 0, WithClock(clock.Now))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "natgeo", profile("natgeo", 42)))
	clock.Advance(59 * time.Minute)

	p, err := c.Get(ctx, "NatGeo")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(42), p.FollowersCount)
}

func TestMemory_KeyedByRequestedHandle(t *testing.T) {
	c := NewMemory(time.Hour, 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "Old_Name", profile("new_name", 9)))

	p, err := c.Get(ctx, "old_name")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "new_name", p.Username)

	p, err = c.Get(ctx, "new_name")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestMemory_ExpiredEntryIsEvicted(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemory(time.Hour, 0, WithClock(clock.Now))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "natgeo", profile("natgeo", 42)))
	clock.Advance(time.Hour)

	p, err := c.Get(ctx, "natgeo")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Equal(t, 0, c.Len())
}

func TestMemory_SetOverwritesAndRefreshes(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemory(time.Hour, 0, WithClock(clock.Now))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "natgeo", profile("natgeo", 1)))
	clock.Advance(50 * time.Minute)
	require.NoError(t, c.Set(ctx, "natgeo", profile("natgeo", 2)))
	clock.Advance(50 * time.Minute)

	p, err := c.Get(ctx, "natgeo")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(2), p.FollowersCount)
}

func TestMemory_EvictsOldestAtCapacity(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemory(time.Hour, 2, WithClock(clock.Now))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", profile("a", 1)))
	clock.Advance(time.Second)
	require.NoError(t, c.Set(ctx, "b", profile("b", 2)))
	clock.Advance(time.Second)
	require.NoError(t, c.Set(ctx, "c", profile("c", 3)))

	assert.Equal(t, 2, c.Len())

	p, _ := c.Get(ctx, "a")
	assert.Nil(t, p, "oldest entry should be evicted")

	p, _ = c.Get(ctx, "c")
	assert.NotNil(t, p)
}

func TestMemory_OverwriteAtCapacityDoesNotEvict(t *testing.T) {
	c := NewMemory(time.Hour, 2)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", profile("a", 1)))
	require.NoError(t, c.Set(ctx, "b", profile("b", 2)))
	require.NoError(t, c.Set(ctx, "b", profile("b", 3)))

	assert.Equal(t, 2, c.Len())
	p, _ := c.Get(ctx, "a")
	assert.NotNil(t, p)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	c := NewMemory(time.Hour, 50)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h := fmt.Sprintf("user%d", (i*j)%80)
				_ = c.Set(ctx, h, profile(h, int64(j)))
				_, _ = c.Get(ctx, h)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}
