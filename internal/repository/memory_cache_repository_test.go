package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRepository(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	repo := NewMemoryCacheRepository(time.Minute, clock)
	ctx := context.Background()

	_, err := repo.GetCache(ctx, "weekly")
	assert.ErrorIs(t, err, ErrCacheMiss)

	payload := []byte(`{"new_clients":1}`)
	require.NoError(t, repo.SetCache(ctx, "weekly", payload, time.Minute))
	require.NoError(t, repo.SetCache(ctx, "monthly", payload, time.Hour))
	payload[0] = 'x'

	got, err := repo.GetCache(ctx, "weekly")
	require.NoError(t, err)
	assert.JSONEq(t, `{"new_clients":1}`, string(got))

	now = now.Add(2 * time.Minute)
	removed, err := repo.CleanExpiredCache(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.GetCache(ctx, "monthly")
	assert.NoError(t, err)

	require.NoError(t, repo.InvalidateCache(ctx, "monthly"))
	_, err = repo.GetCache(ctx, "monthly")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, repo.SetCache(ctx, "trend:30", payload, time.Hour))
	require.NoError(t, repo.InvalidateAll(ctx))
	_, err = repo.GetCache(ctx, "trend:30")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
