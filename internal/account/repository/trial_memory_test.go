package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrialMemoryRepository_ConsumeIncrements(t *testing.T) {
	repo := NewTrialMemoryRepository()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		usage, err := repo.Consume(ctx, "user-1", 3)
		require.NoError(t, err)
		assert.Equal(t, i, usage.Used)
		assert.Equal(t, 3, usage.Limit)
	}

	usage, err := repo.Consume(ctx, "user-1", 3)
	require.NoError(t, err)
	// Past the limit the store keeps counting; enforcement lives elsewhere.
	assert.Equal(t, 4, usage.Used)
}

func TestTrialMemoryRepository_UsersIsolated(t *testing.T) {
	repo := NewTrialMemoryRepository()
	ctx := context.Background()

	_, err := repo.Consume(ctx, "user-1", 3)
	require.NoError(t, err)

	usage, err := repo.Usage(ctx, "user-2", 3)
	require.NoError(t, err)
	assert.Equal(t, 0, usage.Used)
}

func TestTrialMemoryRepository_UsageDoesNotConsume(t *testing.T) {
	repo := NewTrialMemoryRepository()
	ctx := context.Background()

	_, err := repo.Consume(ctx, "user-1", 3)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		usage, err := repo.Usage(ctx, "user-1", 3)
		require.NoError(t, err)
		assert.Equal(t, 1, usage.Used)
	}
}

func TestTrialMemoryRepository_ExpiredRecordResets(t *testing.T) {
	repo := NewTrialMemoryRepository()
	ctx := context.Background()

	_, err := repo.Consume(ctx, "user-1", 3)
	require.NoError(t, err)

	repo.mu.Lock()
	repo.records["user-1"].expiresAt = time.Now().Add(-time.Minute)
	repo.mu.Unlock()

	usage, err := repo.Consume(ctx, "user-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, usage.Used)
}

func TestTrialMemoryRepository_Sweep(t *testing.T) {
	repo := NewTrialMemoryRepository()
	ctx := context.Background()

	_, err := repo.Consume(ctx, "stale", 3)
	require.NoError(t, err)
	_, err = repo.Consume(ctx, "fresh", 3)
	require.NoError(t, err)

	repo.mu.Lock()
	repo.records["stale"].expiresAt = time.Now().Add(-time.Minute)
	repo.mu.Unlock()

	assert.Equal(t, 1, repo.Sweep())

	usage, err := repo.Usage(ctx, "fresh", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, usage.Used)
}
