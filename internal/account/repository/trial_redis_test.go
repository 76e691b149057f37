package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRepo(t *testing.T) (*TrialRedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewTrialRedisRepository(client), mr
}

func TestTrialRedisRepository_ConsumeIncrements(t *testing.T) {
	repo, _ := newRedisRepo(t)
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		usage, err := repo.Consume(ctx, "user-1", 3)
		require.NoError(t, err)
		assert.Equal(t, i, usage.Used)
	}
}

func TestTrialRedisRepository_KeyAndTTL(t *testing.T) {
	repo, mr := newRedisRepo(t)
	ctx := context.Background()

	_, err := repo.Consume(ctx, "user-1", 3)
	require.NoError(t, err)

	require.True(t, mr.Exists("stc:trial:user-1"))
	assert.Greater(t, mr.TTL("stc:trial:user-1").Hours(), float64(0))
}

func TestTrialRedisRepository_UsageDoesNotConsume(t *testing.T) {
	repo, _ := newRedisRepo(t)
	ctx := context.Background()

	_, err := repo.Consume(ctx, "user-1", 3)
	require.NoError(t, err)

	usage, err := repo.Usage(ctx, "user-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, usage.Used)

	usage, err = repo.Usage(ctx, "user-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, usage.Used)
}

func TestTrialRedisRepository_UnknownUserDefaults(t *testing.T) {
	repo, _ := newRedisRepo(t)

	usage, err := repo.Usage(context.Background(), "nobody", 3)
	require.NoError(t, err)
	assert.Equal(t, 0, usage.Used)
	assert.Equal(t, 3, usage.Limit)
}

func TestTrialRedisRepository_CounterExpires(t *testing.T) {
	repo, mr := newRedisRepo(t)
	ctx := context.Background()

	_, err := repo.Consume(ctx, "user-1", 3)
	require.NoError(t, err)

	mr.FastForward(trialTTL)

	usage, err := repo.Usage(ctx, "user-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 0, usage.Used)
}
