package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/screentocode/screen-to-code-backend/internal/account/domain"
)

const (
	trialKeyPrefix = "stc:trial:"        // Counter per caller: stc:trial:{user_id}
	trialTTL       = 30 * 24 * time.Hour // Trial counters reset after 30 days
)

// TrialRedisRepository keeps trial counters in Redis with a TTL, so expiry
// needs no sweeping and counters survive restarts.
type TrialRedisRepository struct {
	client *redis.Client
}

func NewTrialRedisRepository(client *redis.Client) *TrialRedisRepository {
	return &TrialRedisRepository{client: client}
}

func (r *TrialRedisRepository) trialKey(userID string) string {
	return trialKeyPrefix + userID
}

// Consume increments the caller's counter and reports the resulting usage.
// The counter keeps incrementing past the limit; enforcement is the service's
// decision, the store only counts.
func (r *TrialRedisRepository) Consume(ctx context.Context, userID string, limit int) (*domain.TrialUsage, error) {
	key := r.trialKey(userID)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, trialTTL)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to consume trial: %w", err)
	}

	return &domain.TrialUsage{
		UserID:    userID,
		Used:      int(incr.Val()),
		Limit:     limit,
		ExpiresAt: time.Now().Add(ttl.Val()),
	}, nil
}

// Usage reads the caller's counter without incrementing it.
func (r *TrialRedisRepository) Usage(ctx context.Context, userID string, limit int) (*domain.TrialUsage, error) {
	key := r.trialKey(userID)

	used, err := r.client.Get(ctx, key).Int()
	if err == redis.Nil {
		return &domain.TrialUsage{UserID: userID, Limit: limit, ExpiresAt: time.Now().Add(trialTTL)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read trial: %w", err)
	}

	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read trial ttl: %w", err)
	}

	return &domain.TrialUsage{
		UserID:    userID,
		Used:      used,
		Limit:     limit,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}
