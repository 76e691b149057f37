package service

import (
	"context"
	"fmt"

	"github.com/screentocode/screen-to-code-backend/internal/account/domain"
)

// TrialStore is the injected persistence interface for trial counters. It
// replaces the process-lifetime maps of the original app so restarts and
// horizontal scaling don't lose state. Implementations: Redis, Postgres and
// an in-memory fallback.
type TrialStore interface {
	Consume(ctx context.Context, userID string, limit int) (*domain.TrialUsage, error)
	Usage(ctx context.Context, userID string, limit int) (*domain.TrialUsage, error)
}

// QuotaService enforces the free-trial limit. Identity comes from the
// surrounding app; this service never mints one.
type QuotaService struct {
	store TrialStore
	limit int
}

func NewQuotaService(store TrialStore, limit int) *QuotaService {
	return &QuotaService{store: store, limit: limit}
}

// Consume counts one conversion for the caller and fails with
// ErrQuotaExceeded once the limit is passed.
func (s *QuotaService) Consume(ctx context.Context, userID string) (*domain.TrialUsage, error) {
	usage, err := s.store.Consume(ctx, userID, s.limit)
	if err != nil {
		return nil, fmt.Errorf("quota check: %w", err)
	}
	if usage.Used > usage.Limit {
		return usage, domain.ErrQuotaExceeded
	}
	return usage, nil
}

// Usage reports the caller's remaining quota without consuming it.
func (s *QuotaService) Usage(ctx context.Context, userID string) (*domain.TrialUsage, error) {
	return s.store.Usage(ctx, userID, s.limit)
}
