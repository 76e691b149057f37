package repository

import (
	"context"
	"sync"
	"time"

	"github.com/screentocode/screen-to-code-backend/internal/account/domain"
)

// TrialMemoryRepository is the zero-dependency store used when neither Redis
// nor Postgres is configured. Records carry an explicit expiry; the cron
// sweeper removes stale ones so the map doesn't grow for the process
// lifetime.
type TrialMemoryRepository struct {
	mu      sync.Mutex
	records map[string]*memoryRecord
}

type memoryRecord struct {
	used      int
	expiresAt time.Time
}

func NewTrialMemoryRepository() *TrialMemoryRepository {
	return &TrialMemoryRepository{records: make(map[string]*memoryRecord)}
}

func (r *TrialMemoryRepository) Consume(ctx context.Context, userID string, limit int) (*domain.TrialUsage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	rec, ok := r.records[userID]
	if !ok || now.After(rec.expiresAt) {
		rec = &memoryRecord{expiresAt: now.Add(trialTTL)}
		r.records[userID] = rec
	}
	rec.used++

	return &domain.TrialUsage{
		UserID:    userID,
		Used:      rec.used,
		Limit:     limit,
		ExpiresAt: rec.expiresAt,
	}, nil
}

func (r *TrialMemoryRepository) Usage(ctx context.Context, userID string, limit int) (*domain.TrialUsage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[userID]
	if !ok || time.Now().After(rec.expiresAt) {
		return &domain.TrialUsage{UserID: userID, Limit: limit, ExpiresAt: time.Now().Add(trialTTL)}, nil
	}

	return &domain.TrialUsage{
		UserID:    userID,
		Used:      rec.used,
		Limit:     limit,
		ExpiresAt: rec.expiresAt,
	}, nil
}

// Sweep removes expired records and returns how many were dropped.
func (r *TrialMemoryRepository) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, rec := range r.records {
		if now.After(rec.expiresAt) {
			delete(r.records, id)
			removed++
		}
	}
	return removed
}
