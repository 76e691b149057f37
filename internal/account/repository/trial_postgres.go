package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/screentocode/screen-to-code-backend/internal/account/domain"
)

// TrialPostgresRepository is the relational variant of the trial store.
//
// Schema:
//
//	create table if not exists trial_usage (
//	    user_id    text primary key,
//	    used       integer not null default 0,
//	    expires_at timestamptz not null
//	);
type TrialPostgresRepository struct {
	db *pgxpool.Pool
}

func NewTrialPostgresRepository(db *pgxpool.Pool) *TrialPostgresRepository {
	return &TrialPostgresRepository{db: db}
}

func (r *TrialPostgresRepository) Consume(ctx context.Context, userID string, limit int) (*domain.TrialUsage, error) {
	const q = `
insert into trial_usage (user_id, used, expires_at)
values ($1, 1, $2)
on conflict (user_id) do update
set used       = case when trial_usage.expires_at < now() then 1 else trial_usage.used + 1 end,
    expires_at = case when trial_usage.expires_at < now() then $2 else trial_usage.expires_at end
returning used, expires_at;
`
	u := domain.TrialUsage{UserID: userID, Limit: limit}
	err := r.db.QueryRow(ctx, q, userID, time.Now().Add(trialTTL)).Scan(&u.Used, &u.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("consume trial: %w", err)
	}
	return &u, nil
}

func (r *TrialPostgresRepository) Usage(ctx context.Context, userID string, limit int) (*domain.TrialUsage, error) {
	const q = `
select used, expires_at from trial_usage
where user_id = $1 and expires_at >= now();
`
	u := domain.TrialUsage{UserID: userID, Limit: limit}
	err := r.db.QueryRow(ctx, q, userID).Scan(&u.Used, &u.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.TrialUsage{UserID: userID, Limit: limit, ExpiresAt: time.Now().Add(trialTTL)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read trial: %w", err)
	}
	return &u, nil
}
