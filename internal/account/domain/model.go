// Package domain holds the types of the injected account surface. Identity
// issuance, sessions and payments live outside this service; this layer only
// checks and counts trial conversions against a configured limit.
package domain

import (
	"errors"
	"time"
)

// TrialUsage is the per-caller conversion counter with an explicit expiry so
// restarts and horizontal scaling don't lose or immortalize state.
type TrialUsage struct {
	UserID    string    `json:"user_id"`
	Used      int       `json:"used"`
	Limit     int       `json:"limit"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Remaining returns the conversions left, never below zero.
func (u TrialUsage) Remaining() int {
	if u.Used >= u.Limit {
		return 0
	}
	return u.Limit - u.Used
}

var (
	ErrQuotaExceeded = errors.New("free trial limit reached")
	ErrNotFound      = errors.New("trial record not found")
)
