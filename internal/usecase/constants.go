package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds every atomic unit so a stuck
	// statement cannot hold row locks indefinitely.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
