package usecase

import (
	"errors"
	"time"
)

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyPending marks a key whose first request is still running
	IdempotencyPending = "processing"

	// DefaultReportCacheTTL applies when no TTL is configured for cached reports
	DefaultReportCacheTTL = 15 * time.Minute

	// DefaultMaxUploadSize caps justificatif uploads (10 MiB)
	DefaultMaxUploadSize int64 = 10 << 20

	// maxBatchEntries bounds the number of lines accepted in one batch booking
	maxBatchEntries = 500

	// verifyPageSize is the page size used when scanning all bank accounts
	verifyPageSize = 1000
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")
