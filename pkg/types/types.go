package types

import (
	"time"

	"github.com/crypt0miester/solana-vanity-miner/internal/keypair"
)

// Result represents a completed search
type Result struct {
	Address  string
	Keypair  keypair.Keypair
	WorkerID int
	Attempts int64
	Duration time.Duration
}

// WorkerConfig contains configuration for individual workers
type WorkerConfig struct {
	Prefix      string
	Suffix      string
	IgnoreCase  bool
	MaxAttempts int64 // cumulative per-worker ceiling, 0 means unlimited
	BatchSize   int64 // attempts per ProgressDelta
}

// ProgressDelta carries the attempts a worker made since its previous
// report. Deltas are additive and commute; the coordinator sums them.
type ProgressDelta struct {
	WorkerID int
	Attempts int64
}

// SuccessReport is a worker's terminal message for a matching
// candidate. At most one is honored per search; the first received
// wins.
type SuccessReport struct {
	WorkerID int
	Address  string
	Keypair  keypair.Keypair
	Attempts int64 // cumulative attempts by this worker at discovery
}

// ExhaustedReport signals that a worker hit its attempt ceiling
// without a match. Distinct from cancellation.
type ExhaustedReport struct {
	WorkerID int
	Attempts int64
}
