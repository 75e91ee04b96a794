package worker

import (
	"context"

	"github.com/crypt0miester/solana-vanity-miner/internal/keypair"
	"github.com/crypt0miester/solana-vanity-miner/pkg/types"
)

// Worker runs one instance of the generate-and-match loop. It owns its
// random source and attempt counters exclusively and shares nothing
// mutable with other workers; all communication with the coordinator
// is one-way over the three report channels.
type Worker struct {
	id      int
	cfg     *types.WorkerConfig
	matcher Matcher
	gen     *keypair.Generator

	deltas    chan<- types.ProgressDelta
	successes chan<- types.SuccessReport
	exhausted chan<- types.ExhaustedReport
}

// New creates a worker instance. The id is used only for attribution
// in reports and logs; workers do not partition the keyspace.
func New(
	id int,
	cfg *types.WorkerConfig,
	deltas chan<- types.ProgressDelta,
	successes chan<- types.SuccessReport,
	exhausted chan<- types.ExhaustedReport,
) *Worker {
	return &Worker{
		id:        id,
		cfg:       cfg,
		matcher:   NewMatcher(cfg),
		gen:       keypair.NewGenerator(),
		deltas:    deltas,
		successes: successes,
		exhausted: exhausted,
	}
}

// Run loops until a match, the attempt ceiling, or cancellation.
// Cancellation is checked before every attempt, so latency is bounded
// by a single generate+match cycle regardless of batch size. After ctx
// is cancelled the worker emits nothing further.
func (w *Worker) Run(ctx context.Context) {
	var total, batch int64

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if w.cfg.MaxAttempts > 0 && total >= w.cfg.MaxAttempts {
			w.flush(ctx, &batch)
			select {
			case w.exhausted <- types.ExhaustedReport{WorkerID: w.id, Attempts: total}:
			case <-ctx.Done():
			}
			return
		}

		kp, err := w.gen.Generate()
		if err != nil {
			// Entropy source failure: this worker stops contributing;
			// the coordinator's stall timer covers the all-dead case.
			return
		}
		total++
		batch++

		addr := kp.Address()
		if w.matcher.Match(addr) {
			w.flush(ctx, &batch)
			select {
			case w.successes <- types.SuccessReport{
				WorkerID: w.id,
				Address:  addr,
				Keypair:  kp,
				Attempts: total,
			}:
			case <-ctx.Done():
				kp.Wipe()
			}
			return
		}
		kp.Wipe()

		if batch >= w.cfg.BatchSize {
			w.flush(ctx, &batch)
		}
	}
}

// flush emits the partial batch as a delta so the coordinator's total
// stays accurate across success and exhaustion boundaries.
func (w *Worker) flush(ctx context.Context, batch *int64) {
	if *batch == 0 {
		return
	}
	select {
	case w.deltas <- types.ProgressDelta{WorkerID: w.id, Attempts: *batch}:
		*batch = 0
	case <-ctx.Done():
	}
}
