package miner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/crypt0miester/solana-vanity-miner/internal/config"
	"github.com/crypt0miester/solana-vanity-miner/internal/logger"
	"github.com/crypt0miester/solana-vanity-miner/pkg/types"
	"github.com/crypt0miester/solana-vanity-miner/pkg/worker"
)

// Errors
var (
	ErrCancelled      = errors.New("search cancelled")
	ErrExhausted      = errors.New("all workers exhausted their attempt budgets without a match")
	ErrStalled        = errors.New("no progress from any worker within the stall timeout")
	ErrAlreadyRunning = errors.New("search already running")
)

// errDone is the internal cancellation cause used when the first
// success has been accepted.
var errDone = errors.New("search complete")

// ProgressFunc receives throttled progress notifications while a
// search is running.
type ProgressFunc func(totalAttempts int64, rate float64, elapsed time.Duration)

// Miner coordinates one search session: it validates the
// configuration, spawns the workers, aggregates their progress,
// resolves the race for the first success and tears everything down.
// Create a fresh Miner per search; the value is the session handle
// that owns its own progress callback, so concurrent sessions never
// share state.
type Miner struct {
	cfg *config.Config
	log *logger.Logger
	clk clock.Clock

	onProgress ProgressFunc

	mu      sync.Mutex
	cancel  context.CancelCauseFunc
	running bool
	stopped bool
}

// NewMiner creates a new miner instance
func NewMiner(cfg *config.Config, log *logger.Logger) *Miner {
	return &Miner{
		cfg: cfg,
		log: log,
		clk: clock.New(),
	}
}

// OnProgress registers the progress callback. Register before calling
// Mine; notifications are throttled to one per ProgressInterval while
// the internal attempt counter updates on every delta.
func (m *Miner) OnProgress(fn ProgressFunc) {
	m.onProgress = fn
}

// Mine runs the search and returns the first matching keypair together
// with aggregate statistics. It fails with a configuration error
// before any worker is spawned, with ErrExhausted once every worker
// hits its attempt ceiling, with ErrCancelled on Stop or parent
// context cancellation, and with ErrStalled if no worker reports for
// StallTimeout. All spawned goroutines are joined before Mine returns.
func (m *Miner) Mine(ctx context.Context) (*types.Result, error) {
	if err := m.cfg.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return nil, ErrAlreadyRunning
	}
	if m.stopped {
		m.mu.Unlock()
		return nil, ErrCancelled
	}
	ctx, cancel := context.WithCancelCause(ctx)
	m.cancel = cancel
	m.running = true
	m.mu.Unlock()

	defer func() {
		cancel(errDone)
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
	}()

	session := uuid.NewString()
	start := m.clk.Now()
	m.log.Debugf("session %s: searching for %s with %d workers, ~%.3g expected attempts",
		session, m.cfg.Describe(), m.cfg.Workers, m.cfg.EstimateAttempts())

	workerCfg := &types.WorkerConfig{
		Prefix:      m.cfg.Prefix,
		Suffix:      m.cfg.Suffix,
		IgnoreCase:  m.cfg.IgnoreCase,
		MaxAttempts: m.cfg.MaxAttempts,
		BatchSize:   m.cfg.BatchSize,
	}
	if workerCfg.BatchSize <= 0 {
		workerCfg.BatchSize = 10000
	}

	deltas := make(chan types.ProgressDelta, 2*m.cfg.Workers)
	successes := make(chan types.SuccessReport, m.cfg.Workers)
	exhausted := make(chan types.ExhaustedReport, m.cfg.Workers)

	var wg sync.WaitGroup
	for i := 0; i < m.cfg.Workers; i++ {
		w := worker.New(i, workerCfg, deltas, successes, exhausted)
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Run(ctx)
		}()
	}

	interval := m.cfg.ProgressInterval
	if interval <= 0 {
		interval = time.Second
	}
	stallTimeout := m.cfg.StallTimeout
	if stallTimeout <= 0 {
		stallTimeout = 30 * time.Second
	}

	ticker := m.clk.Ticker(interval)
	defer ticker.Stop()
	stall := m.clk.Timer(stallTimeout)
	defer stall.Stop()

	// finish cancels the workers, joins them, folds any buffered
	// deltas into the total and wipes late successes.
	var total int64
	finish := func(cause error) {
		cancel(cause)
		wg.Wait()
		total += drainDeltas(deltas)
		discardSuccesses(successes)
	}

	exhaustedWorkers := 0
	for {
		select {
		case d := <-deltas:
			total += d.Attempts
			stall.Reset(stallTimeout)

		case s := <-successes:
			finish(errDone)
			elapsed := m.clk.Since(start)
			m.log.Debugf("session %s: worker %d found %s after %d attempts",
				session, s.WorkerID, s.Address, s.Attempts)
			return &types.Result{
				Address:  s.Address,
				Keypair:  s.Keypair,
				WorkerID: s.WorkerID,
				Attempts: total,
				Duration: elapsed,
			}, nil

		case e := <-exhausted:
			exhaustedWorkers++
			stall.Reset(stallTimeout)
			m.log.Debugf("session %s: worker %d exhausted after %d attempts",
				session, e.WorkerID, e.Attempts)
			if exhaustedWorkers == m.cfg.Workers {
				finish(ErrExhausted)
				return nil, ErrExhausted
			}

		case <-ticker.C:
			if ctx.Err() == nil {
				m.notify(total, m.clk.Since(start))
			}

		case <-stall.C:
			finish(ErrStalled)
			return nil, ErrStalled

		case <-ctx.Done():
			// Stop() or parent cancellation; both settle as cancelled.
			wg.Wait()
			discardSuccesses(successes)
			return nil, ErrCancelled
		}
	}
}

// Stop cancels the running search; Mine settles with ErrCancelled if
// no success had already been resolved. Safe to call at any time,
// from any goroutine, any number of times.
func (m *Miner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	if m.cancel != nil {
		m.cancel(ErrCancelled)
	}
}

func (m *Miner) notify(total int64, elapsed time.Duration) {
	if m.onProgress == nil {
		return
	}
	rate := 0.0
	if s := elapsed.Seconds(); s > 0 {
		rate = float64(total) / s
	}
	m.onProgress(total, rate, elapsed)
}

func drainDeltas(ch <-chan types.ProgressDelta) int64 {
	var n int64
	for {
		select {
		case d := <-ch:
			n += d.Attempts
		default:
			return n
		}
	}
}

// discardSuccesses wipes the key material of reports that lost the
// race.
func discardSuccesses(ch <-chan types.SuccessReport) {
	for {
		select {
		case s := <-ch:
			s.Keypair.Wipe()
		default:
			return
		}
	}
}
