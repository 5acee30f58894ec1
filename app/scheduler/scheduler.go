package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/globenews/globe-news/app/fetcher"
)

// Runner is the fetch pipeline the scheduler drives once per interval.
type Runner interface {
	Run(ctx context.Context) (fetcher.Result, error)
}

// Stats is a point-in-time snapshot of scheduler activity.
type Stats struct {
	Interval   time.Duration
	LastRun    time.Time
	LastResult fetcher.Result
	Runs       int
}

// Scheduler executes the fetch pipeline on a fixed interval, starting
// with an immediate run, and accepts manual triggers between ticks.
// Runs never overlap: a trigger arriving mid-run queues at most one
// follow-up.
type Scheduler struct {
	runner     Runner
	interval   time.Duration
	runTimeout time.Duration

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	trigger chan struct{}

	mu         sync.Mutex
	lastRun    time.Time
	lastResult fetcher.Result
	runs       int
}

func NewScheduler(runner Runner, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		runner:     runner,
		interval:   interval,
		runTimeout: 10 * time.Minute,
		ctx:        ctx,
		cancel:     cancel,
		trigger:    make(chan struct{}, 1),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.runOnce()
			case <-s.trigger:
				s.runOnce()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

// TriggerFetch requests an out-of-band run. It never blocks: when a
// trigger is already queued the call is a no-op error.
func (s *Scheduler) TriggerFetch() error {
	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	case s.trigger <- struct{}{}:
		return nil
	default:
		return fmt.Errorf("a fetch is already pending")
	}
}

func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Interval:   s.interval,
		LastRun:    s.lastRun,
		LastResult: s.lastResult,
		Runs:       s.runs,
	}
}

func (s *Scheduler) runOnce() {
	runCtx, cancel := context.WithTimeout(s.ctx, s.runTimeout)
	defer cancel()

	result, err := s.runner.Run(runCtx)
	if err != nil {
		slog.Error("Scheduled fetch run failed", "error", err)
	}

	s.mu.Lock()
	s.lastRun = time.Now().UTC()
	s.lastResult = result
	s.runs++
	s.mu.Unlock()
}
