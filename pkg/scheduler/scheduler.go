package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/blogdb/pkg/domain"
)

//go:generate moq -out mocks/feed_lister.go -pkg mocks -skip-ensure -fmt goimports . FeedLister
//go:generate moq -out mocks/processor.go -pkg mocks -skip-ensure -fmt goimports . Processor

// ErrSweepInProgress is returned by RunOnce when another sweep is running
var ErrSweepInProgress = errors.New("sweep already in progress")

// FeedLister provides the registered feeds
type FeedLister interface {
	FindAll(ctx context.Context) ([]domain.Feed, error)
	Replace(ctx context.Context, feed *domain.Feed) error
}

// Processor runs one analysis of a feed
type Processor interface {
	ProcessFeed(ctx context.Context, feed domain.Feed) domain.FeedRun
}

// Config holds scheduler configuration
type Config struct {
	Interval   time.Duration // delay between the end of a sweep and the start of the next one
	MaxWorkers int           // feeds processed concurrently within a sweep, 1 keeps registration order
}

// SweepResult summarizes one sweep over all feeds
type SweepResult struct {
	ID       string
	Feeds    int
	Done     int
	Failed   int
	Busy     int
	Inserted int
}

// Scheduler runs periodic sweeps over all registered feeds and on-demand runs of single feeds.
// Sweeps never overlap. The next periodic sweep is scheduled only after the previous one finished.
type Scheduler struct {
	feeds      FeedLister
	processor  Processor
	interval   time.Duration
	maxWorkers int

	sweepMu sync.Mutex // held for the duration of a sweep
	wg      sync.WaitGroup

	mu      sync.Mutex
	ctx     context.Context // lifecycle context for background work
	cancel  context.CancelFunc
	started bool
	stopped bool
}

// NewScheduler creates a new scheduler instance
func NewScheduler(feeds FeedLister, processor Processor, cfg Config) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		feeds:      feeds,
		processor:  processor,
		interval:   cfg.Interval,
		maxWorkers: cfg.MaxWorkers,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start begins periodic sweeps. The first sweep runs after the first interval elapses.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.started {
		lgr.Printf("[WARN] scheduler can't be started twice or after stop")
		return
	}
	s.started = true
	prevCancel := s.cancel // runs triggered before Start keep their context until Stop
	var cancel context.CancelFunc
	s.ctx, cancel = context.WithCancel(ctx)
	s.cancel = func() { cancel(); prevCancel() }

	s.wg.Add(1)
	go s.loop(s.ctx)
	lgr.Printf("[INFO] scheduler started with interval %v, max workers %d", s.interval, s.maxWorkers)
}

// Stop cancels running work and waits for sweeps and triggered runs to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	s.mu.Lock()
	s.stopped = true
	s.cancel()
	s.mu.Unlock()
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			if _, err := s.RunOnce(ctx); err != nil && !errors.Is(err, ErrSweepInProgress) {
				lgr.Printf("[ERROR] sweep failed: %v", err)
			}
			timer.Reset(s.interval)
		}
	}
}

// RunOnce processes all feeds in registration order and returns when every run finished.
// Feed failures are contained in the feed status. Returns ErrSweepInProgress without doing
// anything if another sweep is running.
func (s *Scheduler) RunOnce(ctx context.Context) (SweepResult, error) {
	if !s.sweepMu.TryLock() {
		lgr.Printf("[INFO] sweep already in progress, skip")
		return SweepResult{}, ErrSweepInProgress
	}
	defer s.sweepMu.Unlock()
	return s.sweep(ctx)
}

// TriggerSweep starts a sweep in the background. Returns false if a sweep is already running.
func (s *Scheduler) TriggerSweep() bool {
	ctx, ok := s.background()
	if !ok {
		return false
	}
	if !s.sweepMu.TryLock() {
		lgr.Printf("[INFO] sweep already in progress, trigger ignored")
		s.wg.Done()
		return false
	}
	go func() {
		defer s.wg.Done()
		defer s.sweepMu.Unlock()
		if _, err := s.sweep(ctx); err != nil {
			lgr.Printf("[ERROR] triggered sweep failed: %v", err)
		}
	}()
	return true
}

// TriggerFeed processes a single feed in the background, outside of the sweep schedule
func (s *Scheduler) TriggerFeed(feed domain.Feed) {
	ctx, ok := s.background()
	if !ok {
		lgr.Printf("[WARN] scheduler is stopped, feed %d not triggered", feed.ID)
		return
	}
	lgr.Printf("[INFO] triggered processing of feed %d %s", feed.ID, feed.URL)
	go func() {
		defer s.wg.Done()
		s.processor.ProcessFeed(ctx, feed)
	}()
}

// RecoverInterrupted marks feeds left in_progress by a previous process as failed,
// so they are picked up again by the next sweep. Call it before Start.
func (s *Scheduler) RecoverInterrupted(ctx context.Context) (int, error) {
	feeds, err := s.feeds.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("get feeds: %w", err)
	}
	count := 0
	for _, f := range feeds {
		if f.Status != domain.StatusInProgress {
			continue
		}
		f.Status = domain.StatusFailed
		f.LastError = "interrupted by restart"
		if err := s.feeds.Replace(ctx, &f); err != nil {
			return count, fmt.Errorf("recover feed %d: %w", f.ID, err)
		}
		lgr.Printf("[WARN] feed %d %s was left in progress, marked failed", f.ID, f.URL)
		count++
	}
	return count, nil
}

// background registers a unit of background work, the caller must call wg.Done when it ends
func (s *Scheduler) background() (context.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil, false
	}
	s.wg.Add(1)
	return s.ctx, true
}

func (s *Scheduler) sweep(ctx context.Context) (SweepResult, error) {
	res := SweepResult{ID: uuid.NewString()}
	started := time.Now()

	feeds, err := s.feeds.FindAll(ctx)
	if err != nil {
		return res, fmt.Errorf("get feeds: %w", err)
	}
	res.Feeds = len(feeds)
	lgr.Printf("[INFO] sweep %s started, %d feeds", res.ID, len(feeds))

	var mu sync.Mutex
	g := &errgroup.Group{}
	g.SetLimit(s.maxWorkers)
	for _, f := range feeds {
		if ctx.Err() != nil {
			lgr.Printf("[WARN] sweep %s interrupted", res.ID)
			break
		}
		g.Go(func() error {
			run := s.processor.ProcessFeed(ctx, f)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case run.Busy:
				res.Busy++
			case run.Status == domain.StatusDone:
				res.Done++
			default:
				res.Failed++
			}
			res.Inserted += run.Inserted
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	lgr.Printf("[INFO] sweep %s finished in %v: %d done, %d failed, %d busy, %d new articles",
		res.ID, time.Since(started).Round(time.Millisecond), res.Done, res.Failed, res.Busy, res.Inserted)
	return res, nil
}
