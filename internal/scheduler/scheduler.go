package scheduler

import (
	"context"
	"sync"
	"time"

	"scireda/backend/internal/logger"
)

// TokenPurger deletes access tokens that are past their expiry.
type TokenPurger interface {
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

type Scheduler struct {
	purger     TokenPurger
	interval   time.Duration
	stopCh     chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	cancelFunc context.CancelFunc // cancels the current cleanup
	mu         sync.Mutex         // protects cancelFunc
}

func New(purger TokenPurger, interval time.Duration) *Scheduler {
	return &Scheduler{
		purger:   purger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	logger.Info("scheduler started", "module", "scheduler", "action", "cleanup", "resource", "token", "result", "ok", "interval_ms", s.interval.Milliseconds())
}

// Stop cancels a running cleanup and waits for the loop to exit. It is safe
// to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		if s.cancelFunc != nil {
			s.cancelFunc()
		}
		s.mu.Unlock()

		close(s.stopCh)
		s.wg.Wait()
		logger.Info("scheduler stopped", "module", "scheduler", "action", "cleanup", "resource", "token", "result", "ok")
	})
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	// Run immediately on start
	s.cleanup()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)

	s.mu.Lock()
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancelFunc = nil
		s.mu.Unlock()
	}()

	purged, err := s.purger.PurgeExpiredTokens(ctx)
	if err != nil {
		if ctx.Err() != nil {
			logger.Warn("token cleanup cancelled", "module", "scheduler", "action", "cleanup", "resource", "token", "result", "cancelled")
			return
		}
		logger.Error("token cleanup failed", "module", "scheduler", "action", "cleanup", "resource", "token", "result", "failed", "error", err)
		return
	}
	logger.Debug("token cleanup completed", "module", "scheduler", "action", "cleanup", "resource", "token", "result", "ok", "purged", purged)
}
