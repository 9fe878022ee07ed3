package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scireda/backend/internal/scheduler"
)

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	p.calls.Add(1)
	return 1, p.err
}

type blockingPurger struct {
	started chan struct{}
}

func (p *blockingPurger) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	close(p.started)
	<-ctx.Done()
	return 0, ctx.Err()
}

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	purger := &countingPurger{}
	s := scheduler.New(purger, 10*time.Millisecond)
	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool { return purger.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
}

func TestScheduler_KeepsRunningAfterFailure(t *testing.T) {
	purger := &countingPurger{err: errors.New("database is locked")}
	s := scheduler.New(purger, 10*time.Millisecond)
	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool { return purger.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestScheduler_StopCancelsRunningCleanup(t *testing.T) {
	purger := &blockingPurger{started: make(chan struct{})}
	s := scheduler.New(purger, time.Hour)
	s.Start()
	<-purger.started

	done := make(chan struct{})
	go func() {
		s.Stop()
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
