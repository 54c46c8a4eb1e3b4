package reminder

import (
	"context"
	"errors"
	"sync"
	"time"

	"taskpilot/utils"

	"github.com/robfig/cron/v3"
)

// Scheduler owns the single recurring timer that drives reminder ticks. The
// cron layer fires on wall-clock minute boundaries, which is what makes the
// minute-granularity checks in ShouldFire sufficient: every qualifying
// minute is observed exactly once.
type Scheduler struct {
	mu   sync.Mutex
	c    *cron.Cron
	tick func(now time.Time)
}

// NewScheduler creates a scheduler that invokes tick once per minute.
func NewScheduler(tick func(now time.Time)) *Scheduler {
	return &Scheduler{tick: tick}
}

// Start registers the recurring timer and begins ticking. Calling Start on a
// running scheduler is an error.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c != nil {
		return errors.New("scheduler already started")
	}

	c := cron.New()
	if _, err := c.AddFunc("* * * * *", func() {
		s.tick(time.Now())
	}); err != nil {
		return err
	}
	c.Start()
	s.c = c

	utils.GetLogger().Info("reminder: scheduler started")
	return nil
}

// Stop deregisters the timer: no new ticks are accepted, and the in-flight
// tick (if any) is allowed to finish unless ctx expires first.
func (s *Scheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	c := s.c
	s.c = nil
	s.mu.Unlock()
	if c == nil {
		return
	}

	drained := c.Stop()
	select {
	case <-drained.Done():
	case <-ctx.Done():
	}

	utils.GetLogger().Info("reminder: scheduler stopped")
}

// Running reports whether the recurring timer is currently registered.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c != nil
}
