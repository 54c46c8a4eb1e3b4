package reminder

import (
	"context"
	"testing"
	"time"
)

func TestSchedulerLifecycle(t *testing.T) {
	s := NewScheduler(func(time.Time) {})

	if s.Running() {
		t.Fatal("scheduler must not run before Start")
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !s.Running() {
		t.Fatal("scheduler should report running after Start")
	}
	if err := s.Start(); err == nil {
		t.Error("second Start must fail while running")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
	if s.Running() {
		t.Fatal("scheduler should report stopped after Stop")
	}
}

func TestSchedulerStopIdempotent(t *testing.T) {
	s := NewScheduler(func(time.Time) {})
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
	s.Stop(ctx) // second stop is a no-op

	// The scheduler can be started again after a full stop.
	if err := s.Start(); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	s.Stop(ctx)
}
