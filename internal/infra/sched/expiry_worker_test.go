//go:build !integration

package sched_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"resume-checkout/internal/domain/model"
	"resume-checkout/internal/domain/ports/repository"
	"resume-checkout/internal/infra/sched"
)

type sweepCounter struct {
	sweeps   atomic.Int64
	sweepErr error
}

var _ repository.SessionStore = (*sweepCounter)(nil)

func (s *sweepCounter) Create(context.Context, *model.PaymentSession) error { return nil }

func (s *sweepCounter) Get(context.Context, string) (*model.PaymentSession, error) {
	return nil, errors.New("not implemented")
}

func (s *sweepCounter) TryComplete(context.Context, string, time.Time) (*model.Payload, error) {
	return nil, errors.New("not implemented")
}

func (s *sweepCounter) ExpireSweep(context.Context, time.Time) (int, int, error) {
	s.sweeps.Add(1)
	return 0, 0, s.sweepErr
}

func TestExpiryWorker(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("sweeps on every tick and stops on cancel", func(t *testing.T) {
		store := &sweepCounter{}
		worker := sched.NewExpiryWorker(5*time.Millisecond, store, &logger)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- worker.Run(ctx) }()

		deadline := time.After(2 * time.Second)
		for store.sweeps.Load() < 3 {
			select {
			case <-deadline:
				t.Fatalf("worker swept only %d times", store.sweeps.Load())
			case <-time.After(time.Millisecond):
			}
		}
		cancel()

		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Fatalf("want context.Canceled, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not stop after cancel")
		}
	})

	t.Run("keeps running after a sweep error", func(t *testing.T) {
		store := &sweepCounter{sweepErr: errors.New("backend down")}
		worker := sched.NewExpiryWorker(5*time.Millisecond, store, &logger)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		done := make(chan error, 1)
		go func() { done <- worker.Run(ctx) }()

		deadline := time.After(2 * time.Second)
		for store.sweeps.Load() < 2 {
			select {
			case <-done:
				t.Fatal("worker exited on sweep error")
			case <-deadline:
				t.Fatalf("worker swept only %d times", store.sweeps.Load())
			case <-time.After(time.Millisecond):
			}
		}
	})
}
