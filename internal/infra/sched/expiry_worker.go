package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"resume-checkout/internal/domain/ports/repository"
	"resume-checkout/internal/infra/metrics"
)

// ExpiryWorker periodically sweeps the session store: pending sessions past
// their deadline are marked expired, and expired sessions past the grace
// window are evicted. The sweep is idempotent, so a skipped or delayed tick
// is harmless.
type ExpiryWorker struct {
	interval time.Duration
	store    repository.SessionStore
	log      *zerolog.Logger
}

func NewExpiryWorker(interval time.Duration, store repository.SessionStore, logger *zerolog.Logger) *ExpiryWorker {
	wLog := logger.With().Str("component", "ExpiryWorker").Logger()
	return &ExpiryWorker{
		interval: interval,
		store:    store,
		log:      &wLog,
	}
}

func (w *ExpiryWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("Starting expiry worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping expiry worker")
			return ctx.Err()
		case <-ticker.C:
			expired, evicted, err := w.store.ExpireSweep(ctx, time.Now())
			if err != nil {
				w.log.Error().Err(err).Msg("expiry sweep error")
				continue
			}
			if expired > 0 {
				metrics.AddSessionsSwept("expired", expired)
			}
			if evicted > 0 {
				metrics.AddSessionsSwept("evicted", evicted)
			}
			if expired > 0 || evicted > 0 {
				w.log.Info().Int("expired", expired).Int("evicted", evicted).Msg("session sweep done")
			}
		}
	}
}
