package repository

import (
	"context"
	"time"

	"resume-checkout/internal/domain/model"
)

// SessionStore holds payment sessions for their TTL window.
//
// TryComplete is the security-critical operation: it must be an atomic
// per-key check-and-set so that under concurrent calls with the same id
// exactly one caller observes success. Implementations must never hold a
// single global lock across I/O; unrelated sessions must not contend.
type SessionStore interface {
	// Create stores a fresh pending session. It never blocks on external
	// calls beyond its own backend write.
	Create(ctx context.Context, sess *model.PaymentSession) error

	// Get returns a copy of the session or domain.ErrSessionNotFound.
	Get(ctx context.Context, id string) (*model.PaymentSession, error)

	// TryComplete transitions pending -> completed and releases the bound
	// payload exactly once. Failures are domain.ErrSessionNotFound,
	// domain.ErrSessionExpired or domain.ErrSessionAlreadyCompleted, with
	// no mutation besides the forward-only pending -> expired mark on the
	// expired path.
	TryComplete(ctx context.Context, id string, now time.Time) (*model.Payload, error)

	// ExpireSweep moves pending sessions past their deadline to expired,
	// then evicts sessions past the grace window to bound memory. Safe to
	// call concurrently with everything else; idempotent.
	ExpireSweep(ctx context.Context, now time.Time) (expired, evicted int, err error)
}
