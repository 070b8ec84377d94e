package repository

import (
	"context"
	"time"

	"resume-checkout/internal/domain/model"
)

// PaymentRecordRepository persists the durable trail of checkout attempts.
type PaymentRecordRepository interface {
	Save(ctx context.Context, rec *model.PaymentRecord) error

	// MarkRedeemed flips the record for sessionRef to redeemed. Idempotent:
	// marking an already redeemed record is a no-op success.
	MarkRedeemed(ctx context.Context, sessionRef string, at time.Time) error

	// SumRedeemedByPeriod totals redeemed amounts since the start of the
	// current period ("week" | "month" | "year").
	SumRedeemedByPeriod(ctx context.Context, period string) (int64, error)

	// CountByStatus returns record counts keyed by status.
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
