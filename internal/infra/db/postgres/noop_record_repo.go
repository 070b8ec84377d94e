package postgres

import (
	"context"
	"time"

	"resume-checkout/internal/domain/model"
	"resume-checkout/internal/domain/ports/repository"
)

var _ repository.PaymentRecordRepository = (*NoopRecordRepo)(nil)

// NoopRecordRepo is wired when database.url is empty: the checkout still
// works, revenue stats just read zero.
type NoopRecordRepo struct{}

func NewNoopRecordRepo() *NoopRecordRepo { return &NoopRecordRepo{} }

func (NoopRecordRepo) Save(context.Context, *model.PaymentRecord) error       { return nil }
func (NoopRecordRepo) MarkRedeemed(context.Context, string, time.Time) error  { return nil }
func (NoopRecordRepo) SumRedeemedByPeriod(context.Context, string) (int64, error) {
	return 0, nil
}
func (NoopRecordRepo) CountByStatus(context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}
