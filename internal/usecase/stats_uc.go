package usecase

import (
	"context"

	"resume-checkout/internal/domain/ports/repository"
)

// Stats is the admin dashboard rollup.
type Stats struct {
	RevenueWeek     int64            `json:"revenue_week"`
	RevenueMonth    int64            `json:"revenue_month"`
	RevenueYear     int64            `json:"revenue_year"`
	RecordsByStatus map[string]int64 `json:"records_by_status"`
}

type StatsUseCase interface {
	Totals(ctx context.Context) (*Stats, error)
}

var _ StatsUseCase = (*statsUC)(nil)

type statsUC struct {
	records repository.PaymentRecordRepository
}

func NewStatsUseCase(records repository.PaymentRecordRepository) StatsUseCase {
	return &statsUC{records: records}
}

func (s *statsUC) Totals(ctx context.Context) (*Stats, error) {
	week, err := s.records.SumRedeemedByPeriod(ctx, "week")
	if err != nil {
		return nil, err
	}
	month, err := s.records.SumRedeemedByPeriod(ctx, "month")
	if err != nil {
		return nil, err
	}
	year, err := s.records.SumRedeemedByPeriod(ctx, "year")
	if err != nil {
		return nil, err
	}
	byStatus, err := s.records.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		RevenueWeek:     week,
		RevenueMonth:    month,
		RevenueYear:     year,
		RecordsByStatus: byStatus,
	}, nil
}
