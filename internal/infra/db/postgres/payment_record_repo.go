package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	"resume-checkout/internal/domain"
	"resume-checkout/internal/domain/model"
	"resume-checkout/internal/domain/ports/repository"
)

var _ repository.PaymentRecordRepository = (*paymentRecordRepo)(nil)

type paymentRecordRepo struct{ pool *pgxpool.Pool }

func NewPaymentRecordRepo(pool *pgxpool.Pool) *paymentRecordRepo {
	return &paymentRecordRepo{pool: pool}
}

// EnsureSchema creates the payment_records table when it does not exist.
// Kept inline rather than as a migration tool; the schema is one table.
func (r *paymentRecordRepo) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS payment_records (
  id            TEXT PRIMARY KEY,
  session_ref   TEXT NOT NULL UNIQUE,
  product_id    TEXT NOT NULL,
  product_type  TEXT NOT NULL,
  region        TEXT NOT NULL,
  currency      TEXT NOT NULL,
  amount        BIGINT NOT NULL,
  price_source  TEXT NOT NULL,
  status        TEXT NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL,
  redeemed_at   TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_payment_records_redeemed_at ON payment_records (redeemed_at);`
	_, err := r.pool.Exec(ctx, q)
	return err
}

func (r *paymentRecordRepo) Save(ctx context.Context, rec *model.PaymentRecord) error {
	const q = `
INSERT INTO payment_records (
  id, session_ref, product_id, product_type, region, currency, amount, price_source, status, created_at, redeemed_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11);`

	_, err := r.pool.Exec(ctx, q,
		rec.ID, rec.SessionRef, rec.ProductID, string(rec.ProductType), rec.Region,
		rec.Currency, rec.Amount, string(rec.PriceSource), string(rec.Status),
		rec.CreatedAt, rec.RedeemedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// duplicate session_ref; the reference space makes this a bug, not a race
			return domain.ErrInvalidArgument
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *paymentRecordRepo) MarkRedeemed(ctx context.Context, sessionRef string, at time.Time) error {
	const q = `
UPDATE payment_records
   SET status = 'redeemed', redeemed_at = COALESCE(redeemed_at, $2)
 WHERE session_ref = $1;`
	cmd, err := r.pool.Exec(ctx, q, sessionRef, at)
	if err != nil {
		return domain.ErrOperationFailed
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *paymentRecordRepo) SumRedeemedByPeriod(ctx context.Context, period string) (int64, error) {
	const q = `SELECT COALESCE(SUM(amount),0) FROM payment_records WHERE status='redeemed' AND redeemed_at >= DATE_TRUNC($1, NOW());`
	var sum int64
	if err := r.pool.QueryRow(ctx, q, period).Scan(&sum); err != nil {
		return 0, domain.ErrOperationFailed
	}
	return sum, nil
}

func (r *paymentRecordRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	const q = `SELECT status, COUNT(*) FROM payment_records GROUP BY status;`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	out := map[string]int64{}
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, domain.ErrOperationFailed
		}
		out[status] = n
	}
	return out, nil
}
