package model

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type PaymentRecordStatus string

const (
	PaymentRecordPending  PaymentRecordStatus = "pending"
	PaymentRecordRedeemed PaymentRecordStatus = "redeemed"
)

// PaymentRecord is the durable trail of a checkout attempt. The session
// itself lives only in the store; the record is what revenue stats are
// computed from after the session is gone.
type PaymentRecord struct {
	ID          string // ULID, sortable by creation time
	SessionRef  string // unique reference to the PaymentSession
	ProductID   string
	ProductType ProductType
	Region      string
	Currency    string
	Amount      int64
	PriceSource PriceSource
	Status      PaymentRecordStatus
	CreatedAt   time.Time
	RedeemedAt  *time.Time
}

// NewPaymentRecord snapshots a freshly created session.
func NewPaymentRecord(sess *PaymentSession) *PaymentRecord {
	return &PaymentRecord{
		ID:          ulid.Make().String(),
		SessionRef:  sess.ID,
		ProductID:   sess.ProductID,
		ProductType: sess.ProductType,
		Region:      sess.Region,
		Currency:    sess.Currency,
		Amount:      sess.Amount,
		PriceSource: sess.PriceSource,
		Status:      PaymentRecordPending,
		CreatedAt:   sess.CreatedAt,
	}
}
