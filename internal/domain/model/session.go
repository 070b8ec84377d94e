package model

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "pending"   // created; awaiting the buyer's return from the gateway
	SessionStatusCompleted SessionStatus = "completed" // redeemed exactly once for premium content
	SessionStatusExpired   SessionStatus = "expired"   // TTL elapsed before redemption
)

// PaymentSession binds a buyer's in-progress work to a single payment
// attempt. Status only ever moves forward: pending -> completed, or
// pending -> expired. Completed and expired are terminal.
type PaymentSession struct {
	ID          string        // 128-bit random session reference, hex encoded
	ProductID   string
	ProductType ProductType
	Region      string
	Currency    string
	Amount      int64 // fixed at creation time; never re-resolved
	PriceSource PriceSource
	Payload     Payload
	Status      SessionStatus
	CreatedAt   time.Time
	ExpiresAt   time.Time
	CompletedAt *time.Time
}

// NewPaymentSession fixes the resolved price into a fresh pending session.
func NewPaymentSession(product Product, price *RegionalPrice, payload Payload, ttl time.Duration) (*PaymentSession, error) {
	id, err := NewSessionRef()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &PaymentSession{
		ID:          id,
		ProductID:   product.ID,
		ProductType: product.Type,
		Region:      price.Region,
		Currency:    price.Currency,
		Amount:      price.Amount,
		PriceSource: price.Source,
		Payload:     payload,
		Status:      SessionStatusPending,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}, nil
}

// NewSessionRef returns a 128-bit token from crypto/rand, hex encoded.
// The reference is the only thing embedded in the payment redirect URL,
// so it must be unguessable.
func NewSessionRef() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate session ref: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}

// ExpiredAt reports whether the session's TTL has elapsed at the given time.
func (s *PaymentSession) ExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Clone returns a copy safe to hand out of a store.
func (s *PaymentSession) Clone() *PaymentSession {
	cp := *s
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}
