//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-checkout/internal/domain"
	"resume-checkout/internal/domain/model"
	"resume-checkout/internal/usecase"
)

func seedSession(t *testing.T, store *MockSessionStore, ttl time.Duration) *model.PaymentSession {
	t.Helper()
	sess, err := model.NewPaymentSession(
		model.Product{ID: "resume_analysis", Type: model.ProductTypeIndividual, Name: "Resume Analysis"},
		&model.RegionalPrice{ProductID: "resume_analysis", Region: "PK", Amount: 1200, Currency: "PKR", Source: model.PriceSourceFallback},
		validPayload(),
		ttl,
	)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := store.Create(context.Background(), sess); err != nil {
		t.Fatalf("create session: %v", err)
	}
	return sess
}

func TestRedeemUC_VerifyAndRedeem(t *testing.T) {
	ctx := context.Background()

	t.Run("first redemption returns the bound payload unchanged", func(t *testing.T) {
		store := NewMockSessionStore()
		records := &MockRecordRepo{}
		uc := usecase.NewRedeemUseCase(store, &MockGateway{}, records, newTestLogger())
		sess := seedSession(t, store, time.Hour)

		got, err := uc.VerifyAndRedeem(ctx, sess.ID, "any")
		if err != nil {
			t.Fatalf("redeem: %v", err)
		}
		if got.Status != model.SessionStatusCompleted {
			t.Fatalf("want completed, got %s", got.Status)
		}
		if got.Payload != sess.Payload {
			t.Fatalf("payload changed across redemption: %+v != %+v", got.Payload, sess.Payload)
		}
		if got.Amount != 1200 || got.Currency != "PKR" {
			t.Fatalf("price not carried: %d %s", got.Amount, got.Currency)
		}
		if len(records.Redeemed) != 1 || records.Redeemed[0] != sess.ID {
			t.Fatalf("record not marked redeemed: %v", records.Redeemed)
		}
	})

	t.Run("second redemption fails with ErrSessionAlreadyCompleted", func(t *testing.T) {
		store := NewMockSessionStore()
		uc := usecase.NewRedeemUseCase(store, &MockGateway{}, &MockRecordRepo{}, newTestLogger())
		sess := seedSession(t, store, time.Hour)

		if _, err := uc.VerifyAndRedeem(ctx, sess.ID, "any"); err != nil {
			t.Fatalf("first redeem: %v", err)
		}
		_, err := uc.VerifyAndRedeem(ctx, sess.ID, "any")
		if !errors.Is(err, domain.ErrSessionAlreadyCompleted) {
			t.Fatalf("want ErrSessionAlreadyCompleted, got %v", err)
		}
	})

	t.Run("expired session fails with ErrSessionExpired", func(t *testing.T) {
		store := NewMockSessionStore()
		uc := usecase.NewRedeemUseCase(store, &MockGateway{}, &MockRecordRepo{}, newTestLogger())
		sess := seedSession(t, store, -time.Minute)

		_, err := uc.VerifyAndRedeem(ctx, sess.ID, "any")
		if !errors.Is(err, domain.ErrSessionExpired) {
			t.Fatalf("want ErrSessionExpired, got %v", err)
		}
	})

	t.Run("unknown session fails with ErrSessionNotFound", func(t *testing.T) {
		store := NewMockSessionStore()
		uc := usecase.NewRedeemUseCase(store, &MockGateway{}, &MockRecordRepo{}, newTestLogger())

		_, err := uc.VerifyAndRedeem(ctx, "feedfacefeedfacefeedfacefeedface", "any")
		if !errors.Is(err, domain.ErrSessionNotFound) {
			t.Fatalf("want ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("bad signature is refused before touching the store", func(t *testing.T) {
		store := NewMockSessionStore()
		gw := &MockGateway{VerifyErr: domain.ErrInvalidSignature}
		uc := usecase.NewRedeemUseCase(store, gw, &MockRecordRepo{}, newTestLogger())
		sess := seedSession(t, store, time.Hour)

		_, err := uc.VerifyAndRedeem(ctx, sess.ID, "forged")
		if !errors.Is(err, domain.ErrInvalidSignature) {
			t.Fatalf("want ErrInvalidSignature, got %v", err)
		}
		got, err := store.Get(ctx, sess.ID)
		if err != nil {
			t.Fatalf("get session: %v", err)
		}
		if got.Status != model.SessionStatusPending {
			t.Fatalf("session should stay pending after refused signature, got %s", got.Status)
		}
	})
}
