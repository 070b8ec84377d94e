// File: internal/usecase/redeem_uc.go
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"resume-checkout/internal/domain"
	"resume-checkout/internal/domain/model"
	"resume-checkout/internal/domain/ports/adapter"
	"resume-checkout/internal/domain/ports/repository"
	"resume-checkout/internal/infra/logging"
	"resume-checkout/internal/infra/metrics"
)

// RedeemUseCase handles the buyer's return from the provider: it validates
// the signature and atomically redeems the session, releasing the bound
// payload at most once.
type RedeemUseCase interface {
	VerifyAndRedeem(ctx context.Context, sessionID, signature string) (*model.PaymentSession, error)
}

var _ RedeemUseCase = (*redeemUC)(nil)

type redeemUC struct {
	store   repository.SessionStore
	gateway adapter.PaymentGateway
	records repository.PaymentRecordRepository
	log     *zerolog.Logger
}

func NewRedeemUseCase(
	store repository.SessionStore,
	gateway adapter.PaymentGateway,
	records repository.PaymentRecordRepository,
	logger *zerolog.Logger,
) RedeemUseCase {
	ucLog := logger.With().Str("component", "RedeemUC").Logger()
	return &redeemUC{store: store, gateway: gateway, records: records, log: &ucLog}
}

func (u *redeemUC) VerifyAndRedeem(ctx context.Context, sessionID, signature string) (*model.PaymentSession, error) {
	defer logging.TraceDuration(u.log, "RedeemUC.VerifyAndRedeem")()

	if sessionID == "" {
		metrics.IncRedemptionFailure("not_found")
		return nil, domain.ErrSessionNotFound
	}
	if err := u.gateway.VerifyReturn(sessionID, signature); err != nil {
		metrics.IncRedemptionFailure("bad_signature")
		u.log.Warn().Str("session_ref", sessionID).Msg("return signature rejected")
		return nil, err
	}

	// Read the immutable fields first; TryComplete below is the only
	// mutation and decides who wins under concurrent returns.
	sess, err := u.store.Get(ctx, sessionID)
	if err != nil {
		metrics.IncRedemptionFailure(failureReason(err))
		return nil, err
	}

	now := time.Now()
	payload, err := u.store.TryComplete(ctx, sessionID, now)
	if err != nil {
		metrics.IncRedemptionFailure(failureReason(err))
		u.log.Info().Err(err).Str("session_ref", sessionID).Msg("redemption refused")
		return nil, err
	}

	sess.Status = model.SessionStatusCompleted
	sess.CompletedAt = &now
	sess.Payload = *payload

	metrics.IncSessionRedeemed()
	metrics.AddPaymentRevenue(sess.Currency, sess.Amount)
	if err := u.records.MarkRedeemed(ctx, sessionID, now); err != nil {
		u.log.Error().Err(err).Str("session_ref", sessionID).Msg("payment record redeem mark failed")
	}

	u.log.Info().
		Str("session_ref", sessionID).
		Str("product", sess.ProductID).
		Int64("amount", sess.Amount).
		Str("currency", sess.Currency).
		Msg("session redeemed")
	return sess, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		return "expired"
	case errors.Is(err, domain.ErrSessionAlreadyCompleted):
		return "already_completed"
	case errors.Is(err, domain.ErrSessionNotFound):
		return "not_found"
	default:
		return "other"
	}
}
