// File: internal/usecase/checkout_uc.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"resume-checkout/internal/domain"
	"resume-checkout/internal/domain/model"
	"resume-checkout/internal/domain/ports/adapter"
	"resume-checkout/internal/domain/ports/repository"
	"resume-checkout/internal/infra/logging"
	"resume-checkout/internal/infra/metrics"
)

// CheckoutResult is what the buyer needs to proceed to the provider.
type CheckoutResult struct {
	SessionID  string            `json:"session_id"`
	PaymentURL string            `json:"payment_url"`
	Amount     int64             `json:"amount"`
	Currency   string            `json:"currency"`
	Display    string            `json:"display"`
	Source     model.PriceSource `json:"source"`
	ExpiresAt  time.Time         `json:"expires_at"`
}

// CheckoutUseCase fixes a price, binds the buyer's work into a session and
// builds the redirect to the payment provider.
type CheckoutUseCase interface {
	CreatePayment(ctx context.Context, productID string, productType model.ProductType, region string, payload model.Payload) (*CheckoutResult, error)
}

var _ CheckoutUseCase = (*checkoutUC)(nil)

type checkoutUC struct {
	prices  PricingUseCase
	table   repository.PriceTable
	store   repository.SessionStore
	gateway adapter.PaymentGateway
	records repository.PaymentRecordRepository
	ttl     time.Duration
	log     *zerolog.Logger
}

func NewCheckoutUseCase(
	prices PricingUseCase,
	table repository.PriceTable,
	store repository.SessionStore,
	gateway adapter.PaymentGateway,
	records repository.PaymentRecordRepository,
	ttl time.Duration,
	logger *zerolog.Logger,
) CheckoutUseCase {
	ucLog := logger.With().Str("component", "CheckoutUC").Logger()
	return &checkoutUC{
		prices:  prices,
		table:   table,
		store:   store,
		gateway: gateway,
		records: records,
		ttl:     ttl,
		log:     &ucLog,
	}
}

func (u *checkoutUC) CreatePayment(ctx context.Context, productID string, productType model.ProductType, region string, payload model.Payload) (*CheckoutResult, error) {
	defer logging.TraceDuration(u.log, "CheckoutUC.CreatePayment")()

	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	product, ok := u.table.Product(productID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProduct, productID)
	}
	if !model.ValidProductType(productType) || product.Type != productType {
		return nil, fmt.Errorf("%w: product_type %q does not match %s", domain.ErrInvalidArgument, productType, productID)
	}

	// Fix the price now; the session keeps it even if live pricing moves.
	price, err := u.prices.Resolve(ctx, productID, region)
	if err != nil {
		return nil, err
	}

	sess, err := model.NewPaymentSession(product, price, payload, u.ttl)
	if err != nil {
		return nil, err
	}
	if err := u.store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	// The durable record is best-effort; a stats gap must not block a sale.
	if err := u.records.Save(ctx, model.NewPaymentRecord(sess)); err != nil {
		u.log.Error().Err(err).Str("session_ref", sess.ID).Msg("payment record save failed")
	}

	payURL, err := u.gateway.CheckoutURL(sess.ID)
	if err != nil {
		return nil, fmt.Errorf("build checkout url: %w", err)
	}

	metrics.IncSessionCreated(productID, string(price.Source))
	u.log.Info().
		Str("session_ref", sess.ID).
		Str("product", productID).
		Str("region", price.Region).
		Int64("amount", price.Amount).
		Str("currency", price.Currency).
		Str("price_source", string(price.Source)).
		Msg("payment session created")

	return &CheckoutResult{
		SessionID:  sess.ID,
		PaymentURL: payURL,
		Amount:     price.Amount,
		Currency:   price.Currency,
		Display:    price.Display,
		Source:     price.Source,
		ExpiresAt:  sess.ExpiresAt,
	}, nil
}
