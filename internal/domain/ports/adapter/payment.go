package adapter

// PaymentGateway builds the outbound redirect to the payment provider's
// hosted checkout and validates the buyer's return.
//
// The checkout URL embeds only the opaque session reference; never the
// price, never the payload.
type PaymentGateway interface {
	Name() string

	// CheckoutURL returns the provider URL the buyer is redirected to.
	CheckoutURL(sessionID string) (string, error)

	// SignReturn produces the signature the provider echoes back on the
	// buyer's return. Empty when signing is not configured.
	SignReturn(sessionID string) string

	// VerifyReturn checks the echoed signature before redemption. Returns
	// domain.ErrInvalidSignature on mismatch.
	VerifyReturn(sessionID, signature string) error
}
