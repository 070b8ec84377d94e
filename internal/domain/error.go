package domain

import "errors"

var (
	// Session redemption errors; surfaced verbatim to callers so the web
	// layer can render "link expired" vs "already used" vs "invalid link".
	ErrSessionNotFound         = errors.New("payment session not found")
	ErrSessionExpired          = errors.New("payment session expired")
	ErrSessionAlreadyCompleted = errors.New("payment session already completed")

	// Pricing errors. ErrPricingUnavailable means both the live provider
	// and the fallback table failed; treat as a configuration problem.
	ErrPricingUnavailable = errors.New("pricing unavailable for product and region")
	ErrProviderTimeout    = errors.New("pricing provider timed out")
	ErrUnknownProduct     = errors.New("unknown product")

	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInvalidSignature = errors.New("invalid return signature")
	ErrOperationFailed  = errors.New("operation failed")
)
