package adapter

import (
	"context"

	"resume-checkout/internal/domain/model"
)

// PricingProvider is the port for the external live pricing service.
//
// Fetch must respect the context deadline and return domain.ErrProviderTimeout
// when it is exceeded. A structurally invalid response (missing fields,
// non-positive amount, malformed currency) is an error, never a zero-value
// price.
type PricingProvider interface {
	Name() string
	Fetch(ctx context.Context, productID, region string) (*model.RegionalPrice, error)
}
