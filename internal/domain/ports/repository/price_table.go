package repository

import "resume-checkout/internal/domain/model"

// PriceTable is the static, versioned fallback price source bundled with
// the binary. Lookups never perform I/O.
type PriceTable interface {
	// Version identifies the bundled table revision.
	Version() string

	// Lookup returns the fallback price for (productID, region). Unknown
	// regions resolve against the table's default region; ok is false only
	// when the product itself is unknown.
	Lookup(productID, region string) (price *model.RegionalPrice, ok bool)

	// Products lists everything purchasable, bundles included.
	Products() []model.Product

	// Product returns the catalog entry for id.
	Product(id string) (model.Product, bool)

	DefaultRegion() string
}
