package pricing

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"resume-checkout/internal/domain/model"
	"resume-checkout/internal/domain/ports/repository"
)

//go:embed fallback_prices.yaml
var fallbackYAML []byte

var _ repository.PriceTable = (*Table)(nil)

type tableEntry struct {
	Amount   int64  `yaml:"amount"`
	Currency string `yaml:"currency"`
}

type tableProduct struct {
	ID     string                `yaml:"id"`
	Type   model.ProductType     `yaml:"type"`
	Name   string                `yaml:"name"`
	Prices map[string]tableEntry `yaml:"prices"`
}

type tableDoc struct {
	Version       string         `yaml:"version"`
	DefaultRegion string         `yaml:"default_region"`
	Products      []tableProduct `yaml:"products"`
}

// Table is the static fallback price source. It is built once at startup
// and never mutated; lookups are lock-free reads.
type Table struct {
	version       string
	defaultRegion string
	products      []model.Product
	byID          map[string]tableProduct
}

// LoadEmbedded parses the table bundled into the binary.
func LoadEmbedded() (*Table, error) {
	return load(fallbackYAML)
}

func load(raw []byte) (*Table, error) {
	var doc tableDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse fallback price table: %w", err)
	}
	if doc.Version == "" {
		return nil, fmt.Errorf("fallback price table missing version")
	}
	if doc.DefaultRegion == "" {
		doc.DefaultRegion = "US"
	}
	t := &Table{
		version:       doc.Version,
		defaultRegion: strings.ToUpper(doc.DefaultRegion),
		byID:          make(map[string]tableProduct, len(doc.Products)),
	}
	for _, p := range doc.Products {
		if p.ID == "" || !model.ValidProductType(p.Type) {
			return nil, fmt.Errorf("fallback price table: bad product entry %q", p.ID)
		}
		if _, ok := p.Prices[t.defaultRegion]; !ok {
			return nil, fmt.Errorf("fallback price table: product %q has no price for default region %s", p.ID, t.defaultRegion)
		}
		t.byID[p.ID] = p
		t.products = append(t.products, model.Product{ID: p.ID, Type: p.Type, Name: p.Name})
	}
	return t, nil
}

func (t *Table) Version() string       { return t.version }
func (t *Table) DefaultRegion() string { return t.defaultRegion }

func (t *Table) Products() []model.Product {
	out := make([]model.Product, len(t.products))
	copy(out, t.products)
	return out
}

func (t *Table) Product(id string) (model.Product, bool) {
	p, ok := t.byID[id]
	if !ok {
		return model.Product{}, false
	}
	return model.Product{ID: p.ID, Type: p.Type, Name: p.Name}, true
}

// Lookup resolves the fallback price for (productID, region). Unknown
// regions resolve against the default region; ok is false only when the
// product itself is unknown.
func (t *Table) Lookup(productID, region string) (*model.RegionalPrice, bool) {
	p, ok := t.byID[productID]
	if !ok {
		return nil, false
	}
	region = strings.ToUpper(strings.TrimSpace(region))
	entry, ok := p.Prices[region]
	if !ok {
		region = t.defaultRegion
		entry = p.Prices[region]
	}
	return &model.RegionalPrice{
		ProductID: productID,
		Region:    region,
		Amount:    entry.Amount,
		Currency:  entry.Currency,
		Display:   model.FormatAmount(entry.Amount, entry.Currency),
		Source:    model.PriceSourceFallback,
	}, true
}
