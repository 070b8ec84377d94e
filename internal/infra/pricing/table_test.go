//go:build !integration

package pricing_test

import (
	"testing"

	"resume-checkout/internal/domain/model"
	"resume-checkout/internal/infra/pricing"
)

func TestLoadEmbedded(t *testing.T) {
	table, err := pricing.LoadEmbedded()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.Version() == "" {
		t.Fatal("missing version")
	}
	if table.DefaultRegion() != "US" {
		t.Fatalf("want default region US, got %s", table.DefaultRegion())
	}
	if len(table.Products()) < 3 {
		t.Fatalf("want at least 3 products, got %d", len(table.Products()))
	}
	// Every product must price the default region or startup would fail.
	for _, p := range table.Products() {
		if _, ok := table.Lookup(p.ID, table.DefaultRegion()); !ok {
			t.Fatalf("product %s missing default-region price", p.ID)
		}
	}
}

func TestTable_Lookup(t *testing.T) {
	table, err := pricing.LoadEmbedded()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	t.Run("regional price", func(t *testing.T) {
		price, ok := table.Lookup("resume_analysis", "PK")
		if !ok {
			t.Fatal("lookup failed")
		}
		if price.Amount != 1200 || price.Currency != "PKR" {
			t.Fatalf("want 1200 PKR, got %d %s", price.Amount, price.Currency)
		}
		if price.Source != model.PriceSourceFallback {
			t.Fatalf("want fallback source, got %s", price.Source)
		}
		if price.Display != "₨1,200" {
			t.Fatalf("want display ₨1,200, got %q", price.Display)
		}
	})

	t.Run("unknown region falls back to default", func(t *testing.T) {
		price, ok := table.Lookup("resume_analysis", "XX")
		if !ok {
			t.Fatal("lookup failed")
		}
		if price.Region != "US" || price.Currency != "USD" {
			t.Fatalf("want US/USD, got %s/%s", price.Region, price.Currency)
		}
	})

	t.Run("case-insensitive region", func(t *testing.T) {
		price, ok := table.Lookup("resume_analysis", "pk")
		if !ok || price.Currency != "PKR" {
			t.Fatalf("lowercase region should resolve: %+v %v", price, ok)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		if _, ok := table.Lookup("nope", "US"); ok {
			t.Fatal("unknown product should not resolve")
		}
	})
}
