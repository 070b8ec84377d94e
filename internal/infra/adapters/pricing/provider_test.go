//go:build !integration

package pricing_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"resume-checkout/internal/domain"
	"resume-checkout/internal/domain/model"
	"resume-checkout/internal/infra/adapters/pricing"
)

func TestHTTPProvider_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("valid quote", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/prices/PK/resume_analysis" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"product_id":"resume_analysis","region":"pk","amount":1100,"currency":"pkr"}`))
		}))
		defer ts.Close()

		p, err := pricing.NewHTTPProvider(ts.URL, time.Second)
		if err != nil {
			t.Fatalf("new provider: %v", err)
		}
		price, err := p.Fetch(ctx, "resume_analysis", "PK")
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if price.Amount != 1100 || price.Currency != "PKR" || price.Region != "PK" {
			t.Fatalf("quote not normalized: %+v", price)
		}
		if price.Source != model.PriceSourceLive {
			t.Fatalf("want live source, got %s", price.Source)
		}
		if price.Display != model.FormatAmount(1100, "PKR") {
			t.Fatalf("display not formatted: %q", price.Display)
		}
	})

	t.Run("malformed quotes are rejected", func(t *testing.T) {
		bodies := []string{
			`{"product_id":"other","region":"PK","amount":1100,"currency":"PKR"}`,
			`{"product_id":"resume_analysis","region":"","amount":1100,"currency":"PKR"}`,
			`{"product_id":"resume_analysis","region":"PK","amount":0,"currency":"PKR"}`,
			`{"product_id":"resume_analysis","region":"PK","amount":-5,"currency":"PKR"}`,
			`{"product_id":"resume_analysis","region":"PK","amount":1100,"currency":"RUPEES"}`,
		}
		for _, body := range bodies {
			resp := body
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(resp))
			}))
			p, err := pricing.NewHTTPProvider(ts.URL, time.Second)
			if err != nil {
				t.Fatalf("new provider: %v", err)
			}
			if _, err := p.Fetch(ctx, "resume_analysis", "PK"); err == nil {
				t.Errorf("quote %s should be rejected", body)
			}
			ts.Close()
		}
	})

	t.Run("http error status", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		p, err := pricing.NewHTTPProvider(ts.URL, time.Second)
		if err != nil {
			t.Fatalf("new provider: %v", err)
		}
		if _, err := p.Fetch(ctx, "resume_analysis", "PK"); err == nil {
			t.Fatal("5xx should fail the fetch")
		}
	})

	t.Run("slow provider times out", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		}))
		defer ts.Close()

		p, err := pricing.NewHTTPProvider(ts.URL, 50*time.Millisecond)
		if err != nil {
			t.Fatalf("new provider: %v", err)
		}
		_, err = p.Fetch(ctx, "resume_analysis", "PK")
		if err == nil {
			t.Fatal("want timeout error")
		}
		if !errors.Is(err, domain.ErrProviderTimeout) {
			t.Fatalf("want ErrProviderTimeout, got %v", err)
		}
	})
}
