package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resume-checkout/internal/domain"
	"resume-checkout/internal/domain/model"
	"resume-checkout/internal/domain/ports/adapter"
)

var _ adapter.PricingProvider = (*HTTPProvider)(nil)

// HTTPProvider fetches live regional pricing from the pricing service using
// direct HTTP calls.
type HTTPProvider struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPProvider creates a provider against baseURL with a hard per-fetch
// timeout.
func NewHTTPProvider(baseURL string, timeout time.Duration) (*HTTPProvider, error) {
	if baseURL == "" {
		return nil, errors.New("pricing provider base url empty")
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (p *HTTPProvider) Name() string { return "pricing-http" }

// priceResponse is the provider's wire format for a single quote.
type priceResponse struct {
	ProductID string `json:"product_id"`
	Region    string `json:"region"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

func (p *HTTPProvider) Fetch(ctx context.Context, productID, region string) (*model.RegionalPrice, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	u := fmt.Sprintf("%s/v1/prices/%s/%s", p.baseURL, url.PathEscape(region), url.PathEscape(productID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, domain.ErrProviderTimeout
		}
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pricing provider http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var quote priceResponse
	if err := json.Unmarshal(body, &quote); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}
	if err := validateQuote(&quote, productID); err != nil {
		return nil, err
	}

	return &model.RegionalPrice{
		ProductID: quote.ProductID,
		Region:    strings.ToUpper(quote.Region),
		Amount:    quote.Amount,
		Currency:  strings.ToUpper(quote.Currency),
		Display:   model.FormatAmount(quote.Amount, quote.Currency),
		Source:    model.PriceSourceLive,
	}, nil
}

// validateQuote enforces structural validity; a malformed quote must fall
// back, never be served.
func validateQuote(q *priceResponse, wantProduct string) error {
	if q.ProductID == "" || q.ProductID != wantProduct {
		return fmt.Errorf("pricing provider: product mismatch %q", q.ProductID)
	}
	if q.Region == "" {
		return errors.New("pricing provider: missing region")
	}
	if q.Amount <= 0 {
		return fmt.Errorf("pricing provider: non-positive amount %d", q.Amount)
	}
	if len(q.Currency) != 3 {
		return fmt.Errorf("pricing provider: malformed currency %q", q.Currency)
	}
	return nil
}
