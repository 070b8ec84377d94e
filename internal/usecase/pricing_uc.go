package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"resume-checkout/internal/domain"
	"resume-checkout/internal/domain/model"
	"resume-checkout/internal/domain/ports/adapter"
	"resume-checkout/internal/domain/ports/repository"
	"resume-checkout/internal/infra/metrics"
)

// PricingUseCase resolves a product's price in the buyer's region.
//
// Resolution order: live-price cache, then the live provider behind a
// circuit breaker, then the bundled fallback table. Live failures are
// recovered locally and logged; they are never surfaced to the buyer.
type PricingUseCase interface {
	Resolve(ctx context.Context, productID, region string) (*model.RegionalPrice, error)

	// RegionTable resolves every product for one region and returns the
	// fallback table version alongside.
	RegionTable(ctx context.Context, region string) ([]*model.RegionalPrice, string, error)
}

var _ PricingUseCase = (*pricingUC)(nil)

type pricingUC struct {
	provider adapter.PricingProvider // nil disables live pricing
	table    repository.PriceTable
	cache    repository.KVCache // nil disables the live-price cache
	cacheTTL time.Duration
	breaker  *gobreaker.CircuitBreaker
	log      *zerolog.Logger
}

// BreakerSettings bound how hard we lean on a failing live provider.
type BreakerSettings struct {
	FailureThreshold int
	Cooldown         time.Duration
}

func NewPricingUseCase(
	provider adapter.PricingProvider,
	table repository.PriceTable,
	cache repository.KVCache,
	cacheTTL time.Duration,
	bs BreakerSettings,
	logger *zerolog.Logger,
) PricingUseCase {
	ucLog := logger.With().Str("component", "PricingUC").Logger()
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "pricing-live",
		MaxRequests: 1,
		Timeout:     bs.Cooldown,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= uint32(bs.FailureThreshold)
		},
		OnStateChange: func(_ string, _ gobreaker.State, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				metrics.IncPricingBreakerOpen()
				ucLog.Warn().Msg("live pricing breaker opened; serving fallback")
			}
		},
	})
	return &pricingUC{
		provider: provider,
		table:    table,
		cache:    cache,
		cacheTTL: cacheTTL,
		breaker:  cb,
		log:      &ucLog,
	}
}

func (p *pricingUC) Resolve(ctx context.Context, productID, region string) (*model.RegionalPrice, error) {
	region = normalizeRegion(region, p.table.DefaultRegion())

	if p.provider != nil {
		if price := p.fromCache(ctx, productID, region); price != nil {
			metrics.IncPricingResolution("live", "ok")
			return price, nil
		}
		price, err := p.fetchLive(ctx, productID, region)
		if err == nil {
			p.toCache(ctx, price)
			metrics.IncPricingResolution("live", "ok")
			return price, nil
		}
		// Recovered locally: timeouts, transport errors, malformed quotes
		// and open-breaker skips all land on the fallback table.
		metrics.IncPricingResolution("live", "error")
		if !errors.Is(err, gobreaker.ErrOpenState) && !errors.Is(err, gobreaker.ErrTooManyRequests) {
			p.log.Warn().Err(err).Str("product", productID).Str("region", region).Msg("live pricing failed; falling back")
		}
	}

	if price, ok := p.table.Lookup(productID, region); ok {
		metrics.IncPricingResolution("fallback", "ok")
		return price, nil
	}
	metrics.IncPricingResolution("fallback", "error")
	return nil, fmt.Errorf("%w: product=%s region=%s", domain.ErrPricingUnavailable, productID, region)
}

func (p *pricingUC) RegionTable(ctx context.Context, region string) ([]*model.RegionalPrice, string, error) {
	products := p.table.Products()
	out := make([]*model.RegionalPrice, 0, len(products))
	for _, prod := range products {
		price, err := p.Resolve(ctx, prod.ID, region)
		if err != nil {
			return nil, "", err
		}
		out = append(out, price)
	}
	return out, p.table.Version(), nil
}

func (p *pricingUC) fetchLive(ctx context.Context, productID, region string) (*model.RegionalPrice, error) {
	start := time.Now()
	v, err := p.breaker.Execute(func() (interface{}, error) {
		return p.provider.Fetch(ctx, productID, region)
	})
	metrics.ObservePricingFetchLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, err
	}
	return v.(*model.RegionalPrice), nil
}

func cacheKey(productID, region string) string {
	return fmt.Sprintf("price:%s:%s", productID, region)
}

func (p *pricingUC) fromCache(ctx context.Context, productID, region string) *model.RegionalPrice {
	if p.cache == nil {
		return nil
	}
	raw, err := p.cache.Get(ctx, cacheKey(productID, region))
	if err != nil {
		if !errors.Is(err, repository.ErrCacheMiss) {
			p.log.Warn().Err(err).Msg("price cache read failed")
		}
		metrics.IncPricingCache("miss")
		return nil
	}
	var price model.RegionalPrice
	if json.Unmarshal([]byte(raw), &price) != nil {
		metrics.IncPricingCache("miss")
		return nil
	}
	metrics.IncPricingCache("hit")
	return &price
}

func (p *pricingUC) toCache(ctx context.Context, price *model.RegionalPrice) {
	if p.cache == nil {
		return
	}
	b, _ := json.Marshal(price)
	if err := p.cache.Set(ctx, cacheKey(price.ProductID, price.Region), string(b), p.cacheTTL); err != nil {
		p.log.Warn().Err(err).Msg("price cache write failed")
	}
}

func normalizeRegion(region, def string) string {
	region = strings.ToUpper(strings.TrimSpace(region))
	if len(region) != 2 {
		return def
	}
	return region
}
