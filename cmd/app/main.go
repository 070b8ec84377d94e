// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-checkout/internal/config"
	"resume-checkout/internal/domain/ports/adapter"
	"resume-checkout/internal/domain/ports/repository"
	aiAdapters "resume-checkout/internal/infra/adapters/ai"
	payAdapters "resume-checkout/internal/infra/adapters/payment"
	priceAdapters "resume-checkout/internal/infra/adapters/pricing"
	pg "resume-checkout/internal/infra/db/postgres"
	"resume-checkout/internal/infra/logging"
	"resume-checkout/internal/infra/metrics"
	"resume-checkout/internal/infra/pricing"
	red "resume-checkout/internal/infra/redis"
	"resume-checkout/internal/infra/sched"
	"resume-checkout/internal/infra/store"
	"resume-checkout/internal/infra/web"
	"resume-checkout/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop gateway/analyzer fallbacks)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}
	metrics.MustRegister()

	// ---- Fallback price table ----
	table, err := pricing.LoadEmbedded()
	if err != nil {
		log.Fatalf("price table: %v", err)
	}
	logger.Info().Str("version", table.Version()).Msg("fallback price table loaded")

	// ---- Redis (optional) ----
	var redisClient *red.Client
	if cfg.Redis.URL != "" {
		redisClient, err = red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisClient.Close()
	}

	// ---- Session store ----
	var sessions repository.SessionStore
	if cfg.Session.Store == "redis" {
		sessions = red.NewSessionStore(redisClient, cfg.Session.TTL, cfg.Session.Grace)
	} else {
		sessions = store.NewMemoryStore(cfg.Session.Grace)
	}

	// ---- Postgres payment records (optional) ----
	var records repository.PaymentRecordRepository = pg.NewNoopRecordRepo()
	if cfg.Database.URL != "" {
		pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer pool.Close()
		repo := pg.NewPaymentRecordRepo(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("postgres schema: %v", err)
		}
		records = repo
	}

	// ---- Pricing: live provider + cache + breaker over the fallback table ----
	var provider adapter.PricingProvider
	if cfg.Pricing.ProviderURL != "" {
		provider, err = priceAdapters.NewHTTPProvider(cfg.Pricing.ProviderURL, cfg.Pricing.FetchTimeout)
		if err != nil {
			log.Fatalf("pricing provider: %v", err)
		}
	} else {
		logger.Info().Msg("live pricing disabled; serving fallback table only")
	}
	var priceCache repository.KVCache
	if redisClient != nil {
		priceCache = red.NewKVCache(redisClient)
	}
	pricingUC := usecase.NewPricingUseCase(provider, table, priceCache, cfg.Pricing.CacheTTL, usecase.BreakerSettings{
		FailureThreshold: cfg.Pricing.Breaker.FailureThreshold,
		Cooldown:         cfg.Pricing.Breaker.Cooldown,
	}, logger)

	// ---- Payment gateway ----
	var gateway adapter.PaymentGateway
	if cfg.Payment.Provider.BaseURL != "" {
		gateway, err = payAdapters.NewHostedGateway(
			cfg.Payment.Provider.BaseURL,
			cfg.Payment.Provider.CheckoutPath,
			cfg.Payment.Provider.ReturnURL,
			cfg.Payment.Provider.SigningKey,
		)
		if err != nil {
			log.Fatalf("payment gateway: %v", err)
		}
	} else {
		logger.Warn().Msg("payment provider not configured; using noop gateway")
		gateway = payAdapters.NewNoopGateway(cfg.Payment.Provider.ReturnURL)
	}

	// ---- Analyzer chain (OpenAI -> Gemini -> noop in dev) ----
	var chain []adapter.Analyzer
	if cfg.AI.OpenAIKey != "" {
		oa, err := aiAdapters.NewOpenAIAnalyzer(cfg.AI.OpenAIKey, cfg.AI.DefaultModel, cfg.AI.MaxPromptTokens)
		if err != nil {
			log.Fatalf("openai adapter: %v", err)
		}
		chain = append(chain, oa)
	}
	if cfg.AI.GeminiKey != "" {
		ga, err := aiAdapters.NewGeminiAnalyzer(ctx, cfg.AI.GeminiKey, cfg.AI.DefaultModel, cfg.AI.MaxPromptTokens)
		if err != nil {
			log.Fatalf("gemini adapter: %v", err)
		}
		chain = append(chain, ga)
	}
	if len(chain) == 0 && cfg.Runtime.Dev {
		chain = append(chain, aiAdapters.NewNoopAnalyzer())
	}
	var analyzer adapter.Analyzer
	switch len(chain) {
	case 0:
		logger.Warn().Msg("no analyzer configured; returns deliver the payload without a report")
	case 1:
		analyzer = chain[0]
	default:
		analyzer = aiAdapters.NewMultiAnalyzer(logger, chain...)
	}

	// ---- Use cases ----
	checkoutUC := usecase.NewCheckoutUseCase(pricingUC, table, sessions, gateway, records, cfg.Session.TTL, logger)
	redeemUC := usecase.NewRedeemUseCase(sessions, gateway, records, logger)
	statsUC := usecase.NewStatsUseCase(records)

	// ---- HTTP server ----
	var auth *web.AuthManager
	if cfg.Admin.JWTSecret != "" {
		auth = web.NewAuthManager(cfg.Admin.JWTSecret, !cfg.Runtime.Dev, cfg.Admin.SessionTTL)
	}
	srv := web.NewServer(pricingUC, checkoutUC, redeemUC, statsUC, analyzer, auth, cfg.Admin.Secret, logger)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Expiry worker ----
	worker := sched.NewExpiryWorker(cfg.Session.SweepInterval, sessions, logger)
	go func() { _ = worker.Run(ctx) }()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	if err := server.Shutdown(shCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown error")
	}
}
