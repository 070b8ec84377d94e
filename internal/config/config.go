// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AdminConfig struct {
	Secret     string        `yaml:"secret"`      // shared secret exchanged for a JWT
	JWTSecret  string        `yaml:"jwt_secret"`  // HMAC key for admin tokens
	SessionTTL time.Duration `yaml:"session_ttl"` // admin token lifetime
}

type DatabaseConfig struct {
	URL string `yaml:"url"` // empty disables durable payment records
}

type RedisConfig struct {
	URL      string `yaml:"url"` // empty disables redis (memory store + no price cache)
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type BreakerConfig struct {
	FailureThreshold int           `yaml:"failure_threshold"` // consecutive live-fetch failures before opening
	Cooldown         time.Duration `yaml:"cooldown"`          // open-state duration before a probe
}

type PricingConfig struct {
	ProviderURL   string        `yaml:"provider_url"` // empty disables live pricing entirely
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	DefaultRegion string        `yaml:"default_region"`
	Breaker       BreakerConfig `yaml:"breaker"`
}

type SessionConfig struct {
	Store         string        `yaml:"store"` // memory | redis
	TTL           time.Duration `yaml:"ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
	Grace         time.Duration `yaml:"grace"` // keep expired sessions visible this long before eviction
}

type PaymentConfig struct {
	Provider struct {
		BaseURL      string `yaml:"base_url"`
		ReturnURL    string `yaml:"return_url"`
		SigningKey   string `yaml:"signing_key"` // HMAC key for the return signature; empty disables signing
		CheckoutPath string `yaml:"checkout_path"`
	} `yaml:"provider"`
}

type AIConfig struct {
	OpenAIKey       string `yaml:"openai_key"`
	GeminiKey       string `yaml:"gemini_key"`
	DefaultModel    string `yaml:"default_model"`
	MaxPromptTokens int    `yaml:"max_prompt_tokens"` // resume+posting budget before truncation
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Admin    AdminConfig    `yaml:"admin"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Session  SessionConfig  `yaml:"session"`
	Payment  PaymentConfig  `yaml:"payment"`
	AI       AIConfig       `yaml:"ai"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Admin.SessionTTL <= 0 {
		cfg.Admin.SessionTTL = 30 * time.Minute
	}
	if cfg.Pricing.FetchTimeout <= 0 {
		cfg.Pricing.FetchTimeout = 3 * time.Second
	}
	if cfg.Pricing.CacheTTL <= 0 {
		cfg.Pricing.CacheTTL = 3 * time.Minute
	}
	if cfg.Pricing.DefaultRegion == "" {
		cfg.Pricing.DefaultRegion = "US"
	}
	if cfg.Pricing.Breaker.FailureThreshold <= 0 {
		cfg.Pricing.Breaker.FailureThreshold = 5
	}
	if cfg.Pricing.Breaker.Cooldown <= 0 {
		cfg.Pricing.Breaker.Cooldown = 30 * time.Second
	}
	if cfg.Session.Store == "" {
		cfg.Session.Store = "memory"
	}
	cfg.Session.TTL = normalizeTTL(cfg.Session.TTL)
	if cfg.Session.SweepInterval <= 0 {
		cfg.Session.SweepInterval = time.Minute
	}
	if cfg.Session.Grace <= 0 {
		cfg.Session.Grace = 10 * time.Minute
	}
	if cfg.Session.Grace < 2*cfg.Session.SweepInterval {
		cfg.Session.Grace = 2 * cfg.Session.SweepInterval
	}
	if cfg.Payment.Provider.CheckoutPath == "" {
		cfg.Payment.Provider.CheckoutPath = "/checkout"
	}
	if cfg.AI.DefaultModel == "" {
		cfg.AI.DefaultModel = "gpt-4o-mini"
	}
	if cfg.AI.MaxPromptTokens <= 0 {
		cfg.AI.MaxPromptTokens = 6000
	}

	// Minimal validation. Dev mode may run without a payment provider;
	// the noop gateway takes over.
	if !dev {
		if cfg.Payment.Provider.BaseURL == "" {
			return nil, errors.New("payment.provider.base_url is required")
		}
		if cfg.Payment.Provider.ReturnURL == "" {
			return nil, errors.New("payment.provider.return_url is required")
		}
	}
	if cfg.Session.Store != "memory" && cfg.Session.Store != "redis" {
		return nil, fmt.Errorf("session.store must be memory or redis, got %q", cfg.Session.Store)
	}
	if cfg.Session.Store == "redis" && cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required when session.store is redis")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Hour
	}
	return d
}
