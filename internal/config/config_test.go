//go:build !integration

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"resume-checkout/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults fill the gaps", func(t *testing.T) {
		path := writeConfig(t, `
payment:
  provider:
    base_url: https://pay.example.test
    return_url: https://app.example.test/payment/return
`)
		cfg, err := config.LoadConfig(path, false)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if cfg.Server.Port != 8080 {
			t.Fatalf("want default port 8080, got %d", cfg.Server.Port)
		}
		if cfg.Session.TTL != time.Hour {
			t.Fatalf("want default ttl 1h, got %v", cfg.Session.TTL)
		}
		if cfg.Session.Store != "memory" {
			t.Fatalf("want default store memory, got %s", cfg.Session.Store)
		}
		if cfg.Pricing.DefaultRegion != "US" {
			t.Fatalf("want default region US, got %s", cfg.Pricing.DefaultRegion)
		}
		if cfg.Pricing.Breaker.FailureThreshold != 5 || cfg.Pricing.Breaker.Cooldown != 30*time.Second {
			t.Fatalf("breaker defaults wrong: %+v", cfg.Pricing.Breaker)
		}
	})

	t.Run("grace never undercuts the sweep interval", func(t *testing.T) {
		path := writeConfig(t, `
payment:
  provider:
    base_url: https://pay.example.test
    return_url: https://app.example.test/payment/return
session:
  sweep_interval: 15m
  grace: 1m
`)
		cfg, err := config.LoadConfig(path, false)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if cfg.Session.Grace != 30*time.Minute {
			t.Fatalf("want grace 2x sweep = 30m, got %v", cfg.Session.Grace)
		}
	})

	t.Run("payment provider required outside dev", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 9090
`)
		if _, err := config.LoadConfig(path, false); err == nil {
			t.Fatal("want error for missing payment provider")
		}
		cfg, err := config.LoadConfig(path, true)
		if err != nil {
			t.Fatalf("dev load: %v", err)
		}
		if !cfg.Runtime.Dev {
			t.Fatal("dev flag lost")
		}
	})

	t.Run("redis store needs a redis url", func(t *testing.T) {
		path := writeConfig(t, `
payment:
  provider:
    base_url: https://pay.example.test
    return_url: https://app.example.test/payment/return
session:
  store: redis
`)
		if _, err := config.LoadConfig(path, false); err == nil {
			t.Fatal("want error for redis store without redis.url")
		}
	})

	t.Run("unknown store rejected", func(t *testing.T) {
		path := writeConfig(t, `
payment:
  provider:
    base_url: https://pay.example.test
    return_url: https://app.example.test/payment/return
session:
  store: dynamo
`)
		if _, err := config.LoadConfig(path, false); err == nil {
			t.Fatal("want error for unknown store")
		}
	})
}
