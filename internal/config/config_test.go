package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoadWithDefaults_Succeeds(t *testing.T) {
	for _, k := range []string{"DB_PATH", "GRPC_ADDRESS", "JWT_SECRET", "REDIS_ADDR", "CACHE_TTL", "RATE_LIMIT_RPS"} {
		os.Unsetenv(k)
	}
	cfg, err := LoadWithDefaults()
	if err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}
	if cfg.GRPC.Address == "" || cfg.Database.Path == "" || cfg.Auth.JWTSecret == "" {
		t.Fatalf("unexpected empty defaults: %+v", cfg)
	}
	if cfg.Redis.Addr != "" || cfg.Redis.TTL != time.Minute {
		t.Fatalf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.RateLimit.RPS != 20 || cfg.RateLimit.Burst != 40 {
		t.Fatalf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")
	t.Setenv("DB_PATH", "test.db")
	t.Setenv("GRPC_ADDRESS", ":1234")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is not set")
	}
	t.Setenv("JWT_SECRET", "x")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with secret set: %v", err)
	}
	if strings.Contains(cfg.String(), "x}") || !strings.Contains(cfg.String(), "masked") {
		t.Fatalf("secret not masked: %s", cfg.String())
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("CACHE_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid CACHE_TTL")
	}
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("REDIS_DB", "two")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid REDIS_DB")
	}
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Redis.DB != 2 || cfg.Redis.TTL != 30*time.Second || !strings.Contains(cfg.String(), "localhost:6379") {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
}
