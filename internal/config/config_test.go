package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func loadWithEnv(t *testing.T, env map[string]string) *Config {
	t.Helper()
	viper.Reset()
	for k, v := range env {
		t.Setenv(k, v)
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	return cfg
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := loadWithEnv(t, nil)

	if cfg.Server.Port != "5000" {
		t.Fatalf("default port = %q", cfg.Server.Port)
	}
	if cfg.MongoDB.Database != "lexdesk" {
		t.Fatalf("default database = %q", cfg.MongoDB.Database)
	}
	if cfg.MongoDB.Timeout != 10*time.Second {
		t.Fatalf("default mongo timeout = %s", cfg.MongoDB.Timeout)
	}
	if cfg.JWT.AccessTokenTTL != 24*time.Hour {
		t.Fatalf("default token ttl = %s", cfg.JWT.AccessTokenTTL)
	}
	if cfg.Upload.MaxBytes != 10*1024*1024 {
		t.Fatalf("default upload cap = %d", cfg.Upload.MaxBytes)
	}
	if cfg.RateLimit.Enabled {
		t.Fatal("rate limiting should default off")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	cfg := loadWithEnv(t, map[string]string{
		"SERVER_PORT":          "8080",
		"MONGODB_URI":          "mongodb://db:27017",
		"MONGODB_DATABASE":     "lexdesk_test",
		"JWT_SECRET":           "a-secret",
		"JWT_ACCESS_TOKEN_TTL": "2",
		"RATE_LIMIT_ENABLED":   "true",
		"RATE_LIMIT_RPS":       "5",
		"RATE_LIMIT_BURST":     "10",
		"UPLOAD_MAX_BYTES":     "1048576",
	})

	if cfg.Server.Port != "8080" {
		t.Fatalf("port = %q", cfg.Server.Port)
	}
	if cfg.MongoDB.URI != "mongodb://db:27017" || cfg.MongoDB.Database != "lexdesk_test" {
		t.Fatalf("mongo config = %+v", cfg.MongoDB)
	}
	if cfg.JWT.Secret != "a-secret" {
		t.Fatalf("jwt secret = %q", cfg.JWT.Secret)
	}
	if cfg.JWT.AccessTokenTTL != 2*time.Hour {
		t.Fatalf("token ttl = %s", cfg.JWT.AccessTokenTTL)
	}
	if !cfg.RateLimit.Enabled || cfg.RateLimit.RPS != 5 || cfg.RateLimit.Burst != 10 {
		t.Fatalf("rate limit config = %+v", cfg.RateLimit)
	}
	if cfg.Upload.MaxBytes != 1048576 {
		t.Fatalf("upload cap = %d", cfg.Upload.MaxBytes)
	}
}

func TestLoadConfig_RedisFromEnv(t *testing.T) {
	cfg := loadWithEnv(t, map[string]string{
		"REDIS_HOST":     "cache",
		"REDIS_PORT":     "6380",
		"REDIS_PASSWORD": "hunter2",
	})

	if cfg.Redis.Host != "cache" || cfg.Redis.Port != "6380" || cfg.Redis.Password != "hunter2" {
		t.Fatalf("redis config = %+v", cfg.Redis)
	}
}
