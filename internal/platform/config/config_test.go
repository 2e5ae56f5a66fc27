package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("DATABASE_URL", "")
	t.Setenv("EMPLOYEE_DELETE_POLICY", "")

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.DatabaseURL != "sqlite://database.db" {
		t.Fatalf("expected sqlite default, got %q", cfg.DatabaseURL)
	}
	if cfg.DeletePolicy != DeletePolicyOrphan {
		t.Fatalf("expected orphan policy, got %q", cfg.DeletePolicy)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadReadsDotEnvWithoutOverriding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "APP_ADDR=:9999\nSHUTDOWN_TIMEOUT=3s\nLOG_FORMAT=json\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ENV_FILE", path)
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("APP_ADDR", "")
	os.Unsetenv("APP_ADDR")
	os.Unsetenv("SHUTDOWN_TIMEOUT")
	t.Cleanup(func() {
		os.Unsetenv("APP_ADDR")
		os.Unsetenv("SHUTDOWN_TIMEOUT")
	})

	cfg := Load()
	if cfg.Addr != ":9999" {
		t.Fatalf("expected addr from env file, got %q", cfg.Addr)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("expected shutdown timeout 3s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.LogFormat != "text" {
		t.Fatalf("process env should win over env file, got %q", cfg.LogFormat)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := Config{
		DatabaseURL:  "sqlite://x.db",
		DBMaxConns:   1,
		MaxBodyBytes: 4096,
		DeletePolicy: DeletePolicyOrphan,
		LogFormat:    "text",
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty database url", mutate: func(c *Config) { c.DatabaseURL = " " }},
		{name: "zero conns", mutate: func(c *Config) { c.DBMaxConns = 0 }},
		{name: "tiny body limit", mutate: func(c *Config) { c.MaxBodyBytes = 10 }},
		{name: "negative rate limit", mutate: func(c *Config) { c.RateLimitPerMinute = -1 }},
		{name: "unknown delete policy", mutate: func(c *Config) { c.DeletePolicy = "nullify" }},
		{name: "unknown log format", mutate: func(c *Config) { c.LogFormat = "xml" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
