package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tiffinbox/tiffinbox/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tiffinbox.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
server:
  host: 127.0.0.1
  port: 9090
  read_timeout: 10s
database:
  driver: sqlite
  dsn: /tmp/test.db
auth:
  jwt_secret: super-secret
  token_ttl: 24h
logging:
  level: debug
  format: console
metrics:
  enabled: true
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9090 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("read timeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Database.DSN != "/tmp/test.db" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
	if cfg.Auth.JWTSecret != "super-secret" || cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("auth = %+v", cfg.Auth)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should be enabled")
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 3000\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host = %q, want default", cfg.Server.Host)
	}
	if cfg.Server.WriteTimeout != 60*time.Second {
		t.Errorf("write timeout = %v, want default", cfg.Server.WriteTimeout)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.DSN != "tiffinbox.db" {
		t.Errorf("database = %+v, want defaults", cfg.Database)
	}
	if cfg.Auth.TokenTTL != 7*24*time.Hour {
		t.Errorf("token ttl = %v, want a week", cfg.Auth.TokenTTL)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v, want defaults", cfg.Logging)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_DB_PATH", "/var/lib/tiffinbox.db")
	path := writeConfigFile(t, "database:\n  dsn: ${TEST_DB_PATH}\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.DSN != "/var/lib/tiffinbox.db" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("TIFFINBOX_SERVER_PORT", "7070")
	t.Setenv("TIFFINBOX_LOG_LEVEL", "warn")
	path := writeConfigFile(t, "server:\n  port: 9090\nlogging:\n  level: debug\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, env should win over file", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %q, env should win over file", cfg.Logging.Level)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load("/nonexistent/tiffinbox.yaml"); err == nil {
		t.Error("missing file should fail")
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad driver", "database:\n  driver: postgres\n", "database.driver"},
		{"bad level", "logging:\n  level: verbose\n", "logging.level"},
		{"bad format", "logging:\n  format: xml\n", "logging.format"},
		{"negative ttl", "auth:\n  token_ttl: -1h\n", "token_ttl"},
		{"admin without password", "admin:\n  email: admin@restaurant.com\n", "admin.password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.yaml)
			_, err := config.Load(path)
			if err == nil {
				t.Fatal("want validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TIFFINBOX_SERVER_HOST", "10.0.0.5")
	t.Setenv("TIFFINBOX_DATABASE_DRIVER", "memory")
	t.Setenv("TIFFINBOX_JWT_SECRET", "env-secret")
	t.Setenv("TIFFINBOX_TOKEN_TTL", "48h")
	t.Setenv("TIFFINBOX_METRICS_ENABLED", "false")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "10.0.0.5" {
		t.Errorf("host = %q", cfg.Server.Host)
	}
	if cfg.Database.Driver != "memory" {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Auth.JWTSecret != "env-secret" || cfg.Auth.TokenTTL != 48*time.Hour {
		t.Errorf("auth = %+v", cfg.Auth)
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics should be disabled via env")
	}
}

func TestLoadWithFallback(t *testing.T) {
	t.Setenv("TIFFINBOX_SERVER_PORT", "6060")

	// Nonexistent file falls back to the environment
	cfg, err := config.LoadWithFallback(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 6060 {
		t.Errorf("port = %d, want env value", cfg.Server.Port)
	}

	// An existing file is used (env still overrides the port)
	path := writeConfigFile(t, "logging:\n  level: error\n")
	cfg, err = config.LoadWithFallback(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("level = %q, want file value", cfg.Logging.Level)
	}
}

func TestParseBoolValues(t *testing.T) {
	t.Setenv("TIFFINBOX_METRICS_ENABLED", "yes")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Metrics.Enabled {
		t.Error("'yes' should enable metrics")
	}
}
