package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_DefaultsAndEnvOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "42")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected env override port 9090, got %s", cfg.Server.Port)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("expected env secret, got %s", cfg.JWT.Secret)
	}
	if cfg.RateLimit.PerMinute != 42 {
		t.Errorf("expected rate limit 42, got %d", cfg.RateLimit.PerMinute)
	}
	if cfg.Database.DBName != "alumnihub" {
		t.Errorf("expected default dbname, got %s", cfg.Database.DBName)
	}
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: "8181"
database:
  dbname: testdb
cors:
  allowed_origins: "https://a.example.com, https://b.example.com"
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port != "8181" {
		t.Errorf("expected port 8181, got %s", cfg.Server.Port)
	}
	if cfg.Database.DBName != "testdb" {
		t.Errorf("expected dbname testdb, got %s", cfg.Database.DBName)
	}

	origins := cfg.AllowedOrigins()
	if len(origins) != 2 || origins[0] != "https://a.example.com" || origins[1] != "https://b.example.com" {
		t.Errorf("unexpected origins: %v", origins)
	}
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error when JWT secret is missing")
	}
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = "5433"
	cfg.Database.DBName = "alumni"

	want := "postgres://app:pw@db.internal:5433/alumni?sslmode=disable"
	if got := cfg.GetPostgresConnectionString(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
