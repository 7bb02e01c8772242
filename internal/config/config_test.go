package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != ":5000" {
		t.Errorf("port = %q, want :5000", cfg.Server.Port)
	}
	if cfg.Data.Source != "csv" {
		t.Errorf("source = %q, want csv", cfg.Data.Source)
	}
	if len(cfg.CORS.Origins) != 1 || cfg.CORS.Origins[0] != "*" {
		t.Errorf("origins = %v", cfg.CORS.Origins)
	}
	if cfg.RateLimit.Window != time.Minute {
		t.Errorf("window = %v", cfg.RateLimit.Window)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("DATAVIS_SERVER_PORT", ":8080")
	t.Setenv("DATAVIS_DATA_DIR", "/srv/data")
	t.Setenv("DATAVIS_CORS_ORIGINS", "http://localhost:3000, http://example.org")
	t.Setenv("DATAVIS_RATELIMIT_REQUESTS", "50")
	t.Setenv("DATAVIS_RATELIMIT_WINDOW", "30s")
	t.Setenv("DATAVIS_CACHE_PATHS_SIZE", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != ":8080" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.Data.Dir != "/srv/data" {
		t.Errorf("dir = %q", cfg.Data.Dir)
	}
	if len(cfg.CORS.Origins) != 2 || cfg.CORS.Origins[1] != "http://example.org" {
		t.Errorf("origins = %v", cfg.CORS.Origins)
	}
	if cfg.RateLimit.Requests != 50 || cfg.RateLimit.Window != 30*time.Second {
		t.Errorf("ratelimit = %+v", cfg.RateLimit)
	}
	if cfg.Cache.PathsSize != 8 {
		t.Errorf("paths_size = %d", cfg.Cache.PathsSize)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "data:\n  source: sqlite\n  sqlite_path: /tmp/a.db\nlogging:\n  format: console\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Data.Source != "sqlite" || cfg.Data.SQLitePath != "/tmp/a.db" {
		t.Errorf("data = %+v", cfg.Data)
	}
	if cfg.Data.SQLiteTable != "activity_records" {
		t.Errorf("expected default table to survive, got %q", cfg.Data.SQLiteTable)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("format = %q", cfg.Logging.Format)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	bad := Default()
	bad.Data.Source = "parquet"
	if err := bad.Validate(); err == nil {
		t.Error("expected unknown source to fail")
	}

	bad = Default()
	bad.Logging.Level = "loud"
	if err := bad.Validate(); err == nil {
		t.Error("expected unknown level to fail")
	}

	bad = Default()
	bad.RateLimit.Window = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected zero window to fail")
	}
}

func TestEnvTransform(t *testing.T) {
	tests := map[string]string{
		"DATAVIS_SERVER_PORT":      "server.port",
		"DATAVIS_DATA_SQLITE_PATH": "data.sqlite_path",
		"DATAVIS_CONFIG":           "",
	}
	for in, want := range tests {
		if got := envTransform(in); got != want {
			t.Errorf("envTransform(%q) = %q, want %q", in, got, want)
		}
	}
}
