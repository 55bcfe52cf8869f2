package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdirWithEnvFile 切到帶空 .env 的暫存目錄，LoadConfig 需要它存在
func chdirWithEnvFile(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	chdirWithEnvFile(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Store.Mode != "memory" {
		t.Errorf("store mode = %s, want memory", cfg.Store.Mode)
	}
	if cfg.Store.RedisEnabled {
		t.Error("redis should be disabled by default")
	}
	if !cfg.RateLimit.Enabled || cfg.RateLimit.Requests != 100 {
		t.Errorf("rate limit = %+v", cfg.RateLimit)
	}
}

func TestLoadConfigRejectsUnknownStoreMode(t *testing.T) {
	chdirWithEnvFile(t)
	t.Setenv("STORE_MODE", "carrier-pigeon")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unknown store mode")
	}
}

func TestLoadConfigRemoteModeNeedsBaseURL(t *testing.T) {
	chdirWithEnvFile(t)
	t.Setenv("STORE_MODE", "remote")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for remote mode without base_url")
	}

	t.Setenv("STORE_BASE_URL", "http://records.internal:9000")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.BaseURL != "http://records.internal:9000" {
		t.Errorf("base_url = %s", cfg.Store.BaseURL)
	}
}
