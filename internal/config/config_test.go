package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "DOCSTORE_BACKEND", "REDIS_ENABLED", "APP_ENV", "SERVER_SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.DocStore.Backend != DocStorePostgres {
		t.Errorf("expected postgres backend, got %s", cfg.DocStore.Backend)
	}
	if !cfg.Redis.Enabled {
		t.Error("expected redis enabled by default")
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("expected 5s shutdown timeout, got %v", cfg.Server.ShutdownTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DOCSTORE_BACKEND", DocStoreMemory)
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DOCSTORE_BOOTSTRAP_TIMEOUT", "2s")

	cfg := Load()

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.DocStore.Backend != DocStoreMemory {
		t.Errorf("expected memory backend, got %s", cfg.DocStore.Backend)
	}
	if cfg.Redis.Enabled {
		t.Error("expected redis disabled")
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("expected redis db 3, got %d", cfg.Redis.DB)
	}
	if cfg.DocStore.BootstrapTimeout != 2*time.Second {
		t.Errorf("expected 2s bootstrap timeout, got %v", cfg.DocStore.BootstrapTimeout)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("SERVER_READ_TIMEOUT", "soon")
	t.Setenv("NEW_RELIC_ENABLED", "maybe")

	cfg := Load()

	if cfg.Redis.DB != 0 {
		t.Errorf("expected fallback redis db 0, got %d", cfg.Redis.DB)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("expected fallback read timeout, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.NewRelic.Enabled {
		t.Error("expected new relic disabled on invalid bool")
	}
}

func TestLoadDotEnv_FindsParentFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".env"), []byte("DISPATCH_DOTENV_SAMPLE=found\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	child := filepath.Join(root, "cmd", "server")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(child); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("DISPATCH_DOTENV_SAMPLE", "")
	os.Unsetenv("DISPATCH_DOTENV_SAMPLE")

	if path := LoadDotEnv(4); path == "" {
		t.Fatal("expected .env to be found")
	}
	if got := os.Getenv("DISPATCH_DOTENV_SAMPLE"); got != "found" {
		t.Errorf("expected sample variable to be loaded, got %q", got)
	}
}
