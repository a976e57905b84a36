package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.Store != StoreSQLite || cfg.DBPath != "scorekeeper.db" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.SubmitCooldown != 650*time.Millisecond {
		t.Fatalf("cooldown = %v", cfg.SubmitCooldown)
	}
	if cfg.BaseURL() != "http://localhost:8080" {
		t.Fatalf("base url = %q", cfg.BaseURL())
	}
}

func TestLoadEnvAndFlags(t *testing.T) {
	t.Setenv("SCOREKEEPER_ADDR", ":9000")
	t.Setenv("SCOREKEEPER_STORE", "memory")
	t.Setenv("SCOREKEEPER_PUBLIC_URL", "http://192.168.1.5:9000/")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"), []string{"-addr", "127.0.0.1:7000"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:7000" || cfg.Store != StoreMemory {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.BaseURL() != "http://192.168.1.5:9000" {
		t.Fatalf("base url = %q", cfg.BaseURL())
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("SCOREKEEPER_DB_PATH=from-dotenv.db\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("SCOREKEEPER_DB_PATH") })

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "from-dotenv.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"sqlite", Config{Store: StoreSQLite, DBPath: "x.db"}, true},
		{"memory", Config{Store: StoreMemory}, true},
		{"sqlite without path", Config{Store: StoreSQLite}, false},
		{"unknown store", Config{Store: "redis"}, false},
		{"negative cooldown", Config{Store: StoreMemory, SubmitCooldown: -time.Second}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err == nil) != tt.ok {
				t.Fatalf("Validate() = %v, ok want %v", err, tt.ok)
			}
		})
	}
}
