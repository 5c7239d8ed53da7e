package dispatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vinayprograms/asynckit/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config must validate: %v", err)
	}
	if cfg.Workers <= 0 {
		t.Errorf("Expected positive worker count, got %d", cfg.Workers)
	}
	if cfg.QueueSize <= 0 {
		t.Errorf("Expected positive queue size, got %d", cfg.QueueSize)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"defaults", DefaultConfig(), true},
		{"zero workers", Config{Workers: 0, QueueSize: 8}, false},
		{"negative workers", Config{Workers: -1, QueueSize: 8}, false},
		{"negative queue", Config{Workers: 2, QueueSize: -1}, false},
		{"unbuffered queue", Config{Workers: 2, QueueSize: 0}, false},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if tc.ok && err != nil {
			t.Errorf("%s: expected valid, got %v", tc.name, err)
		}
		if !tc.ok && errors.Code(err) != errors.ErrCodeInvalidConfig {
			t.Errorf("%s: expected INVALID_CONFIG, got %v", tc.name, err)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dispatch.toml")
	data := []byte("workers = 8\nqueue_size = 128\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Workers != 8 {
		t.Errorf("Expected 8 workers, got %d", cfg.Workers)
	}
	if cfg.QueueSize != 128 {
		t.Errorf("Expected queue size 128, got %d", cfg.QueueSize)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dispatch.toml")
	if err := os.WriteFile(path, []byte("workers = 2\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("Expected 2 workers, got %d", cfg.Workers)
	}
	if want := DefaultConfig().QueueSize; cfg.QueueSize != want {
		t.Errorf("Expected default queue size %d, got %d", want, cfg.QueueSize)
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dispatch.toml")
	if err := os.WriteFile(path, []byte("workers = -3\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); errors.Code(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("Expected INVALID_CONFIG, got %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}
