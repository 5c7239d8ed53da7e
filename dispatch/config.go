package dispatch

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/vinayprograms/asynckit/errors"
)

// Config holds pool dispatcher configuration.
type Config struct {
	// Workers is the number of executor goroutines.
	// Default: 4
	Workers int `toml:"workers"`

	// QueueSize bounds the number of tasks waiting for a worker.
	// Default: 64
	QueueSize int `toml:"queue_size"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:   4,
		QueueSize: 64,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Workers <= 0 {
		return errors.InvalidConfig(fmt.Sprintf("workers must be positive, got %d", c.Workers))
	}
	if c.QueueSize <= 0 {
		return errors.InvalidConfig(fmt.Sprintf("queue_size must be positive, got %d", c.QueueSize))
	}
	return nil
}

// LoadConfig reads a TOML config file, applying defaults for unset
// fields.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.InvalidConfig(fmt.Sprintf("loading config %s", path), errors.WithCause(err))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
