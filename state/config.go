package state

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// KeyOrder selects how initial keys are ordered when no explicit order is given.
type KeyOrder string

const (
	// KeyOrderNatural sorts digits numerically: "v2" before "v10".
	KeyOrderNatural KeyOrder = "natural"
	// KeyOrderLexical sorts by byte value: "v10" before "v2".
	KeyOrderLexical KeyOrder = "lexical"
)

// Config defines State initialization parameters.
//
// Observer is a name resolved through the observability registry at
// construction, keeping the config serializable.
//
// Example YAML:
//
//	observer: slog
//	key_order: natural
type Config struct {
	// Observer names the observer implementation ("noop", "slog", etc.)
	Observer string `json:"observer" yaml:"observer"`

	// KeyOrder controls the ordering of initial keys
	KeyOrder KeyOrder `json:"key_order" yaml:"key_order"`
}

// DefaultConfig returns a Config with events discarded and natural key order.
func DefaultConfig() Config {
	return Config{
		Observer: "noop",
		KeyOrder: KeyOrderNatural,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Observer != "" {
		c.Observer = source.Observer
	}

	if source.KeyOrder != "" {
		c.KeyOrder = source.KeyOrder
	}
}

// Validate checks that c names a supported key order.
func (c *Config) Validate() error {
	switch c.KeyOrder {
	case KeyOrderNatural, KeyOrderLexical:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKeyOrder, c.KeyOrder)
	}
}

// LoadConfig reads a YAML (or JSON) config file, merges it with defaults,
// and returns the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
