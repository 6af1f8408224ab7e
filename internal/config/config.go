package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the config file nor the command line
// provides a value.
const (
	DefaultRate  uint16 = 70
	DefaultDelay uint16 = 250
)

// Bounds enforced at configuration time. Rate and delay travel as
// unsigned 16-bit values on the wire; the rate is further capped so
// the derived inter-repeat interval stays at least one millisecond.
const (
	MinRate  uint16 = 1
	MaxRate  uint16 = 1000
	MinDelay uint16 = 1
)

// Config holds the daemon's startup configuration. It is immutable
// once validated; xrepeatd has no live reconfiguration.
type Config struct {
	// Rate is the key repeat rate in repeats per second.
	Rate uint16 `yaml:"rate"`
	// Delay is the milliseconds a key is held before it repeats.
	Delay uint16 `yaml:"delay"`
	// Display overrides $DISPLAY when set.
	Display string `yaml:"display"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Rate:  DefaultRate,
		Delay: DefaultDelay,
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "xrepeatd", "config.yaml"), nil
}

// Load reads the config file at path. A missing file is not an error:
// it yields the defaults, as do keys the file leaves unset.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate enforces the bounds the wire format and the XKB applicator
// expect.
func (c *Config) Validate() error {
	if c.Rate < MinRate || c.Rate > MaxRate {
		return fmt.Errorf("key repeat rate has to be between %d and %d", MinRate, MaxRate)
	}
	if c.Delay < MinDelay {
		return errors.New("key repeat delay has to be greater than 0")
	}
	return nil
}

// ParseUint16 parses a numeric command line argument as the wire's
// unsigned 16-bit representation. Range checking against the repeat
// bounds is separate, in Validate, so callers can tell a malformed
// value from an out-of-range one.
func ParseUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return uint16(v), nil
}
