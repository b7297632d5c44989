package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the host
type Config struct {
	Width               int           `json:"width"`
	Height              int           `json:"height"`
	FrameRate           time.Duration `json:"frame_rate"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	MaxGenerations      int           `json:"max_generations"`
	RandomDensity       float64       `json:"random_density"`
	InjectionCount      int           `json:"injection_count"`
	Seed                uint64        `json:"seed"`
	Pattern             string        `json:"pattern"`
	Interactive         bool          `json:"interactive"`
	Color               bool          `json:"color"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               128,
		Height:              128,
		FrameRate:           100 * time.Millisecond,
		AutoRestart:         false,
		StagnationThreshold: 5,
		MaxGenerations:      0, // run until interrupted
		RandomDensity:       0.5,
		InjectionCount:      3,
		Pattern:             "random",
		Color:               true,
	}
}

// LoadConfig reads a JSON file over the defaults. Keys the Config does not
// know are rejected so a misspelt setting does not silently fall back.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	f, err := os.Open(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to open file: %+v", filename)
	}
	defer f.Close()

	overlay := config
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err = dec.Decode(&overlay); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to decode file: %+v", filename)
	}
	return overlay, nil
}

// Validate rejects settings the host cannot run with
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] dimensions must be positive, got %dx%d", c.Width, c.Height)
	case c.FrameRate < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] frame_rate must not be negative, got %v", c.FrameRate)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] random_density must be within [0, 1], got %v", c.RandomDensity)
	case c.StagnationThreshold < 0 || c.InjectionCount < 0 || c.MaxGenerations < 0:
		return errors.Wrap(ErrInvalidConfig, "[Validate] counters must not be negative")
	}
	return nil
}
