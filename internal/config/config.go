package config

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/menta2k/video-augment/pkg/transform"
	"github.com/menta2k/video-augment/pkg/types"
)

// Config holds the application configuration: a declarative pipeline plus
// output settings for the CLI.
type Config struct {
	Seed     int64        `json:"seed"`
	Pipeline []UnitConfig `json:"pipeline"`
	Output   OutputConfig `json:"output"`
}

// UnitConfig describes one transform unit. Type selects the unit; the other
// fields parameterize it and are ignored where they don't apply.
type UnitConfig struct {
	Type        string     `json:"type"`
	Height      int        `json:"height,omitempty"`
	Width       int        `json:"width,omitempty"`
	Window      *types.Box `json:"window,omitempty"`
	Direction   string     `json:"direction,omitempty"`
	Probability float64    `json:"probability,omitempty"`
	Angles      []float64  `json:"angles,omitempty"`
	Mean        []float64  `json:"mean,omitempty"`
}

// OutputConfig holds configuration for frame output
type OutputConfig struct {
	Format   string `json:"format"`
	Quality  int    `json:"quality"`
	Lossless bool   `json:"lossless"`
	Prefix   string `json:"prefix"`
}

// Unit type names accepted in a pipeline.
const (
	UnitIdentity     = "identity"
	UnitResize       = "resize"
	UnitCrop         = "crop"
	UnitRandomCrop   = "random_crop"
	UnitCenterCrop   = "center_crop"
	UnitRandomFlip   = "random_flip"
	UnitRandomRotate = "random_rotate"
	UnitSubtractMean = "subtract_mean"
)

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Seed: 0,
		Pipeline: []UnitConfig{
			{Type: UnitResize, Height: 256, Width: 256},
			{Type: UnitCenterCrop, Height: 224, Width: 224},
		},
		Output: OutputConfig{
			Format:  "jpg",
			Quality: 90,
			Prefix:  "frame_",
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	for i, u := range c.Pipeline {
		if err := u.validate(); err != nil {
			return fmt.Errorf("pipeline[%d]: %w", i, err)
		}
	}
	return nil
}

func (u UnitConfig) validate() error {
	switch u.Type {
	case UnitIdentity:
		return nil
	case UnitResize, UnitRandomCrop, UnitCenterCrop:
		if u.Height < 1 || u.Width < 1 {
			return fmt.Errorf("%s requires positive height and width", u.Type)
		}
	case UnitCrop:
		if u.Window == nil {
			return fmt.Errorf("crop requires a window")
		}
	case UnitRandomFlip:
		if u.Direction != "" && u.Direction != string(transform.Horizontal) && u.Direction != string(transform.Vertical) {
			return fmt.Errorf("random_flip direction must be %q or %q", transform.Horizontal, transform.Vertical)
		}
		if u.Probability < 0 || u.Probability > 1 {
			return fmt.Errorf("random_flip probability must be between 0 and 1")
		}
	case UnitRandomRotate:
		return nil
	case UnitSubtractMean:
		if n := len(u.Mean); n != 1 && n != 3 {
			return fmt.Errorf("subtract_mean requires 1 or 3 mean values")
		}
	default:
		return fmt.Errorf("unknown unit type %q", u.Type)
	}
	return nil
}

// Build assembles the configured transform pipeline. A non-zero seed gives
// all randomized units one shared deterministic source; with seed 0 each
// unit seeds itself from the global source.
func (c *Config) Build() (transform.Pipeline, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var src rand.Source
	if c.Seed != 0 {
		src = rand.NewSource(c.Seed)
	}

	pipeline := make(transform.Pipeline, 0, len(c.Pipeline))
	for _, u := range c.Pipeline {
		pipeline = append(pipeline, u.build(src))
	}
	return pipeline, nil
}

func (u UnitConfig) build(src rand.Source) transform.Transform {
	switch u.Type {
	case UnitIdentity:
		return transform.Identity{}
	case UnitResize:
		return transform.NewResize(u.Height, u.Width)
	case UnitCrop:
		return transform.NewCrop(*u.Window)
	case UnitRandomCrop:
		if src != nil {
			return transform.NewRandomCropWithSource(u.Width, u.Height, src)
		}
		return transform.NewRandomCrop(u.Width, u.Height)
	case UnitCenterCrop:
		return transform.NewCenterCrop(u.Width, u.Height)
	case UnitRandomFlip:
		direction := transform.Direction(u.Direction)
		if u.Direction == "" {
			direction = transform.Horizontal
		}
		if src != nil {
			return transform.NewRandomFlipWithSource(direction, u.Probability, src)
		}
		return transform.NewRandomFlip(direction, u.Probability)
	case UnitRandomRotate:
		if src != nil {
			return transform.NewRandomRotateWithSource(src, u.Angles...)
		}
		return transform.NewRandomRotate(u.Angles...)
	case UnitSubtractMean:
		mean := [3]float64{}
		if len(u.Mean) == 1 {
			mean[0], mean[1], mean[2] = u.Mean[0], u.Mean[0], u.Mean[0]
		} else {
			copy(mean[:], u.Mean)
		}
		return transform.NewSubtractMean(mean)
	}
	// validate() rejects unknown types before build runs
	return transform.Identity{}
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "video-augment", "config.json")
}
