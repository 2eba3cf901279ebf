package scrollfx

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/scrollfx/physics"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("scrollfx: invalid config")

// Viewport is the visible page area in pixels.
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Config is the root configuration of a page. Every section reads its own
// block; fields left out of a YAML file keep their defaults.
type Config struct {
	Viewport Viewport `yaml:"viewport"`
	// Scrub is the lag in seconds between scroll progress and the value the
	// animators see. Zero follows the scroll exactly.
	Scrub float64 `yaml:"scrub"`
	// VelocityHold is how long a scroll velocity stays in effect after it
	// was reported.
	VelocityHold time.Duration `yaml:"velocityHold"`
	Debug        bool          `yaml:"debug"`

	Gallery    GalleryConfig    `yaml:"gallery"`
	StackCards StackCardsConfig `yaml:"stackCards"`
	Spotlight  SpotlightConfig  `yaml:"spotlight"`
	Reveal     RevealConfig     `yaml:"reveal"`
	Footer     physics.Config   `yaml:"footer"`

	// Pins are the pin extents of each section in viewport heights.
	Pins Pins `yaml:"pins"`
}

// Pins holds the scroll extent of each pinned section in viewport heights.
type Pins struct {
	Gallery    float64 `yaml:"gallery"`
	StackCards float64 `yaml:"stackCards"`
	Spotlight  float64 `yaml:"spotlight"`
	Reveal     float64 `yaml:"reveal"`
	Footer     float64 `yaml:"footer"`
}

// DefaultConfig returns the page defaults for a 1280x720 viewport.
func DefaultConfig() Config {
	return Config{
		Viewport:     Viewport{Width: 1280, Height: 720},
		Scrub:        1,
		VelocityHold: DefaultVelocityHold,
		Gallery:      DefaultGalleryConfig(),
		StackCards:   DefaultStackCardsConfig(),
		Spotlight:    DefaultSpotlightConfig(),
		Reveal:       DefaultRevealConfig(),
		Footer:       physics.DefaultConfig(),
		Pins: Pins{
			Gallery:    5,
			StackCards: 8,
			Spotlight:  6,
			Reveal:     3,
			Footer:     1,
		},
	}
}

// Validate checks the viewport, pins, and every section block.
func (c Config) Validate() error {
	if !(c.Viewport.Width > 0) || !(c.Viewport.Height > 0) {
		return fmt.Errorf("%w: viewport %vx%v", ErrInvalidConfig, c.Viewport.Width, c.Viewport.Height)
	}
	if !(c.Scrub >= 0) {
		return fmt.Errorf("%w: scrub %v must be >= 0", ErrInvalidConfig, c.Scrub)
	}
	if c.VelocityHold < 0 {
		return fmt.Errorf("%w: velocityHold %v must be >= 0", ErrInvalidConfig, c.VelocityHold)
	}
	pins := []struct {
		name string
		v    float64
	}{
		{"gallery", c.Pins.Gallery},
		{"stackCards", c.Pins.StackCards},
		{"spotlight", c.Pins.Spotlight},
		{"reveal", c.Pins.Reveal},
		{"footer", c.Pins.Footer},
	}
	for _, p := range pins {
		if !(p.v > 0) {
			return fmt.Errorf("%w: pins.%s %v must be > 0", ErrInvalidConfig, p.name, p.v)
		}
	}

	checks := []func() error{
		c.Gallery.Validate,
		c.StackCards.Validate,
		c.Spotlight.Validate,
		c.Reveal.Validate,
		c.Footer.Validate,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads the YAML file at path. See ParseConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Region returns the pin region of a section starting at startOffset with an
// extent of viewports viewport heights.
func (c Config) Region(startOffset, viewports float64) PinRegion {
	return PinRegion{StartOffset: startOffset, ExtentPx: viewports * c.Viewport.Height}
}
