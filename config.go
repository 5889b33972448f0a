package roitrack

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/swdee/go-roitrack/tracker"
	"gopkg.in/yaml.v3"
)

// Config holds the session settings, normally read from a YAML file and
// overridden by command line flags
type Config struct {
	// Display is the fixed size of the rendering surface
	Display Extent `yaml:"display"`
	// TickInterval is the fixed period of the playback loop
	TickInterval time.Duration `yaml:"tick_interval"`
	// Tracker is the tracking algorithm, one of csrt, kcf or mil
	Tracker string `yaml:"tracker"`
	// MinRegionSize is the display pixel width and height a drawn box must
	// exceed to be accepted
	MinRegionSize int `yaml:"min_region_size"`
	// CommandQueue is the size of the buffered user command queue
	CommandQueue int             `yaml:"command_queue"`
	Smoothing    SmoothingConfig `yaml:"smoothing"`
	Trail        TrailConfig     `yaml:"trail"`
	Overlay      OverlayConfig   `yaml:"overlay"`
	// CPUCores is an optional list of cores to pin the process to, eg: "4-7"
	CPUCores string `yaml:"cpu_cores"`
	// LogLevel is a logrus level name
	LogLevel string `yaml:"log_level"`
}

// SmoothingConfig controls Kalman smoothing of tracker output
type SmoothingConfig struct {
	Enabled        bool    `yaml:"enabled"`
	PositionWeight float64 `yaml:"position_weight"`
	VelocityWeight float64 `yaml:"velocity_weight"`
}

// TrailConfig controls drawing the center point history of each region
type TrailConfig struct {
	Enabled bool `yaml:"enabled"`
	Length  int  `yaml:"length"`
}

// OverlayConfig controls the annotations drawn on the display frame
type OverlayConfig struct {
	LineThickness int     `yaml:"line_thickness"`
	StatusBar     bool    `yaml:"status_bar"`
	FontPath      string  `yaml:"font_path"`
	FontSize      float64 `yaml:"font_size"`
}

// DefaultConfig returns the default settings
func DefaultConfig() Config {
	return Config{
		Display:       Extent{Width: 640, Height: 480},
		TickInterval:  30 * time.Millisecond,
		Tracker:       string(tracker.CSRT),
		MinRegionSize: 10,
		CommandQueue:  32,
		Smoothing: SmoothingConfig{
			Enabled:        false,
			PositionWeight: 1.0 / 20,
			VelocityWeight: 1.0 / 160,
		},
		Trail: TrailConfig{
			Enabled: true,
			Length:  90,
		},
		Overlay: OverlayConfig{
			LineThickness: 2,
			StatusBar:     true,
			FontSize:      14,
		},
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML configuration file.  Keys missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)

	if err != nil {
		return cfg, errors.Wrap(err, "failed to read config file")
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to parse config")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks the configuration values are usable
func (c Config) Validate() error {

	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "display size %dx%d must be positive",
			c.Display.Width, c.Display.Height)
	}

	if c.TickInterval <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "tick interval %s must be positive", c.TickInterval)
	}

	if _, err := tracker.ParseKind(c.Tracker); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "tracker: %v", err)
	}

	if c.MinRegionSize < 0 {
		return errors.Wrapf(ErrInvalidConfig, "min region size %d is negative", c.MinRegionSize)
	}

	if c.CommandQueue <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "command queue size %d must be positive", c.CommandQueue)
	}

	if c.Smoothing.Enabled && (c.Smoothing.PositionWeight <= 0 || c.Smoothing.VelocityWeight <= 0) {
		return errors.Wrap(ErrInvalidConfig, "smoothing weights must be positive")
	}

	if c.Trail.Enabled && c.Trail.Length <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "trail length %d must be positive", c.Trail.Length)
	}

	if c.Overlay.LineThickness <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "line thickness %d must be positive", c.Overlay.LineThickness)
	}

	if c.Overlay.StatusBar && c.Overlay.FontSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "font size %v must be positive", c.Overlay.FontSize)
	}

	if c.CPUCores != "" {
		if _, err := ParseCoreList(c.CPUCores); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "cpu cores: %v", err)
		}
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "log level: %v", err)
	}

	return nil
}

// TrackerFactory returns the tracker Factory named by the configuration
func (c Config) TrackerFactory() (tracker.Factory, error) {

	kind, err := tracker.ParseKind(c.Tracker)

	if err != nil {
		return nil, errors.Wrap(ErrInvalidConfig, err.Error())
	}

	return tracker.NewFactory(kind)
}
