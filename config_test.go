package roitrack

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {

	t.Helper()

	path := filepath.Join(t.TempDir(), "roitrack.yaml")

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return path
}

func TestDefaultConfigValid(t *testing.T) {

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("expected default config to be valid, got %v", err)
	}
}

func TestLoadConfig(t *testing.T) {

	path := writeConfig(t, `
display:
  width: 1280
  height: 720
tick_interval: 50ms
tracker: kcf
smoothing:
  enabled: true
trail:
  length: 30
cpu_cores: "4-7"
log_level: debug
`)

	cfg, err := LoadConfig(path)

	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Display.Width != 1280 || cfg.Display.Height != 720 {
		t.Errorf("unexpected display %+v", cfg.Display)
	}

	if cfg.TickInterval != 50*time.Millisecond {
		t.Errorf("expected 50ms tick, got %s", cfg.TickInterval)
	}

	if cfg.Tracker != "kcf" || !cfg.Smoothing.Enabled || cfg.Trail.Length != 30 {
		t.Errorf("unexpected config %+v", cfg)
	}

	// keys missing from the file keep their defaults
	def := DefaultConfig()

	if cfg.Smoothing.PositionWeight != def.Smoothing.PositionWeight ||
		!cfg.Trail.Enabled || cfg.MinRegionSize != def.MinRegionSize {
		t.Errorf("expected defaults for missing keys, got %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected error for missing file")
	}

	if _, err := LoadConfig(writeConfig(t, "display: [1, 2")); err == nil {
		t.Errorf("expected error for malformed yaml")
	}

	_, err := LoadConfig(writeConfig(t, "tracker: goturn\n"))

	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for unknown tracker, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {

	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"zero display", func(c *Config) { c.Display = Extent{} }},
		{"zero tick", func(c *Config) { c.TickInterval = 0 }},
		{"unknown tracker", func(c *Config) { c.Tracker = "boosting" }},
		{"negative min size", func(c *Config) { c.MinRegionSize = -1 }},
		{"no command queue", func(c *Config) { c.CommandQueue = 0 }},
		{"smoothing weights", func(c *Config) {
			c.Smoothing.Enabled = true
			c.Smoothing.VelocityWeight = 0
		}},
		{"trail length", func(c *Config) { c.Trail.Length = 0 }},
		{"line thickness", func(c *Config) { c.Overlay.LineThickness = 0 }},
		{"font size", func(c *Config) { c.Overlay.FontSize = 0 }},
		{"cpu cores", func(c *Config) { c.CPUCores = "a-b" }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestTrackerFactory(t *testing.T) {

	cfg := DefaultConfig()
	cfg.Tracker = "mil"

	factory, err := cfg.TrackerFactory()

	if err != nil || factory == nil {
		t.Fatalf("expected factory, got %v", err)
	}

	tr := factory()
	defer tr.Close()

	if tr == nil {
		t.Errorf("expected a tracker instance")
	}
}
