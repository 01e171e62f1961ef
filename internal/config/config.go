package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// Ticks
	PollInterval   = 10 * time.Millisecond  // sample polling cadence
	RedrawInterval = 100 * time.Millisecond // chart redraw cadence
	FlashDuration  = 1500 * time.Millisecond

	// Window policy
	WindowSpan   = 50 // auto X min trails auto X max by this many samples
	WindowFloor  = 50 // auto X max lower limit
	YLookback    = 50 // samples per series used for auto Y
	YMargin      = 1.0
	RenderLength = 500 // samples per series handed to the chart

	// Sources
	DefaultBaud        = 115200
	DefaultNumTests    = 1
	RandomWalkStart    = 50.0
	RandomWalkInterval = RedrawInterval // one step per redraw
	QueueSize          = 4096
	MaxSamplesPerTick  = 1024
	WiFiScanInterval   = 5 * time.Second

	// App
	AppName    = "STREAMPLOT"
	AppVersion = "1.0"
)

// Config is the runtime configuration. Files are decoded over Default().
type Config struct {
	Storage     string `yaml:"storage"`      // append | ring
	HistorySize int    `yaml:"history_size"` // ring capacity

	Poll   time.Duration `yaml:"poll_interval"`
	Redraw time.Duration `yaml:"redraw_interval"`

	Window WindowConfig `yaml:"window"`
	Axes   AxesConfig   `yaml:"axes"`

	Serial SerialConfig `yaml:"serial"`

	ExportDir string    `yaml:"export_dir"`
	PlotFile  string    `yaml:"plot_file"`
	Log       LogConfig `yaml:"log"`
}

// WindowConfig tunes the window policy.
type WindowConfig struct {
	Span         int     `yaml:"span"`
	Floor        int     `yaml:"floor"`
	YLookback    int     `yaml:"y_lookback"`
	YMargin      float64 `yaml:"y_margin"`
	RenderLength int     `yaml:"render_length"`
}

// AxisConfig is the startup state of one axis.
type AxisConfig struct {
	Manual bool    `yaml:"manual"`
	Value  float64 `yaml:"value"`
}

// AxesConfig is the startup state of all four axes.
type AxesConfig struct {
	XMin AxisConfig `yaml:"x_min"`
	XMax AxisConfig `yaml:"x_max"`
	YMin AxisConfig `yaml:"y_min"`
	YMax AxisConfig `yaml:"y_max"`
}

// SerialConfig describes the serial device.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// LogConfig says where logs go.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage:     "append",
		HistorySize: 10000,
		Poll:        PollInterval,
		Redraw:      RedrawInterval,
		Window: WindowConfig{
			Span:         WindowSpan,
			Floor:        WindowFloor,
			YLookback:    YLookback,
			YMargin:      YMargin,
			RenderLength: RenderLength,
		},
		Axes: AxesConfig{
			XMin: AxisConfig{Value: 0},
			XMax: AxisConfig{Value: 50},
			YMin: AxisConfig{Value: 0},
			YMax: AxisConfig{Value: 100},
		},
		Serial:    SerialConfig{Baud: DefaultBaud},
		ExportDir: "data",
		PlotFile:  "plot.txt",
		Log:       LogConfig{Level: "INFO"},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks values the program cannot run with.
func (c Config) Validate() error {
	switch c.Storage {
	case "append", "ring":
	default:
		return fmt.Errorf("storage must be append or ring, got %q", c.Storage)
	}
	if c.Storage == "ring" && c.HistorySize < 1 {
		return fmt.Errorf("history_size must be positive for ring storage, got %d", c.HistorySize)
	}
	if c.Poll <= 0 || c.Redraw <= 0 {
		return fmt.Errorf("poll and redraw intervals must be positive")
	}
	if c.Window.Span < 1 || c.Window.YLookback < 1 {
		return fmt.Errorf("window span and y_lookback must be positive")
	}
	if c.Serial.Baud <= 0 {
		return fmt.Errorf("baud must be positive, got %d", c.Serial.Baud)
	}
	return nil
}
