package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roman-kulish/wifi-link-budget/internal/chart"
	"github.com/roman-kulish/wifi-link-budget/internal/linkbudget"
	"github.com/roman-kulish/wifi-link-budget/internal/regression"
)

const (
	defaultSweepStart   = 2.0
	defaultSweepEnd     = 100.0
	defaultSweepStep    = 1.0
	defaultSummaryEvery = 10.0

	// TableStdout writes the sweep table to standard output
	TableStdout = "-"
)

// Config represents the main application configuration
type Config struct {
	Settings         Settings                    `yaml:"settings"`
	Radio            linkbudget.Config           `yaml:"radio"`
	Walls            linkbudget.WallConfig       `yaml:"walls"`
	WallAttenuations linkbudget.WallAttenuations `yaml:"wallAttenuations"` // overrides of the default table
	Sweep            SweepConfig                 `yaml:"sweep"`
	Chart            ChartConfig                 `yaml:"chart"`
	Polynomial       PolynomialConfig            `yaml:"polynomial"`
	Table            TableConfig                 `yaml:"table"`
}

// Settings represents global application settings
type Settings struct {
	LogLevel string `yaml:"logLevel"`
}

// SweepConfig represents the distances the link budget is evaluated at
type SweepConfig struct {
	Start        float64 `yaml:"start"`        // metres
	End          float64 `yaml:"end"`          // metres, inclusive
	Step         float64 `yaml:"step"`         // metres
	SummaryEvery float64 `yaml:"summaryEvery"` // log a summary line at multiples of this distance, 0 disables
}

// ChartConfig represents throughput chart settings
type ChartConfig struct {
	Output string            `yaml:"output"` // empty disables the chart
	Format chart.ImageFormat `yaml:"format"`
	Theme  chart.ColorTheme  `yaml:"theme"`
	Width  int               `yaml:"width"`
	Height int               `yaml:"height"`
}

// PolynomialConfig represents the polynomial throughput overlay
type PolynomialConfig struct {
	Enabled bool   `yaml:"enabled"`
	Samples string `yaml:"samples"` // CSV file, empty selects the built-in WiFi dataset
	Degree  int    `yaml:"degree"`
}

// TableConfig represents the CSV sweep table output
type TableConfig struct {
	Output string `yaml:"output"` // file path or "-" for stdout, empty disables
}

// NewConfig returns the configuration used for keys missing from the file.
func NewConfig() *Config {
	return &Config{
		Settings: Settings{LogLevel: "info"},
		Radio:    linkbudget.DefaultConfig(),
		Walls:    linkbudget.WallConfig{},
		Sweep: SweepConfig{
			Start:        defaultSweepStart,
			End:          defaultSweepEnd,
			Step:         defaultSweepStep,
			SummaryEvery: defaultSummaryEvery,
		},
		Chart: ChartConfig{
			Format: chart.ImagePNG,
			Theme:  chart.ClassicTheme,
		},
		Polynomial: PolynomialConfig{
			Degree: regression.DefaultDegree,
		},
	}
}

// LoadConfig reads a YAML configuration file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := NewConfig()
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if _, err := c.Settings.Level(); err != nil {
		return err
	}
	if err := c.Radio.Validate(); err != nil {
		return err
	}
	for wall, db := range c.WallAttenuations {
		if db < 0 {
			return fmt.Errorf("app.Config: attenuation of %q must not be negative: %g", wall, db)
		}
	}
	if _, err := linkbudget.WallLossDb(c.Walls, c.WallTable()); err != nil {
		return err
	}
	if _, err := linkbudget.Distances(c.Sweep.Start, c.Sweep.End, c.Sweep.Step); err != nil {
		return err
	}
	if c.Sweep.SummaryEvery < 0 {
		return fmt.Errorf("app.SweepConfig: summary interval must not be negative: %g", c.Sweep.SummaryEvery)
	}
	if err := c.Chart.Validate(); err != nil {
		return err
	}
	if c.Polynomial.Enabled && c.Polynomial.Degree < 1 {
		return fmt.Errorf("app.PolynomialConfig: degree must be at least 1: %d", c.Polynomial.Degree)
	}
	return nil
}

// Level parses the configured log level.
func (s Settings) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return level, fmt.Errorf("app.Settings: invalid log level: %s", s.LogLevel)
	}
	return level, nil
}

func (c *ChartConfig) Validate() error {
	if c.Output == "" {
		return nil
	}
	if _, err := chart.ParseImageFormat(string(c.Format)); err != nil {
		return fmt.Errorf("app.ChartConfig: %w", err)
	}
	cfg := c.renderConfig()
	return cfg.Validate()
}

// OutputFile returns the chart path with the extension of the image format.
func (c *ChartConfig) OutputFile() string {
	format, err := chart.ParseImageFormat(string(c.Format))
	if err != nil {
		return c.Output
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(c.Output), "."))
	if f, err := chart.ParseImageFormat(ext); err == nil && f == format {
		return c.Output
	}
	return fmt.Sprintf("%s.%s", c.Output, format)
}

func (c *ChartConfig) renderConfig() chart.Config {
	return chart.Config{
		Width:      c.Width,
		Height:     c.Height,
		ColorTheme: c.Theme,
	}
}

// WallTable returns the default attenuation table with the configured
// overrides applied.
func (c *Config) WallTable() linkbudget.WallAttenuations {
	table := linkbudget.DefaultWallAttenuations()
	for wall, db := range c.WallAttenuations {
		table[wall] = db
	}
	return table
}
