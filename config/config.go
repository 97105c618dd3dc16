// Package config loads pixgrid.yaml
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/pixgrid/codec"
	"github.com/lixenwraith/pixgrid/history"
	"github.com/lixenwraith/pixgrid/palette"
)

// DefaultPath is read when no -config flag is given
const DefaultPath = "pixgrid.yaml"

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Grid           GridConfig    `yaml:"grid"`
	Colors         ColorConfig   `yaml:"colors"`
	Export         ExportConfig  `yaml:"export"`
	TranslateBurst time.Duration `yaml:"translate_burst"`
	Sound          bool          `yaml:"sound"`
	Log            LogConfig     `yaml:"log"`
	Text           TextConfig    `yaml:"text"`
}

type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// ColorConfig holds palette names or hex strings
type ColorConfig struct {
	Default string `yaml:"default"`
	Paint   string `yaml:"paint"`
}

type ExportConfig struct {
	Format string `yaml:"format"`
}

type LogConfig struct {
	Verbose bool   `yaml:"verbose"`
	File    string `yaml:"file"`
}

// TextConfig sets the text overlay defaults; an empty Font means Go Regular
type TextConfig struct {
	Font          string  `yaml:"font"`
	Size          float64 `yaml:"size"`
	LineSpacing   int     `yaml:"line_spacing"`
	LetterSpacing int     `yaml:"letter_spacing"`
	Color         string  `yaml:"color"`
}

func Default() *Config {
	return &Config{
		Grid:           GridConfig{Rows: 32, Cols: 64},
		Colors:         ColorConfig{Default: "#008000", Paint: "#ff0000"},
		Export:         ExportConfig{Format: codec.Formatted.String()},
		TranslateBurst: history.DefaultBurstWindow,
		Sound:          true,
		Log:            LogConfig{File: "pixgrid.log"},
		Text:           TextConfig{Size: 8, LineSpacing: 1, LetterSpacing: 1, Color: "#ff0000"},
	}
}

// Load reads path over the defaults and validates the result
// A missing file yields the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem at once
func (c *Config) Validate() error {
	var err error
	if c.Grid.Rows < 1 || c.Grid.Cols < 1 {
		err = multierr.Append(err, invalid("grid must be at least 1x1, got %dx%d", c.Grid.Rows, c.Grid.Cols))
	}
	for _, kv := range []struct{ key, val string }{
		{"colors.default", c.Colors.Default},
		{"colors.paint", c.Colors.Paint},
		{"text.color", c.Text.Color},
	} {
		if _, e := palette.ParseColor(kv.val); e != nil {
			err = multierr.Append(err, invalid("%s: %v", kv.key, e))
		}
	}
	if _, e := codec.ParseFormat(c.Export.Format); e != nil {
		err = multierr.Append(err, invalid("export.format: %v", e))
	}
	if c.TranslateBurst < 0 {
		err = multierr.Append(err, invalid("translate_burst must not be negative"))
	}
	if c.Text.Size <= 0 {
		err = multierr.Append(err, invalid("text.size must be positive"))
	}
	if c.Text.LineSpacing < 0 || c.Text.LetterSpacing < 0 {
		err = multierr.Append(err, invalid("text spacing must not be negative"))
	}
	return err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// Accessors below assume a validated config and fall back to defaults otherwise

func (c *Config) DefaultColor() palette.RGB {
	return colorOr(c.Colors.Default, palette.RGB{G: 128})
}

func (c *Config) PaintColor() palette.RGB {
	return colorOr(c.Colors.Paint, palette.RGB{R: 255})
}

func (c *Config) TextColor() palette.RGB {
	return colorOr(c.Text.Color, palette.RGB{R: 255})
}

func (c *Config) ExportFormat() codec.Format {
	f, err := codec.ParseFormat(c.Export.Format)
	if err != nil {
		return codec.Formatted
	}
	return f
}

func colorOr(s string, def palette.RGB) palette.RGB {
	c, err := palette.ParseColor(s)
	if err != nil {
		return def
	}
	return c
}
