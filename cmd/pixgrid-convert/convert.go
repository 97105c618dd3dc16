package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/lixenwraith/pixgrid/codec"
	"github.com/lixenwraith/pixgrid/config"
	"github.com/lixenwraith/pixgrid/grid"
	"github.com/lixenwraith/pixgrid/logger"
	"github.com/lixenwraith/pixgrid/raster"
)

// options are the command-line overrides; zero values keep the config
type options struct {
	rows, cols  int
	format      string
	output      string
	font        string
	size        float64
	color       string
	first, last int
}

func (o options) apply(cfg *config.Config) error {
	if o.rows > 0 {
		cfg.Grid.Rows = o.rows
	}
	if o.cols > 0 {
		cfg.Grid.Cols = o.cols
	}
	if o.format != "" {
		cfg.Export.Format = o.format
	}
	if o.font != "" {
		cfg.Text.Font = o.font
	}
	if o.size > 0 {
		cfg.Text.Size = o.size
	}
	if o.color != "" {
		cfg.Text.Color = o.color
	}
	return cfg.Validate()
}

// rowRange converts -first/-last into an export option
func (o options) rowRange() []codec.Option {
	if o.first <= 0 {
		return nil
	}
	last := o.last
	if last <= 0 {
		last = o.first
	}
	return []codec.Option{codec.WithRows(o.first-1, last-1)}
}

func convert(ctx context.Context, cfg *config.Config, o options, kind, arg string) (grid.Snapshot, error) {
	rows, cols := cfg.Grid.Rows, cfg.Grid.Cols
	switch kind {
	case "image":
		img, err := raster.LoadImage(arg)
		if err != nil {
			return grid.Snapshot{}, err
		}
		b := img.Bounds()
		logger.L(ctx).Debug("image loaded", zap.String("path", arg), zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
		return raster.FromImage(img, cols, rows), nil

	case "text":
		face, err := raster.LoadFace(cfg.Text.Font, cfg.Text.Size)
		if err != nil {
			logger.L(ctx).Warn("font unavailable, using fallback", zap.String("font", cfg.Text.Font), zap.Error(err))
			face = raster.DefaultFace
		} else {
			defer face.Close()
		}
		return raster.Text(raster.TextOptions{
			Text:          arg,
			Face:          face,
			Color:         cfg.TextColor(),
			LineSpacing:   cfg.Text.LineSpacing,
			LetterSpacing: cfg.Text.LetterSpacing,
		}, cols, rows), nil

	case "reformat":
		doc, err := codec.ReadFile(arg)
		if err != nil {
			return grid.Snapshot{}, err
		}
		logger.L(ctx).Debug("grid file read",
			zap.String("path", arg),
			zap.Stringer("format", doc.Format),
			zap.Stringer("origin", doc.Origin))
		return doc.Snapshot(cfg.DefaultColor()), nil
	}
	return grid.Snapshot{}, fmt.Errorf("unknown source kind %q (use image, text or reformat)", kind)
}

// write encodes s to stdout when path is "-", to the file at path otherwise
func write(stdout io.Writer, path string, s grid.Snapshot, f codec.Format, opts []codec.Option) error {
	if path == "-" || path == "" {
		var buf bytes.Buffer
		if err := codec.Encode(&buf, s, f, opts...); err != nil {
			return err
		}
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := codec.WriteFile(path, s, f, opts...); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
