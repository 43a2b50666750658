package swatch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/MeKo-Tech/colorengine/internal/colorconv"
	"github.com/MeKo-Tech/colorengine/internal/palette"
)

// HiDPISuffix marks sheets rendered at twice the base scale.
const HiDPISuffix = "@2x"

// SheetWriter receives encoded sheets instead of the filesystem.
type SheetWriter interface {
	WriteSheet(base colorconv.Color, suffix string, pngData []byte) error
}

// GeneratorOptions holds optional generator settings.
type GeneratorOptions struct {
	Palette        palette.Options
	Render         RenderOptions
	PNGCompression string
	// SheetWriter, when set, receives sheets instead of OutputDir.
	SheetWriter SheetWriter
}

// Generator renders swatch sheets for base colors and writes them to disk
// or to a SheetWriter.
type Generator struct {
	opts      GeneratorOptions
	logger    *slog.Logger
	outputDir string
}

// NewGenerator validates opts and prepares a generator.
func NewGenerator(outputDir string, logger *slog.Logger, opts GeneratorOptions) (*Generator, error) {
	if opts.Palette.Rows == 0 && opts.Palette.Columns == 0 {
		opts.Palette = palette.DefaultOptions()
	}
	if opts.Render.CellSize == 0 {
		opts.Render = DefaultRenderOptions()
	}
	if _, err := ParseCompression(opts.PNGCompression); err != nil {
		return nil, err
	}
	if opts.SheetWriter == nil && outputDir == "" {
		return nil, fmt.Errorf("output dir is required without a sheet writer")
	}

	return &Generator{
		opts:      opts,
		logger:    logger,
		outputDir: outputDir,
	}, nil
}

// SheetName returns the file name for base, e.g. "336699@2x.png".
func SheetName(base colorconv.Color, suffix string) string {
	return strings.TrimPrefix(base.Hex(), "#") + suffix + ".png"
}

// ScaleForSuffix returns the render scale implied by a sheet suffix.
func ScaleForSuffix(suffix string) int {
	if suffix == HiDPISuffix {
		return 2
	}
	return 1
}

// RenderPNG builds the grid for base and returns the encoded sheet.
func (g *Generator) RenderPNG(base colorconv.Color, suffix string) ([]byte, error) {
	grid, err := palette.Generate(base, g.opts.Palette)
	if err != nil {
		return nil, fmt.Errorf("failed to build palette for %s: %w", base, err)
	}

	ro := g.opts.Render
	ro.Scale = ScaleForSuffix(suffix)
	img, err := Render(grid, ro)
	if err != nil {
		return nil, fmt.Errorf("failed to render sheet for %s: %w", base, err)
	}

	return PNGBytes(img, g.opts.PNGCompression)
}

// Generate renders the sheet for base. Existing files are kept unless force
// is set. The returned path is empty when a SheetWriter is configured.
func (g *Generator) Generate(ctx context.Context, base colorconv.Color, force bool, suffix string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := SheetName(base, suffix)
	finalPath := ""
	if g.opts.SheetWriter == nil {
		finalPath = filepath.Join(g.outputDir, name)
		if !force {
			if _, err := os.Stat(finalPath); err == nil {
				g.log().Debug("Sheet already exists; skipping", "base", base.Hex(), "path", finalPath)
				return finalPath, nil
			}
		}
	}

	data, err := g.RenderPNG(base, suffix)
	if err != nil {
		return "", err
	}

	if g.opts.SheetWriter != nil {
		if err := g.opts.SheetWriter.WriteSheet(base, suffix, data); err != nil {
			return "", fmt.Errorf("failed to write sheet %s: %w", name, err)
		}
		return "", nil
	}

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	g.log().Info("Writing swatch sheet", "base", base.Hex(), "path", finalPath)
	if err := os.WriteFile(finalPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write sheet file: %w", err)
	}

	return finalPath, nil
}

func (g *Generator) log() *slog.Logger {
	if g.logger != nil {
		return g.logger
	}
	return slog.Default()
}
