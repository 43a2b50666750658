// Package palette builds color grids around a base color by stepping hue
// and lightness in HSL space.
package palette

import (
	"fmt"

	"github.com/MeKo-Tech/colorengine/internal/colorconv"
)

// Default grid layout.
const (
	DefaultRows          = 6
	DefaultColumns       = 8
	DefaultHueStep       = 30
	DefaultLightnessStep = 10
)

// DefaultTextCandidates are the label colors tried for every cell.
var DefaultTextCandidates = []colorconv.Color{0x000000, 0xffffff}

// Options configures grid generation.
type Options struct {
	Rows          int
	Columns       int
	HueStep       float64 // degrees added per row
	LightnessStep float64 // lightness points added per column
	// TextCandidates are tried for each cell's label color. Defaults to
	// black and white.
	TextCandidates []colorconv.Color
}

// DefaultOptions returns the default grid layout.
func DefaultOptions() Options {
	return Options{
		Rows:          DefaultRows,
		Columns:       DefaultColumns,
		HueStep:       DefaultHueStep,
		LightnessStep: DefaultLightnessStep,
	}
}

// Cell is a single swatch in a grid.
type Cell struct {
	Color colorconv.Color
	HSL   colorconv.HSL
	Label string
	Text  colorconv.Color // most contrasting text candidate
	Ratio float64         // contrast between Color and Text
}

// Grid is a rows x columns matrix of cells, row-major.
type Grid struct {
	Base    colorconv.Color
	Rows    int
	Columns int
	Cells   []Cell
}

// At returns the cell at row, col.
func (g Grid) At(row, col int) Cell {
	return g.Cells[row*g.Columns+col]
}

// Generate builds a grid around base. Row r rotates the hue by r*HueStep,
// column c moves lightness by (c - Columns/2)*LightnessStep. The center
// column of row 0 reproduces base up to HSL rounding.
func Generate(base colorconv.Color, opts Options) (Grid, error) {
	if opts.Rows <= 0 {
		return Grid{}, fmt.Errorf("rows must be positive, got %d", opts.Rows)
	}
	if opts.Columns <= 0 {
		return Grid{}, fmt.Errorf("columns must be positive, got %d", opts.Columns)
	}

	candidates := opts.TextCandidates
	if len(candidates) == 0 {
		candidates = DefaultTextCandidates
	}

	origin := colorconv.RGBToHSL(base)
	grid := Grid{
		Base:    base,
		Rows:    opts.Rows,
		Columns: opts.Columns,
		Cells:   make([]Cell, 0, opts.Rows*opts.Columns),
	}

	center := opts.Columns / 2
	for row := 0; row < opts.Rows; row++ {
		for col := 0; col < opts.Columns; col++ {
			hsl := colorconv.HSL{
				Hue:        origin.Hue + float64(row)*opts.HueStep,
				Saturation: origin.Saturation,
				Lightness:  origin.Lightness + float64(col-center)*opts.LightnessStep,
			}
			grid.Cells = append(grid.Cells, newCell(hsl, candidates))
		}
	}

	return grid, nil
}

func newCell(hsl colorconv.HSL, candidates []colorconv.Color) Cell {
	c := colorconv.HSLToColor(hsl)
	text := candidates[colorconv.ContrastIndex(c, candidates)]

	return Cell{
		Color: c,
		HSL:   colorconv.RGBToHSL(c),
		Label: c.Hex(),
		Text:  text,
		Ratio: colorconv.ContrastRatio(c, text),
	}
}
