// Package swatch renders palette grids into PNG swatch sheets.
package swatch

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/MeKo-Tech/colorengine/internal/colorconv"
	"github.com/MeKo-Tech/colorengine/internal/palette"
	"github.com/disintegration/gift"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultCellSize is the edge length of one swatch at scale 1.
const DefaultCellSize = 64

// RenderOptions controls sheet layout.
type RenderOptions struct {
	CellSize int
	Scale    int  // 2 for @2x sheets
	Labels   bool // draw the hex label in the cell's text color
}

// DefaultRenderOptions returns labelled 64px cells at scale 1.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{CellSize: DefaultCellSize, Scale: 1, Labels: true}
}

// Render draws g as a sheet of Columns x Rows cells.
func Render(g palette.Grid, opts RenderOptions) (*image.NRGBA, error) {
	if opts.CellSize <= 0 {
		return nil, fmt.Errorf("cell size must be positive")
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if g.Rows <= 0 || g.Columns <= 0 || len(g.Cells) != g.Rows*g.Columns {
		return nil, fmt.Errorf("malformed grid: %dx%d with %d cells", g.Rows, g.Columns, len(g.Cells))
	}

	sheet := image.NewNRGBA(image.Rect(0, 0, g.Columns*opts.CellSize, g.Rows*opts.CellSize))
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			cell := g.At(row, col)
			rect := image.Rect(col*opts.CellSize, row*opts.CellSize, (col+1)*opts.CellSize, (row+1)*opts.CellSize)
			draw.Draw(sheet, rect, image.NewUniform(toNRGBA(cell.Color)), image.Point{}, draw.Src)

			if opts.Labels {
				drawLabel(sheet, rect, cell.Label, toNRGBA(cell.Text))
			}
		}
	}

	if opts.Scale == 1 {
		return sheet, nil
	}
	return upscale(sheet, opts.Scale), nil
}

// drawLabel centers text inside rect. Labels wider than the cell are skipped.
func drawLabel(dst draw.Image, rect image.Rectangle, text string, c color.NRGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}

	width := d.MeasureString(text).Ceil()
	if width > rect.Dx() {
		return
	}

	ascent := face.Metrics().Ascent.Ceil()
	x := rect.Min.X + (rect.Dx()-width)/2
	y := rect.Min.Y + (rect.Dy()+ascent)/2
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}

// upscale enlarges img by an integer factor without smoothing so cell edges
// stay sharp.
func upscale(img *image.NRGBA, factor int) *image.NRGBA {
	b := img.Bounds()
	g := gift.New(gift.Resize(b.Dx()*factor, b.Dy()*factor, gift.NearestNeighborResampling))
	dst := image.NewNRGBA(g.Bounds(b))
	g.Draw(dst, img)
	return dst
}

func toNRGBA(c colorconv.Color) color.NRGBA {
	rgb := c.RGB()
	return color.NRGBA{R: uint8(rgb.Red), G: uint8(rgb.Green), B: uint8(rgb.Blue), A: 255}
}
