package swatch

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/MeKo-Tech/colorengine/internal/colorconv"
	"github.com/MeKo-Tech/colorengine/internal/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid(t *testing.T) palette.Grid {
	t.Helper()
	g, err := palette.Generate(0x336699, palette.Options{Rows: 2, Columns: 3, HueStep: 60, LightnessStep: 15})
	require.NoError(t, err)
	return g
}

func TestRenderFillsCells(t *testing.T) {
	g := testGrid(t)

	img, err := Render(g, RenderOptions{CellSize: 16, Scale: 1, Labels: false})
	require.NoError(t, err)
	assert.Equal(t, 48, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			want := toNRGBA(g.At(row, col).Color)
			got := img.NRGBAAt(col*16+8, row*16+8)
			assert.Equal(t, want, got, "cell %d,%d", row, col)
		}
	}
}

func TestRenderDrawsLabels(t *testing.T) {
	g := testGrid(t)

	img, err := Render(g, RenderOptions{CellSize: 64, Scale: 1, Labels: true})
	require.NoError(t, err)

	cell := g.At(0, 0)
	fill := toNRGBA(cell.Color)
	text := toNRGBA(cell.Text)

	// The label should leave text-colored pixels inside the first cell.
	found := false
	for y := 0; y < 64 && !found; y++ {
		for x := 0; x < 64; x++ {
			if px := img.NRGBAAt(x, y); px != fill {
				assert.Equal(t, text, px)
				found = true
				break
			}
		}
	}
	assert.True(t, found, "expected label pixels, text color %v", text)
}

func TestRenderSkipsLabelsWiderThanCell(t *testing.T) {
	g := testGrid(t)

	img, err := Render(g, RenderOptions{CellSize: 8, Scale: 1, Labels: true})
	require.NoError(t, err)

	want := toNRGBA(g.At(0, 0).Color)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			require.Equal(t, want, img.NRGBAAt(x, y))
		}
	}
}

func TestRenderUpscale(t *testing.T) {
	g := testGrid(t)

	img, err := Render(g, RenderOptions{CellSize: 16, Scale: 2})
	require.NoError(t, err)
	assert.Equal(t, 96, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())
	assert.Equal(t, toNRGBA(g.At(1, 2).Color), img.NRGBAAt(2*32+16, 32+16))
}

func TestRenderRejectsBadInput(t *testing.T) {
	_, err := Render(testGrid(t), RenderOptions{CellSize: 0})
	assert.Error(t, err)

	_, err = Render(palette.Grid{Rows: 2, Columns: 2}, DefaultRenderOptions())
	assert.Error(t, err)
}

func TestEncodePNG(t *testing.T) {
	img, err := Render(testGrid(t), DefaultRenderOptions())
	require.NoError(t, err)

	for _, name := range []string{"default", "speed", "best", "none", ""} {
		data, err := PNGBytes(img, name)
		require.NoError(t, err, name)

		decoded, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, img.Bounds(), decoded.Bounds())
	}

	var buf bytes.Buffer
	assert.Error(t, EncodePNG(&buf, img, "fastest"))
}

func TestToNRGBA(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}, toNRGBA(colorconv.Color(0x336699)))
}
