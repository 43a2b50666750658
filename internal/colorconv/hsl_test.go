package colorconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSLToRGBKnownColors(t *testing.T) {
	tests := []struct {
		name string
		hsl  HSL
		want RGB
	}{
		{"red", HSL{Hue: 0, Saturation: 100, Lightness: 50}, RGB{255, 0, 0}},
		{"green", HSL{Hue: 120, Saturation: 100, Lightness: 50}, RGB{0, 255, 0}},
		{"blue", HSL{Hue: 240, Saturation: 100, Lightness: 50}, RGB{0, 0, 255}},
		{"yellow", HSL{Hue: 60, Saturation: 100, Lightness: 50}, RGB{255, 255, 0}},
		{"cyan", HSL{Hue: 180, Saturation: 100, Lightness: 50}, RGB{0, 255, 255}},
		{"magenta", HSL{Hue: 300, Saturation: 100, Lightness: 50}, RGB{255, 0, 255}},
		{"white", HSL{Hue: 0, Saturation: 0, Lightness: 100}, RGB{255, 255, 255}},
		{"black", HSL{Hue: 0, Saturation: 0, Lightness: 0}, RGB{0, 0, 0}},
		{"steel blue", HSL{Hue: 210, Saturation: 50, Lightness: 40}, RGB{51, 102, 153}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HSLToRGB(tt.hsl))
		})
	}
}

func TestHSLToRGBReducesHue(t *testing.T) {
	red := RGB{255, 0, 0}
	assert.Equal(t, red, HSLToRGB(HSL{Hue: 360, Saturation: 100, Lightness: 50}))
	assert.Equal(t, red, HSLToRGB(HSL{Hue: 720, Saturation: 100, Lightness: 50}))

	// -240 is 120 after normalization.
	assert.Equal(t, RGB{0, 255, 0}, HSLToRGB(HSL{Hue: -240, Saturation: 100, Lightness: 50}))

	// -1e-14 + 360 is exactly 360 in float64.
	assert.Equal(t, red, HSLToRGB(HSL{Hue: -1e-14, Saturation: 100, Lightness: 50}))
	assert.Equal(t, red, HSLToRGB(HSL{Hue: -360 - 1e-14, Saturation: 100, Lightness: 50}))
}

func TestHSLToRGBClamps(t *testing.T) {
	assert.Equal(t, RGB{255, 255, 255}, HSLToRGB(HSL{Hue: 10, Saturation: 250, Lightness: 130}))
	assert.Equal(t, RGB{0, 0, 0}, HSLToRGB(HSL{Hue: 10, Saturation: 50, Lightness: -20}))
	assert.Equal(t,
		HSLToRGB(HSL{Hue: 0, Saturation: 100, Lightness: 50}),
		HSLToRGB(HSL{Hue: 0, Saturation: 180, Lightness: 50}),
	)
}

func TestRGBToHSLKnownColors(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  HSL
	}{
		{"black", 0x000000, HSL{0, 0, 0}},
		{"white", 0xffffff, HSL{0, 0, 100}},
		{"red", 0xff0000, HSL{0, 100, 50}},
		{"green", 0x00ff00, HSL{120, 100, 50}},
		{"blue", 0x0000ff, HSL{240, 100, 50}},
		{"magenta-ish", 0xff0080, HSL{330, 100, 50}},
		{"gray", 0x808080, HSL{0, 0, 50.2}},
		{"steel blue", 0x336699, HSL{210, 50, 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToHSL(tt.color)
			assert.Equal(t, tt.want.Hue, got.Hue, "hue")
			assert.InDelta(t, tt.want.Saturation, got.Saturation, 1e-9, "saturation")
			assert.InDelta(t, tt.want.Lightness, got.Lightness, 1e-9, "lightness")
		})
	}
}

func TestRGBToHSLHueIsNonNegative(t *testing.T) {
	for c := Color(0); c <= 0xffffff; c += 0x010203 {
		h := RGBToHSL(c)
		assert.GreaterOrEqual(t, h.Hue, 0.0, "hue of %s", c)
		assert.Less(t, h.Hue, 360.0+1, "hue of %s", c)
	}
}

func TestHSLRoundTrip(t *testing.T) {
	samples := []HSL{
		{Hue: 0, Saturation: 100, Lightness: 50},
		{Hue: 30, Saturation: 80, Lightness: 60},
		{Hue: 95, Saturation: 45, Lightness: 35},
		{Hue: 200, Saturation: 70, Lightness: 45},
		{Hue: 275, Saturation: 60, Lightness: 55},
		{Hue: 340, Saturation: 90, Lightness: 40},
	}

	for _, h := range samples {
		got := RGBToHSL(HSLToColor(h))
		assert.InDelta(t, h.Hue, got.Hue, 1, "hue of %+v", h)
		assert.InDelta(t, h.Saturation, got.Saturation, 1, "saturation of %+v", h)
		assert.InDelta(t, h.Lightness, got.Lightness, 0.5, "lightness of %+v", h)
	}
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 3.0, roundHalfUp(2.5))
	assert.Equal(t, -2.0, roundHalfUp(-2.5))
	assert.Equal(t, 50.2, roundTenth(50.19607843))
}
