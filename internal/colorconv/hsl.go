package colorconv

import "math"

// HSL coordinate system.
const (
	MaxHue        = 360
	MaxSaturation = 100
	MaxLightness  = 100
)

// HSL is a color in hue (degrees), saturation (percent) and lightness
// (percent). Hue values outside [0,360) are accepted and reduced by
// HSLToRGB.
type HSL struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
}

// RGBToHSL converts c to HSL. Hue is rounded to whole degrees, saturation
// and lightness to one decimal place. Neither is clamped.
func RGBToHSL(c Color) HSL {
	rgb := c.RGB()
	r := float64(rgb.Red) / 255
	g := float64(rgb.Green) / 255
	b := float64(rgb.Blue) / 255

	cMax := math.Max(r, math.Max(g, b))
	cMin := math.Min(r, math.Min(g, b))
	delta := cMax - cMin

	var hue float64
	switch {
	case delta == 0:
		hue = 0
	case cMax == r:
		hue = math.Mod((g-b)/delta, 6)
	case cMax == g:
		hue = (b-r)/delta + 2
	default:
		hue = (r-g)/delta + 4
	}
	hue = roundHalfUp(hue * 60)

	// Negative hues are lifted with an additive loop here, while HSLToRGB
	// uses a modulo. Keep both: out-of-range inputs differ between them.
	for hue < 0 {
		hue += MaxHue
	}

	lightness := (cMax + cMin) / 2

	var saturation float64
	if delta != 0 {
		saturation = delta / (1 - math.Abs(2*lightness-1))
	}

	return HSL{
		Hue:        hue,
		Saturation: roundTenth(saturation * 100),
		Lightness:  roundTenth(lightness * 100),
	}
}

// HSLToRGB converts h to RGB. Hue is reduced modulo 360 and saturation and
// lightness are clamped to [0,100]; RGBToHSL does neither.
func HSLToRGB(h HSL) RGB {
	hue := math.Mod(h.Hue, MaxHue)
	if hue < 0 {
		hue += MaxHue
	}
	// Tiny negative remainders round up to exactly MaxHue.
	if hue >= MaxHue {
		hue -= MaxHue
	}
	saturation := minmax(h.Saturation, 0, MaxSaturation) / MaxSaturation
	lightness := minmax(h.Lightness, 0, MaxLightness) / MaxLightness

	chroma := (1 - math.Abs(2*lightness-1)) * saturation
	x := chroma * (1 - math.Abs(math.Mod(hue/60, 2)-1))
	m := lightness - chroma/2

	var r, g, b float64
	switch {
	case hue >= 0 && hue < 60:
		r, g, b = chroma, x, 0
	case hue >= 60 && hue < 120:
		r, g, b = x, chroma, 0
	case hue >= 120 && hue < 180:
		r, g, b = 0, chroma, x
	case hue >= 180 && hue < 240:
		r, g, b = 0, x, chroma
	case hue >= 240 && hue < 300:
		r, g, b = x, 0, chroma
	case hue >= 300 && hue < 360:
		r, g, b = chroma, 0, x
	}

	return RGB{
		Red:   int(roundHalfUp((r + m) * 255)),
		Green: int(roundHalfUp((g + m) * 255)),
		Blue:  int(roundHalfUp((b + m) * 255)),
	}
}

// HSLToColor converts h to a packed color.
func HSLToColor(h HSL) Color {
	return RGBToInt(HSLToRGB(h))
}

// minmax clamps v into [lo, hi].
func minmax(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// roundHalfUp rounds halves toward +Inf, so -2.5 becomes -2.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func roundTenth(v float64) float64 {
	return roundHalfUp(v*10) / 10
}
