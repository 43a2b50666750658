package colorconv

import "math"

const (
	// LuminanceGamma is the exponent applied to non-linear channel values.
	// WCAG uses 2.4; 2.24 is kept so existing contrast choices do not shift.
	LuminanceGamma = 2.24

	// linearThreshold is the normalized channel value below which the
	// linear segment of the transfer curve applies.
	linearThreshold = 0.04045

	// BT.709 luma weights.
	redWeight   = 0.2126
	greenWeight = 0.7152
	blueWeight  = 0.0722

	// contrastFlare is added to both luminances before dividing.
	contrastFlare = 0.05
)

// NormalizeChannel masks v to 8 bits and scales it to [0,1].
func NormalizeChannel(v int) float64 {
	return float64(v&channelMask) / 255
}

// ChannelLuminance gamma-linearizes a single 0..255 channel.
func ChannelLuminance(v int) float64 {
	n := NormalizeChannel(v)
	if n <= linearThreshold {
		return n / 12.92
	}
	return math.Pow((n+0.055)/1.055, LuminanceGamma)
}

// Luminance returns the relative luminance of c in [0,1].
func Luminance(c Color) float64 {
	rgb := c.RGB()
	return redWeight*ChannelLuminance(rgb.Red) +
		greenWeight*ChannelLuminance(rgb.Green) +
		blueWeight*ChannelLuminance(rgb.Blue)
}

// ContrastRatio returns (L1+0.05)/(L2+0.05) with L1 the lighter of the two
// luminances. The result does not depend on argument order.
func ContrastRatio(color, background Color) float64 {
	lc := Luminance(color)
	lb := Luminance(background)
	return (math.Max(lc, lb) + contrastFlare) / (math.Min(lc, lb) + contrastFlare)
}

// MaxContrastRatio is the ratio between black and white under this
// luminance model.
func MaxContrastRatio() float64 {
	return ContrastRatio(0x000000, 0xFFFFFF)
}

// ContrastIndex returns the index of the candidate with the highest
// contrast against base, or -1 when candidates is empty. A candidate only
// replaces the current best when its ratio is strictly greater, so ties
// keep the earliest candidate.
func ContrastIndex(base Color, candidates []Color) int {
	best := -1
	bestRatio := 0.0

	for i, candidate := range candidates {
		ratio := ContrastRatio(candidate&colorMask, base)
		if ratio > bestRatio {
			best = i
			bestRatio = ratio
		}
	}

	return best
}

// ContrastColor returns the hex form of the candidate with the highest
// contrast against base. The boolean is false when candidates is empty.
func ContrastColor(base Color, candidates []Color) (string, bool) {
	i := ContrastIndex(base, candidates)
	if i < 0 {
		return "", false
	}
	return (candidates[i] & colorMask).Hex(), true
}

// ContrastColorOf is ContrastColor over values accepted by ToColor.
func ContrastColorOf(base any, candidates ...any) (string, bool, error) {
	b, err := ToColor(base)
	if err != nil {
		return "", false, err
	}

	colors := make([]Color, 0, len(candidates))
	for _, candidate := range candidates {
		c, err := ToColor(candidate)
		if err != nil {
			return "", false, err
		}
		colors = append(colors, c)
	}

	hex, ok := ContrastColor(b, colors)
	return hex, ok, nil
}
