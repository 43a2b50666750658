// Package colorconv converts colors between packed 24-bit integers,
// #rrggbb hex strings, RGB triplets and HSL triplets, and computes
// luminance and contrast ratios between colors.
//
// Every function is pure; nothing in this package holds state.
package colorconv

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// colorMask keeps the low 24 bits of a packed color.
	colorMask = 0xFFFFFF
	// channelMask keeps the low 8 bits of a single channel.
	channelMask = 0xFF
)

// ErrInvalidColorFormat is returned when a value cannot be read as a color.
var ErrInvalidColorFormat = errors.New("invalid color format")

// Color is a packed 0xRRGGBB value. Values built by this package never
// exceed 0xFFFFFF.
type Color uint32

// RGB holds the three 8-bit channels of a color. Channels are masked to
// 0..255 wherever they are read, so out-of-range values wrap instead of
// clamping.
type RGB struct {
	Red   int `json:"red"`
	Green int `json:"green"`
	Blue  int `json:"blue"`
}

// FromInt masks v to 24 bits. Negative values wrap the same way a
// two's complement AND would.
func FromInt(v int64) Color {
	return Color(uint64(v) & colorMask)
}

// ParseColor reads a hex color with or without a leading '#'.
// Anything wider than six digits is truncated to the low 24 bits.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if hex == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}

	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
		}
	}
	// Only the low 24 bits survive the mask, so the last six digits suffice.
	if len(hex) > 6 {
		hex = hex[len(hex)-6:]
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}

	return Color(v & colorMask), nil
}

// FromNumber converts a JSON or JavaScript number to a packed color.
// The integer part is wrapped into 24 bits like FromInt; NaN and
// infinities are rejected.
func FromNumber(f float64) (Color, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidColorFormat, f)
	}
	v := math.Mod(math.Trunc(f), colorMask+1)
	if v < 0 {
		v += colorMask + 1
	}
	return Color(v), nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// ToColor converts any supported color representation to a packed Color.
// Integers are masked, strings are parsed as hex, RGB and HSL values are
// packed.
func ToColor(v any) (Color, error) {
	switch c := v.(type) {
	case Color:
		return c & colorMask, nil
	case int:
		return FromInt(int64(c)), nil
	case int8:
		return FromInt(int64(c)), nil
	case int16:
		return FromInt(int64(c)), nil
	case int32:
		return FromInt(int64(c)), nil
	case int64:
		return FromInt(c), nil
	case uint:
		return Color(uint64(c) & colorMask), nil
	case uint8:
		return Color(c), nil
	case uint16:
		return Color(c), nil
	case uint32:
		return Color(c & colorMask), nil
	case uint64:
		return Color(c & colorMask), nil
	case string:
		return ParseColor(c)
	case RGB:
		return RGBToInt(c), nil
	case HSL:
		return HSLToColor(c), nil
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidColorFormat, v)
	}
}

// IntToColor renders v as "#rrggbb" after masking it to 24 bits.
func IntToColor(v int64) string {
	return FromInt(v).Hex()
}

// Hex returns the lowercase, zero-padded "#rrggbb" form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&colorMask)
}

func (c Color) String() string {
	return c.Hex()
}

// RGB splits the packed value into its channels.
func (c Color) RGB() RGB {
	return RGB{
		Red:   int(c>>16) & channelMask,
		Green: int(c>>8) & channelMask,
		Blue:  int(c) & channelMask,
	}
}

// GetRGB converts v with ToColor and splits it into channels.
func GetRGB(v any) (RGB, error) {
	c, err := ToColor(v)
	if err != nil {
		return RGB{}, err
	}
	return c.RGB(), nil
}

// RGBToInt packs the channels, masking each to 8 bits first.
func RGBToInt(rgb RGB) Color {
	return Color(((rgb.Red & channelMask) << 16) + ((rgb.Green & channelMask) << 8) + (rgb.Blue & channelMask))
}

// RGBToColor packs the channels and renders them as "#rrggbb".
func RGBToColor(rgb RGB) string {
	return RGBToInt(rgb).Hex()
}
