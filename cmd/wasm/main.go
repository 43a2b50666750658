//go:build js && wasm
// +build js,wasm

package main

import (
	"fmt"
	"math"
	"syscall/js"

	"github.com/MeKo-Tech/colorengine/internal/colorconv"
)

// toColor converts a JS number or string to a packed color.
func toColor(v js.Value) (colorconv.Color, error) {
	switch v.Type() {
	case js.TypeNumber:
		return colorconv.FromNumber(v.Float())
	case js.TypeString:
		return colorconv.ParseColor(v.String())
	default:
		return 0, fmt.Errorf("%w: unsupported JS type %s", colorconv.ErrInvalidColorFormat, v.Type())
	}
}

func errorValue(err error) map[string]any {
	return map[string]any{"error": err.Error()}
}

func colorToInt(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorValue(fmt.Errorf("missing color"))
	}
	c, err := toColor(args[0])
	if err != nil {
		return errorValue(err)
	}
	return int(c)
}

func intToColor(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorValue(fmt.Errorf("missing value"))
	}
	if args[0].Type() != js.TypeNumber {
		return errorValue(fmt.Errorf("%w: expected a number, got %s", colorconv.ErrInvalidColorFormat, args[0].Type()))
	}
	c, err := colorconv.FromNumber(args[0].Float())
	if err != nil {
		return errorValue(err)
	}
	return c.Hex()
}

func rgbToHSL(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorValue(fmt.Errorf("missing color"))
	}
	c, err := toColor(args[0])
	if err != nil {
		return errorValue(err)
	}
	hsl := colorconv.RGBToHSL(c)
	return map[string]any{"hue": hsl.Hue, "saturation": hsl.Saturation, "lightness": hsl.Lightness}
}

// hslToRGB accepts (hue, saturation, lightness) and returns {red, green, blue}.
func hslToRGB(this js.Value, args []js.Value) any {
	if len(args) < 3 {
		return errorValue(fmt.Errorf("expected hue, saturation, lightness"))
	}
	var values [3]float64
	for i := range values {
		if args[i].Type() != js.TypeNumber {
			return errorValue(fmt.Errorf("expected numbers, got %s", args[i].Type()))
		}
		values[i] = args[i].Float()
		if math.IsNaN(values[i]) || math.IsInf(values[i], 0) {
			return errorValue(fmt.Errorf("expected finite numbers, got %v", values[i]))
		}
	}
	rgb := colorconv.HSLToRGB(colorconv.HSL{
		Hue:        values[0],
		Saturation: values[1],
		Lightness:  values[2],
	})
	return map[string]any{"red": rgb.Red, "green": rgb.Green, "blue": rgb.Blue}
}

func getContrastRatio(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return errorValue(fmt.Errorf("expected color and background"))
	}
	fg, err := toColor(args[0])
	if err != nil {
		return errorValue(err)
	}
	bg, err := toColor(args[1])
	if err != nil {
		return errorValue(err)
	}
	return colorconv.ContrastRatio(fg, bg)
}

// getContrastColor accepts (base, candidate...) and returns the best
// candidate hex, or null when no candidates are given.
func getContrastColor(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorValue(fmt.Errorf("missing base color"))
	}
	base, err := toColor(args[0])
	if err != nil {
		return errorValue(err)
	}

	var candidates []colorconv.Color
	for _, arg := range args[1:] {
		if arg.Type() == js.TypeObject && arg.InstanceOf(js.Global().Get("Array")) {
			for i := 0; i < arg.Length(); i++ {
				c, err := toColor(arg.Index(i))
				if err != nil {
					return errorValue(err)
				}
				candidates = append(candidates, c)
			}
			continue
		}
		c, err := toColor(arg)
		if err != nil {
			return errorValue(err)
		}
		candidates = append(candidates, c)
	}

	best, ok := colorconv.ContrastColor(base, candidates)
	if !ok {
		return js.Null()
	}
	return best
}

func main() {
	c := make(chan struct{})

	js.Global().Set("colorToInt", js.FuncOf(colorToInt))
	js.Global().Set("intToColor", js.FuncOf(intToColor))
	js.Global().Set("rgbToHSL", js.FuncOf(rgbToHSL))
	js.Global().Set("hslToRGB", js.FuncOf(hslToRGB))
	js.Global().Set("getContrastRatio", js.FuncOf(getContrastRatio))
	js.Global().Set("getContrastColor", js.FuncOf(getContrastColor))

	fmt.Println("colorengine WASM module loaded")
	<-c
}
