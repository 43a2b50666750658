package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/MeKo-Tech/colorengine/internal/colorconv"
	"github.com/MeKo-Tech/colorengine/internal/palette"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var convertCmd = &cobra.Command{
	Use:   "convert <color>",
	Short: "Show a color as hex, integer, RGB and HSL",
	Long: `Convert a color and print every representation the engine knows about,
plus its relative luminance and the more readable of black and white text.

Colors are read as hex (with or without '#'). Use --decimal to pass a packed
integer instead; it is masked to 24 bits.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().Bool("decimal", false, "Read the argument as a decimal packed integer")

	mustBindFlags(convertCmd, map[string]string{
		"convert.decimal": "decimal",
	})
}

func runConvert(cmd *cobra.Command, args []string) error {
	var (
		c   colorconv.Color
		err error
	)
	if viper.GetBool("convert.decimal") {
		c, err = parseDecimalColor(args[0])
	} else {
		c, err = colorconv.ParseColor(args[0])
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), formatConversion(c))
	return err
}

func parseDecimalColor(s string) (colorconv.Color, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a decimal integer", colorconv.ErrInvalidColorFormat, s)
	}
	return colorconv.ToColor(v)
}

func formatConversion(c colorconv.Color) string {
	rgb := c.RGB()
	hsl := colorconv.RGBToHSL(c)
	text, _ := colorconv.ContrastColor(c, palette.DefaultTextCandidates)

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "hex\t%s\n", c.Hex())
	fmt.Fprintf(tw, "int\t%d\n", uint32(c))
	fmt.Fprintf(tw, "rgb\t%d, %d, %d\n", rgb.Red, rgb.Green, rgb.Blue)
	fmt.Fprintf(tw, "hsl\t%g, %.1f%%, %.1f%%\n", hsl.Hue, hsl.Saturation, hsl.Lightness)
	fmt.Fprintf(tw, "luminance\t%.4f\n", colorconv.Luminance(c))
	fmt.Fprintf(tw, "text\t%s\n", text)
	_ = tw.Flush()

	return b.String()
}
