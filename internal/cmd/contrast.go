package cmd

import (
	"fmt"

	"github.com/MeKo-Tech/colorengine/internal/colorconv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var contrastCmd = &cobra.Command{
	Use:   "contrast <color> <background>",
	Short: "Compute the contrast ratio between two colors",
	Args:  cobra.ExactArgs(2),
	RunE:  runContrast,
}

func init() {
	rootCmd.AddCommand(contrastCmd)

	contrastCmd.Flags().Float64("min", 0, "Fail when the ratio is below this value (e.g. 4.5)")

	mustBindFlags(contrastCmd, map[string]string{
		"contrast.min": "min",
	})
}

func runContrast(cmd *cobra.Command, args []string) error {
	fg, err := colorconv.ParseColor(args[0])
	if err != nil {
		return err
	}
	bg, err := colorconv.ParseColor(args[1])
	if err != nil {
		return err
	}

	ratio := colorconv.ContrastRatio(fg, bg)
	fmt.Fprintf(cmd.OutOrStdout(), "%.2f:1\n", ratio)

	if minRatio := viper.GetFloat64("contrast.min"); minRatio > 0 && ratio < minRatio {
		return fmt.Errorf("contrast %.2f:1 between %s and %s is below %.2f:1", ratio, fg, bg, minRatio)
	}
	return nil
}
