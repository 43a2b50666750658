package cmd

import (
	"errors"
	"fmt"

	"github.com/MeKo-Tech/colorengine/internal/colorconv"
	"github.com/spf13/cobra"
)

var pickCmd = &cobra.Command{
	Use:   "pick <base> <candidate>...",
	Short: "Pick the candidate with the highest contrast against base",
	Long: `Pick the candidate with the highest contrast ratio against the base color.
When several candidates tie, the first one given wins.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	base, err := colorconv.ParseColor(args[0])
	if err != nil {
		return err
	}

	candidates := make([]colorconv.Color, 0, len(args)-1)
	for _, arg := range args[1:] {
		c, err := colorconv.ParseColor(arg)
		if err != nil {
			return err
		}
		candidates = append(candidates, c)
	}

	best, ok := colorconv.ContrastColor(base, candidates)
	if !ok {
		return errors.New("no candidate colors given")
	}

	fmt.Fprintln(cmd.OutOrStdout(), best)
	return nil
}
