// Command aztecdiag inspects the reference-grid diagnostics used by the
// Aztec recovery pipeline. It prints the grid partition for a symbol
// dimension and scores the sub-areas of a sampled grid given as a text
// matrix.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"aztecscan/aztec/recovery"
	"aztecscan/bitutil"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "aztecdiag:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "aztecdiag",
		Short:         "Inspect Aztec reference-grid diagnostics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGridCmd())
	root.AddCommand(newAreasCmd())
	return root
}

func newGridCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grid <dimension>",
		Short: "Print the grid borders and sub-area count for a symbol dimension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dim, err := strconv.Atoi(args[0])
			if err != nil || dim < 2 {
				return fmt.Errorf("invalid dimension %q", args[0])
			}
			borders := recovery.GridBorders(dim)
			n := len(borders) - 1
			fmt.Fprintf(cmd.OutOrStdout(), "dimension: %d\n", dim)
			fmt.Fprintf(cmd.OutOrStdout(), "borders:   %s\n", joinInts(borders))
			fmt.Fprintf(cmd.OutOrStdout(), "areas:     %d (%dx%d)\n", n*n, n, n)
			return nil
		},
	}
}

func newAreasCmd() *cobra.Command {
	var setStr, unsetStr string
	cmd := &cobra.Command{
		Use:   "areas <file>",
		Short: "Score the grid-bounded sub-areas of a sampled grid",
		Long: `Score the grid-bounded sub-areas of a sampled grid.

The file holds one row per line, each module written as the set or
unset string. Every sub-area is scored by the checkerboard mismatches
along its interior reference-grid edges.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			matrix, err := parseMatrix(string(data), setStr, unsetStr)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "grid: %dx%d\n", matrix.Width(), matrix.Height())
			for _, sa := range recovery.Partition(matrix) {
				fmt.Fprintf(out, "area (%2d,%2d)-(%2d,%2d)  errors %3d/%3d  ratio %.3f\n",
					sa.Area.TopLeft.X, sa.Area.TopLeft.Y,
					sa.Area.BottomRight.X, sa.Area.BottomRight.Y,
					sa.Errors, sa.Total, sa.ErrorRatio())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&setStr, "set", "X", "string representing a dark module")
	cmd.Flags().StringVar(&unsetStr, "unset", ".", "string representing a light module")
	return cmd
}

// parseMatrix converts the matrix parser's panics on malformed input
// into errors fit for command output.
func parseMatrix(repr, setStr, unsetStr string) (m *bitutil.BitMatrix, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return bitutil.ParseStringMatrix(repr, setStr, unsetStr), nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
