package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/stylebag/internal/responsive"
)

// newParseCmd creates the parse command.
func newParseCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <value>",
		Short: "Normalize a CSS length",
		Long: `Print the CSS form of a length: bare digits get a px unit, keywords
and values with units are kept.

Examples:
  stylebag parse 12     # 12px
  stylebag parse 2em    # 2em`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := responsive.ParseValue(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(provider.Out, out)
			return nil
		},
	}
}

// newCalcCmd creates the calc command.
func newCalcCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "calc <size> [size...]",
		Short: "Sum sizes into a CSS calc expression",
		Long: `Normalize each size and print their sum as a calc() expression.
A single size is printed on its own.

Examples:
  stylebag calc 10 2em  # calc(10px + 2em)`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes := make([]any, len(args))
			for i, a := range args {
				sizes[i] = a
			}
			out, err := responsive.Calculate(sizes...)
			if err != nil {
				return err
			}
			fmt.Fprintln(provider.Out, out)
			return nil
		},
	}
}

// newColorCmd creates the color command.
func newColorCmd(provider *AppProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "color <value>",
		Short: "Normalize a color",
		Long: `Print a named or hex color as #rrggbb. Keywords such as transparent
and functional forms such as rgb(...) are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := responsive.NormalizeColor(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(provider.Out, out)
			return nil
		},
	}
}
