package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/stylebag/internal/breakpoint"
	"github.com/dshills/stylebag/internal/responsive"
)

// ErrRejected indicates a write refused by a constraint.
var ErrRejected = errors.New("rejected")

// newVisibilityCmd creates the visibility command.
func newVisibilityCmd(provider *AppProvider) *cobra.Command {
	var viewport string

	cmd := &cobra.Command{
		Use:   "visibility <entity> <none|inline|block|inherit>",
		Short: "Set the display state of an entity",
		Long: `Set the display state of an entity at a viewport.

The write is refused when it would leave the entity hidden at some
breakpoint without being visible at any other. inherit clears the entry
at the viewport.

Examples:
  stylebag visibility header none --viewport xs
  stylebag visibility header block --viewport md`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			vp, err := breakpoint.Parse(viewport)
			if err != nil {
				return err
			}

			doc, err := app.Store.Load()
			if err != nil {
				return err
			}
			ls := doc.Entity(args[0])

			d := responsive.Display(args[1])
			if args[1] == "inherit" {
				d = responsive.DisplayInherit
			}
			ok, err := app.Configurator.Style(ls).Visibility(d, vp)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("display %s on %s: %w", d, args[0], ErrRejected)
			}
			if err := app.Save(doc); err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "%s %s at %s\n", d.Label(), args[0], vp)
			return nil
		},
	}
	cmd.Flags().StringVarP(&viewport, "viewport", "v", "", "Breakpoint: xs, sm, md, lg, xl (empty for all)")

	return cmd
}
