package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newGetCmd creates the get command.
func newGetCmd(provider *AppProvider) *cobra.Command {
	var flags pluginFlags

	cmd := &cobra.Command{
		Use:   "get <entity> <plugin>",
		Short: "Print the configuration of a plugin",
		Long: `Print the configuration stored for a plugin at one viewport, as JSON.

Without --viewport the xs entry is read. Flat values are printed as stored.

Examples:
  stylebag get header margin --viewport md
  stylebag get header padding --component button --variation primary`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			vp, err := flags.breakpoint()
			if err != nil {
				return err
			}

			doc, err := app.Store.Load()
			if err != nil {
				return err
			}
			ls, ok := doc.Lookup(args[0])
			if !ok {
				return fmt.Errorf("entity %s: %w", args[0], ErrNotFound)
			}

			p, err := flags.plugin(app.Configurator.Style(ls), args[1])
			if err != nil {
				return err
			}
			v, found, err := p.GetConfig(vp)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%s at %s: %w", p.Path(), vp, ErrNotFound)
			}
			return printJSON(app.Out, v)
		},
	}
	flags.register(cmd)

	return cmd
}
