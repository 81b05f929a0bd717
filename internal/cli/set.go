package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newSetCmd creates the set command.
func newSetCmd(provider *AppProvider) *cobra.Command {
	var flags pluginFlags

	cmd := &cobra.Command{
		Use:   "set <entity> <plugin> <value>",
		Short: "Write the configuration of a plugin",
		Long: `Write a plugin configuration, for one viewport or for all of them.

The value is read as JSON and taken as a plain string when it is not valid
JSON. The value null resets the entry.

Examples:
  stylebag set header margin '{"top":10}' --viewport md
  stylebag set header color red
  stylebag set header margin null`,
		Args: cobra.ExactArgs(3),
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
			ls := doc.Entity(args[0])

			p, err := flags.plugin(app.Configurator.Style(ls), args[1])
			if err != nil {
				return err
			}
			if err := p.SetConfig(parseArg(args[2]), vp); err != nil {
				return err
			}
			if err := app.Save(doc); err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "Set %s/%s at %s\n", args[0], p.Path(), vp)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

// parseArg reads s as JSON, falling back to the raw string.
func parseArg(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}
