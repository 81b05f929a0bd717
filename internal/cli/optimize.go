package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// newOptimizeCmd creates the optimize command.
func newOptimizeCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize [entity...]",
		Short: "Collapse redundant breakpoint entries",
		Long: `Drop per-breakpoint properties that repeat the value of a narrower
breakpoint, then save the document. Without arguments every entity is
optimized. Entities left empty are removed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			doc, err := app.Store.Load()
			if err != nil {
				return err
			}

			changed := make(map[string][]string)
			if len(args) == 0 {
				changed = doc.Optimize()
			} else {
				for _, id := range args {
					ls, ok := doc.Lookup(id)
					if !ok {
						return fmt.Errorf("entity %s: %w", id, ErrNotFound)
					}
					if paths := app.Configurator.Optimize(ls.Instance); len(paths) > 0 {
						changed[id] = paths
					}
				}
			}
			doc.Prune()

			if err := app.Store.Save(doc); err != nil {
				return err
			}

			ids := make([]string, 0, len(changed))
			for id := range changed {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				for _, path := range changed[id] {
					fmt.Fprintf(app.Out, "Optimized %s/%s\n", id, path)
				}
			}
			return nil
		},
	}

	return cmd
}
