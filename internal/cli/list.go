package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dshills/stylebag/internal/objpath"
	"github.com/dshills/stylebag/internal/responsive"
)

// newListCmd creates the list command.
func newListCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [entity]",
		Short: "List entities or the settings of one entity",
		Long: `Without arguments, list the entity ids of the document.
With an entity id, print every stored setting as "path = value", sorted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			doc, err := app.Store.Load()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				for _, id := range doc.IDs() {
					fmt.Fprintln(app.Out, id)
				}
				return nil
			}

			ls, ok := doc.Lookup(args[0])
			if !ok {
				return fmt.Errorf("entity %s: %w", args[0], ErrNotFound)
			}

			flat := objpath.Flatten(ls.Instance)
			delete(flat, responsive.KeyField)
			paths := make([]string, 0, len(flat))
			for p := range flat {
				paths = append(paths, p)
			}
			sort.Strings(paths)

			for _, p := range paths {
				fmt.Fprintf(app.Out, "%s = %s\n", p, formatValue(flat[p]))
			}
			return nil
		},
	}

	return cmd
}
