package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newVersionCmd creates the version command.
func newVersionCmd(provider *AppProvider, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the stylebag version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(provider.Out, "stylebag %s\n", version)
		},
	}
}
