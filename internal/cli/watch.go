package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/stylebag/internal/watcher"
)

// newWatchCmd creates the watch command.
func newWatchCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print changes to the styles document as they happen",
		Long: `Watch the styles document and print the settings added, modified or
removed on every write. Stops on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			w, err := watcher.New(app.Store,
				watcher.WithDebounce(time.Duration(app.Config.WatchDebounce)),
				watcher.WithLogger(app.Logger.WithComponent("watcher")),
				watcher.WithNotifier(app.Notifier),
			)
			if err != nil {
				return err
			}
			defer w.Close()

			w.OnReload(func(r watcher.Reload) {
				printReload(app, r)
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(app.Out, "Watching %s\n", app.Store.Path())
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	return cmd
}

func printReload(app *App, r watcher.Reload) {
	if r.Err != nil {
		fmt.Fprintf(app.Err, "Error: %v\n", r.Err)
		return
	}
	for _, p := range r.Added {
		fmt.Fprintf(app.Out, "+ %s\n", p)
	}
	for _, p := range r.Modified {
		fmt.Fprintf(app.Out, "~ %s\n", p)
	}
	for _, p := range r.Removed {
		fmt.Fprintf(app.Out, "- %s\n", p)
	}
}
