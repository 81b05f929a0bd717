// Package cli implements the stylebag commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dshills/stylebag/internal/breakpoint"
	"github.com/dshills/stylebag/internal/config"
	"github.com/dshills/stylebag/internal/document"
	"github.com/dshills/stylebag/internal/logging"
	"github.com/dshills/stylebag/internal/notify"
	"github.com/dshills/stylebag/internal/responsive"
)

// ErrNotFound indicates a missing entity or value.
var ErrNotFound = errors.New("not found")

// App holds what the commands work with.
type App struct {
	Config       config.Config
	Store        *document.Store
	Configurator *responsive.Configurator
	Notifier     *notify.Notifier
	Logger       *logging.Logger
	Out          io.Writer
	Err          io.Writer
}

// AppProvider lazily initializes the App on first use.
type AppProvider struct {
	once sync.Once
	app  *App
	err  error

	// Captured from flags before Execute.
	ConfigPath   string
	DocumentPath string
	LogLevel     string
	Cascade      bool
	Out          io.Writer
	Err          io.Writer
}

// Get returns the App, initializing it on first call.
func (p *AppProvider) Get() (*App, error) {
	p.once.Do(func() {
		if p.app == nil {
			p.app, p.err = p.init()
		}
	})
	return p.app, p.err
}

// NewTestProvider creates a provider pre-initialized with app.
func NewTestProvider(app *App) *AppProvider {
	return &AppProvider{
		app: app,
		Out: app.Out,
		Err: app.Err,
	}
}

func (p *AppProvider) init() (*App, error) {
	cfg, err := config.Load(p.ConfigPath)
	if err != nil {
		return nil, err
	}
	if p.DocumentPath != "" {
		cfg.Document = p.DocumentPath
	}
	if p.LogLevel != "" {
		cfg.LogLevel = p.LogLevel
	}
	if p.Cascade {
		cfg.Cascade = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := p.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	return NewApp(cfg, out, errOut)
}

// NewApp wires an App from a resolved configuration.
func NewApp(cfg config.Config, out, errOut io.Writer) (*App, error) {
	store, err := document.NewStore(cfg.Document)
	if err != nil {
		return nil, err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.LogLevel)
	logCfg.Output = errOut
	logger := logging.New(logCfg)

	notifier := notify.New(notify.WithAsync(64))
	notifier.OnAlert(func(a notify.Alert) {
		fmt.Fprintf(errOut, "%s: %s\n", a.Title, a.Message)
	})
	changes := logger.WithComponent("changes")
	notifier.Subscribe(func(c notify.Change) {
		changes.WithField("viewport", c.Viewport).Debug("%s %s", c.Type, c.Path)
	})

	opts := []responsive.Option{
		responsive.WithLogger(logger.WithComponent("responsive")),
		responsive.WithNotifier(notifier),
	}
	if cfg.Cascade {
		opts = append(opts, responsive.WithResolver(responsive.Cascade))
	}

	return &App{
		Config:       cfg,
		Store:        store,
		Configurator: responsive.New(opts...),
		Notifier:     notifier,
		Logger:       logger,
		Out:          out,
		Err:          errOut,
	}, nil
}

// Save writes doc, optimizing it first when configured to.
func (a *App) Save(doc *document.Document) error {
	if a.Config.OptimizeOnSave {
		for id, paths := range doc.Optimize() {
			a.Logger.WithField("entity", id).Debug("optimized %d entries", len(paths))
		}
	}
	return a.Store.Save(doc)
}

// Execute runs the CLI.
func Execute(version string) error {
	provider := &AppProvider{
		Out: os.Stdout,
		Err: os.Stderr,
	}

	rootCmd := newRootCmd(provider)
	rootCmd.AddCommand(newVersionCmd(provider, version))
	err := rootCmd.Execute()

	if provider.app != nil {
		provider.app.Notifier.Close()
	}
	return err
}

// newRootCmd creates the root command with all subcommands.
func newRootCmd(provider *AppProvider) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stylebag",
		Short: "Read and write responsive style configuration",
		Long: `stylebag edits a styles document: a set of entities, each holding plugin
settings that are either flat or vary per breakpoint (xs, sm, md, lg, xl).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&provider.ConfigPath, "config", "", "Path to config file (default: user config dir)")
	rootCmd.PersistentFlags().StringVarP(&provider.DocumentPath, "document", "f", "", "Path to styles document (.toml, .json, .yaml)")
	rootCmd.PersistentFlags().StringVar(&provider.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&provider.Cascade, "cascade", false, "Fall back to narrower breakpoints on read")

	rootCmd.AddCommand(newGetCmd(provider))
	rootCmd.AddCommand(newSetCmd(provider))
	rootCmd.AddCommand(newOptimizeCmd(provider))
	rootCmd.AddCommand(newVisibilityCmd(provider))
	rootCmd.AddCommand(newListCmd(provider))
	rootCmd.AddCommand(newParseCmd(provider))
	rootCmd.AddCommand(newCalcCmd(provider))
	rootCmd.AddCommand(newColorCmd(provider))
	rootCmd.AddCommand(newWatchCmd(provider))

	return rootCmd
}

// pluginFlags addresses a plugin either directly or inside a component
// variation.
type pluginFlags struct {
	viewport  string
	component string
	variation string
}

func (f *pluginFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.viewport, "viewport", "v", "", "Breakpoint: xs, sm, md, lg, xl (empty for all)")
	cmd.Flags().StringVar(&f.component, "component", "", "Component name")
	cmd.Flags().StringVar(&f.variation, "variation", "", "Component variation name")
}

func (f *pluginFlags) breakpoint() (breakpoint.Breakpoint, error) {
	return breakpoint.Parse(f.viewport)
}

func (f *pluginFlags) plugin(s *responsive.StyleConfigurator, name string) (*responsive.PluginConfigurator, error) {
	if f.component == "" && f.variation == "" {
		return s.Plugin(name), nil
	}
	if f.component == "" || f.variation == "" {
		return nil, errors.New("--component and --variation must be given together")
	}
	return s.Component(f.component).Variation(f.variation).Plugin(name), nil
}
