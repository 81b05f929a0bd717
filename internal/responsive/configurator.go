package responsive

import (
	"regexp"
	"sort"

	"github.com/dshills/stylebag/internal/breakpoint"
	"github.com/dshills/stylebag/internal/idgen"
	"github.com/dshills/stylebag/internal/logging"
	"github.com/dshills/stylebag/internal/notify"
	"github.com/dshills/stylebag/internal/objpath"
)

// ComponentsRoot is the first path segment of component-scoped plugins.
const ComponentsRoot = "components"

const changeSource = "configurator"

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_]*$`)

// Configurator reads and writes style configuration for host code.
// It holds no per-bag state and may be shared.
type Configurator struct {
	logger   *logging.Logger
	notifier *notify.Notifier
	ids      idgen.Generator
	resolver Resolver
}

// Option configures a Configurator.
type Option func(*Configurator)

// WithLogger sets the logger. Defaults to logging.Default().
func WithLogger(l *logging.Logger) Option {
	return func(c *Configurator) {
		c.logger = l
	}
}

// WithNotifier publishes every write and routes visibility alerts to n.
func WithNotifier(n *notify.Notifier) Option {
	return func(c *Configurator) {
		c.notifier = n
	}
}

// WithIDGenerator sets the generator of bag keys.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(c *Configurator) {
		if gen != nil {
			c.ids = gen
		}
	}
}

// WithResolver sets how responsive values are read. Defaults to ExactMatch.
func WithResolver(r Resolver) Option {
	return func(c *Configurator) {
		if r != nil {
			c.resolver = r
		}
	}
}

// New creates a Configurator.
func New(opts ...Option) *Configurator {
	c := &Configurator{
		ids:      idgen.NewRandom(),
		resolver: ExactMatch,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultConfigurator = New()

func (c *Configurator) log() *logging.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.Default().WithComponent("responsive")
}

// OptimizeProperty optimizes the configuration at key and publishes an
// optimize change when entries were dropped.
func (c *Configurator) OptimizeProperty(bag Bag, key string) error {
	if bag == nil {
		return invalidArgument("bag is required")
	}
	if err := checkPlugin(key); err != nil {
		return err
	}
	if change, ok := c.optimize(bag, key); ok && c.notifier != nil {
		c.notifier.Notify(change)
	}
	return nil
}

// Optimize optimizes every responsive configuration in bag and returns
// the rewritten paths in sorted order. Observers are told about the
// changes together once the whole bag has been optimized.
func (c *Configurator) Optimize(bag Bag) []string {
	var batch *notify.Batch
	if c.notifier != nil {
		batch = c.notifier.NewBatch()
	}

	var changed []string
	walkResponsive(bag, "", func(path string) {
		change, ok := c.optimize(bag, path)
		if !ok {
			return
		}
		changed = append(changed, path)
		if batch != nil {
			batch.Add(change)
		}
	})

	if batch != nil && batch.Len() > 0 {
		batch.Commit()
	}
	sort.Strings(changed)
	return changed
}

// optimize rewrites the value at key and describes the change.
func (c *Configurator) optimize(bag Bag, key string) (notify.Change, bool) {
	old, _ := objpath.GetAt(bag, key)
	if !optimizeAt(bag, key) {
		return notify.Change{}, false
	}

	c.log().WithField("plugin", key).Debug("optimized")
	now, _ := objpath.GetAt(bag, key)
	return notify.Change{
		Path:     key,
		Type:     notify.ChangeOptimize,
		OldValue: old,
		NewValue: now,
		Source:   changeSource,
	}, true
}

// Style returns the fluent configurator for ls.
func Style(ls *LocalStyles) *StyleConfigurator {
	return defaultConfigurator.Style(ls)
}

// Style returns the fluent configurator for ls.
func (c *Configurator) Style(ls *LocalStyles) *StyleConfigurator {
	return &StyleConfigurator{c: c, ls: ls}
}

// StyleConfigurator addresses the plugins of one LocalStyles object.
type StyleConfigurator struct {
	c  *Configurator
	ls *LocalStyles
}

// Plugin addresses a top-level plugin. The name may be a slash-separated path.
func (s *StyleConfigurator) Plugin(name string) *PluginConfigurator {
	return &PluginConfigurator{c: s.c, ls: s.ls, path: name, err: checkPlugin(name)}
}

// Component addresses the plugins of a component.
func (s *StyleConfigurator) Component(name string) *ComponentConfigurator {
	return &ComponentConfigurator{s: s, name: name, err: checkName("component", name)}
}

// Visibility sets the display state at vp through the visibility guard,
// alerting the configurator's notifier on rejection.
func (s *StyleConfigurator) Visibility(d Display, vp breakpoint.Breakpoint) (bool, error) {
	var alerter Alerter
	if s.c.notifier != nil {
		alerter = s.c.notifier
	}
	return s.c.setVisibility(s.ls, d, vp, alerter)
}

// ComponentConfigurator addresses one component.
type ComponentConfigurator struct {
	s    *StyleConfigurator
	name string
	err  error
}

// Variation addresses a variation of the component.
func (cc *ComponentConfigurator) Variation(name string) *VariationConfigurator {
	err := cc.err
	if err == nil {
		err = checkName("variation", name)
	}
	return &VariationConfigurator{cc: cc, name: name, err: err}
}

// VariationConfigurator addresses one component variation.
type VariationConfigurator struct {
	cc   *ComponentConfigurator
	name string
	err  error
}

// Plugin addresses a plugin of the variation, stored at
// components/<component>/<variation>/<plugin>.
func (vc *VariationConfigurator) Plugin(name string) *PluginConfigurator {
	err := vc.err
	if err == nil {
		err = checkName("plugin", name)
	}
	s := vc.cc.s
	return &PluginConfigurator{
		c:    s.c,
		ls:   s.ls,
		path: objpath.Join(ComponentsRoot, vc.cc.name, vc.name, name),
		err:  err,
	}
}

// PluginConfigurator reads and writes one plugin configuration. Errors from
// building the path are returned by its methods.
type PluginConfigurator struct {
	c    *Configurator
	ls   *LocalStyles
	path string
	err  error
}

// Path returns the store path of the plugin.
func (p *PluginConfigurator) Path() string {
	return p.path
}

// Err returns the error recorded while building the configurator, if any.
func (p *PluginConfigurator) Err() error {
	return p.err
}

// GetConfig returns the configuration for vp.
func (p *PluginConfigurator) GetConfig(vp breakpoint.Breakpoint) (any, bool, error) {
	if p.err != nil {
		return nil, false, p.err
	}
	return p.c.GetLocal(p.ls, p.path, vp)
}

// SetConfig writes the configuration for vp, or for every viewport when vp
// is breakpoint.All.
func (p *PluginConfigurator) SetConfig(value any, vp breakpoint.Breakpoint) error {
	if p.err != nil {
		return p.err
	}
	return p.c.SetLocal(p.ls, p.path, value, vp)
}

// Optimize collapses redundant breakpoint entries of the configuration.
func (p *PluginConfigurator) Optimize() error {
	if p.err != nil {
		return p.err
	}
	if p.ls == nil {
		return invalidArgument("local styles are required")
	}
	if p.ls.Instance == nil {
		return nil
	}
	return p.c.OptimizeProperty(p.ls.Instance, p.path)
}

func checkName(field, name string) error {
	if name == "" || !namePattern.MatchString(name) {
		return &NameError{Field: field, Value: name}
	}
	return nil
}
