package responsive

import (
	"github.com/dshills/stylebag/internal/breakpoint"
	"github.com/dshills/stylebag/internal/objpath"
)

// Resolver picks the value of a responsive configuration for a viewport.
type Resolver interface {
	Resolve(values map[string]any, vp breakpoint.Breakpoint) (any, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(values map[string]any, vp breakpoint.Breakpoint) (any, bool)

// Resolve calls f.
func (f ResolverFunc) Resolve(values map[string]any, vp breakpoint.Breakpoint) (any, bool) {
	return f(values, vp)
}

// ExactMatch returns only the entry stored for the viewport itself.
var ExactMatch Resolver = ResolverFunc(func(values map[string]any, vp breakpoint.Breakpoint) (any, bool) {
	v, ok := values[string(vp)]
	return v, ok
})

// Cascade falls back to the closest narrower breakpoint that has an entry.
var Cascade Resolver = ResolverFunc(func(values map[string]any, vp breakpoint.Breakpoint) (any, bool) {
	for bp, ok := vp, true; ok; bp, ok = bp.Narrower() {
		if v, found := values[string(bp)]; found {
			return v, true
		}
	}
	return nil, false
})

// IsResponsive reports whether v is a per-breakpoint map, that is a map
// with at least one breakpoint name among its keys.
func IsResponsive(v any) bool {
	m, ok := objpath.AsMap(v)
	if !ok {
		return false
	}
	for k := range m {
		if breakpoint.Is(k) {
			return true
		}
	}
	return false
}

// Get returns the configuration stored at plugin for viewport vp using the
// default configurator. See Configurator.Get.
func Get(bag Bag, plugin string, vp breakpoint.Breakpoint) (any, bool, error) {
	return defaultConfigurator.Get(bag, plugin, vp)
}

// Set writes the configuration at plugin for viewport vp using the
// default configurator. See Configurator.Set.
func Set(bag Bag, plugin string, value any, vp breakpoint.Breakpoint) error {
	return defaultConfigurator.Set(bag, plugin, value, vp)
}

// GetLocal is Get on the bag held by ls.
func GetLocal(ls *LocalStyles, plugin string, vp breakpoint.Breakpoint) (any, bool, error) {
	return defaultConfigurator.GetLocal(ls, plugin, vp)
}

// SetLocal is Set on the bag held by ls, creating it if absent.
func SetLocal(ls *LocalStyles, plugin string, value any, vp breakpoint.Breakpoint) error {
	return defaultConfigurator.SetLocal(ls, plugin, value, vp)
}

// Get returns the configuration stored at plugin for viewport vp.
//
// The boolean is false when nothing is configured. An empty viewport reads
// breakpoint.Default. Flat values are returned whatever the viewport.
func (c *Configurator) Get(bag Bag, plugin string, vp breakpoint.Breakpoint) (any, bool, error) {
	if bag == nil {
		return nil, false, invalidArgument("bag is required")
	}
	return c.lookup(bag, plugin, vp)
}

// lookup resolves plugin in bag, which may be nil.
func (c *Configurator) lookup(bag Bag, plugin string, vp breakpoint.Breakpoint) (any, bool, error) {
	if err := checkPlugin(plugin); err != nil {
		return nil, false, err
	}
	if vp == breakpoint.All {
		vp = breakpoint.Default
	} else if !vp.Valid() {
		return nil, false, invalidArgument("unknown viewport %q", string(vp))
	}

	val, ok := objpath.GetAt(bag, plugin)
	if !ok {
		return nil, false, nil
	}

	if IsResponsive(val) {
		m, _ := objpath.AsMap(val)
		v, found := c.resolver.Resolve(m, vp)
		return v, found, nil
	}
	return val, true, nil
}

// Set writes value at plugin.
//
// With a viewport, only that breakpoint's entry changes and the other
// breakpoints are kept. With breakpoint.All the whole entry is replaced.
// A nil value clears the configuration. Undefined is rejected. The bag key
// is assigned if missing and empty containers are pruned afterwards.
func (c *Configurator) Set(bag Bag, plugin string, value any, vp breakpoint.Breakpoint) error {
	if bag == nil {
		return invalidArgument("bag is required")
	}
	if err := checkPlugin(plugin); err != nil {
		return err
	}
	if isUndefined(value) {
		return invalidArgument("value for %q is undefined", plugin)
	}
	if vp != breakpoint.All && !vp.Valid() {
		return invalidArgument("unknown viewport %q", string(vp))
	}

	current, _ := objpath.GetAt(bag, plugin)
	old := objpath.Clone(current)

	objpath.SetValue(bag, plugin, nextValue(current, value, vp))
	bag.EnsureKey(c.ids)
	objpath.Cleanup(bag, true, true)

	c.log().WithField("plugin", plugin).WithField("viewport", vp.String()).Debug("set %v", value)
	if c.notifier != nil {
		c.notifier.NotifySet(plugin, string(vp), old, value, changeSource)
	}
	return nil
}

// GetLocal is Get on the bag held by ls. A missing bag reads as empty and
// is not created.
func (c *Configurator) GetLocal(ls *LocalStyles, plugin string, vp breakpoint.Breakpoint) (any, bool, error) {
	if ls == nil {
		return nil, false, invalidArgument("local styles are required")
	}
	return c.lookup(ls.Instance, plugin, vp)
}

// SetLocal is Set on the bag held by ls, creating it if absent.
func (c *Configurator) SetLocal(ls *LocalStyles, plugin string, value any, vp breakpoint.Breakpoint) error {
	if ls == nil {
		return invalidArgument("local styles are required")
	}
	return c.Set(ls.bag(), plugin, value, vp)
}

// nextValue computes what Set stores at a plugin path without touching
// current. A flat current value is dropped when a single viewport is
// written so a flat map can never be mistaken for a responsive one.
func nextValue(current, value any, vp breakpoint.Breakpoint) any {
	if vp == breakpoint.All {
		return value
	}

	next := make(map[string]any)
	if IsResponsive(current) {
		m, _ := objpath.AsMap(current)
		for k, v := range m {
			next[k] = v
		}
	}
	next[string(vp)] = value
	return next
}

func checkPlugin(plugin string) error {
	parts := objpath.Split(plugin)
	if len(parts) == 0 {
		return invalidArgument("plugin name is required")
	}
	if parts[0] == KeyField {
		return invalidArgument("plugin name %q is reserved", KeyField)
	}
	return nil
}
