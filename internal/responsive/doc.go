// Package responsive stores and resolves per-breakpoint style
// configuration.
//
// A Bag maps plugin paths to configuration values. A value is either flat
// (it applies to every viewport) or responsive: a map keyed by breakpoint
// name. The classification is inferred from the key set on every read and
// write; nothing is cached on the bag.
//
//	bag := responsive.NewBag()
//	_ = responsive.Set(bag, "display", "block", breakpoint.XS)
//	_ = responsive.Set(bag, "display", "none", breakpoint.MD)
//	v, ok, _ := responsive.Get(bag, "display", breakpoint.MD) // "none", true
//
// Writes without a viewport (breakpoint.All) replace the whole entry.
// Reads return the exact viewport entry; there is no fallback to a
// narrower breakpoint unless a Cascade resolver is configured.
//
// # Configurator
//
// The fluent Configurator composes the resolver for host code that works
// with LocalStyles objects:
//
//	c := responsive.New(responsive.WithNotifier(n))
//	err := c.Style(ls).Component("button").Variation("primary").
//		Plugin("background").SetConfig(cfg, breakpoint.LG)
//
// # Optimization
//
// OptimizePluginConfig and Optimize collapse breakpoint entries that repeat
// the value of a narrower breakpoint. They are maintenance passes and are
// never run by Set.
package responsive
