package responsive

import (
	"sort"

	"github.com/dshills/stylebag/internal/breakpoint"
	"github.com/dshills/stylebag/internal/objpath"
)

// OptimizePluginConfig returns cfg with redundant breakpoint entries removed.
//
// Breakpoints are walked narrowest first. A property whose value is the
// same as the last value seen for it at a narrower breakpoint is dropped,
// and breakpoints left with nothing are removed. A breakpoint entry that is
// not a map is treated as one unnamed property.
//
// "Same" is identity, not structure: two distinct maps with equal contents
// are both kept. cfg is not modified; leaf values are shared with the result.
func OptimizePluginConfig(cfg map[string]any) map[string]any {
	if cfg == nil {
		return nil
	}

	out := make(map[string]any, len(cfg))
	for k, v := range cfg {
		out[k] = v
	}

	lastSeen := make(map[string]any)
	var lastScalar any
	var seenScalar bool

	for _, bp := range breakpoint.Ordered() {
		raw, ok := out[string(bp)]
		if !ok {
			continue
		}

		props, isMap := objpath.AsMap(raw)
		if !isMap {
			if seenScalar && objpath.Same(lastScalar, raw) {
				delete(out, string(bp))
			} else {
				lastScalar, seenScalar = raw, true
			}
			continue
		}

		kept := make(map[string]any, len(props))
		for name, val := range props {
			if prev, seen := lastSeen[name]; seen && objpath.Same(prev, val) {
				continue
			}
			lastSeen[name] = val
			kept[name] = val
		}

		if len(kept) == 0 {
			delete(out, string(bp))
		} else {
			out[string(bp)] = kept
		}
	}

	return out
}

// OptimizeProperty optimizes the responsive configuration stored at key.
// Flat and absent values are left alone.
func OptimizeProperty(bag Bag, key string) error {
	if bag == nil {
		return invalidArgument("bag is required")
	}
	if err := checkPlugin(key); err != nil {
		return err
	}
	optimizeAt(bag, key)
	return nil
}

// Optimize runs OptimizeProperty over every responsive configuration in bag,
// including those nested under component paths, and returns the paths that
// changed in sorted order.
func Optimize(bag Bag) []string {
	var changed []string
	walkResponsive(bag, "", func(path string) {
		if optimizeAt(bag, path) {
			changed = append(changed, path)
		}
	})
	sort.Strings(changed)
	return changed
}

// optimizeAt optimizes the value at path and reports whether anything was
// dropped.
func optimizeAt(bag Bag, path string) bool {
	val, ok := objpath.GetAt(bag, path)
	if !ok || !IsResponsive(val) {
		return false
	}

	before, _ := objpath.AsMap(val)
	after := OptimizePluginConfig(before)
	if entryCount(after) == entryCount(before) {
		return false
	}

	if len(after) == 0 {
		objpath.DeleteAt(bag, path)
	} else {
		objpath.SetValue(bag, path, after)
	}
	return true
}

// walkResponsive calls fn with the path of every responsive value below m.
// Non-responsive maps are descended into.
func walkResponsive(m map[string]any, prefix string, fn func(path string)) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if prefix == "" && k == KeyField {
			continue
		}
		path := k
		if prefix != "" {
			path = objpath.Join(prefix, k)
		}

		if IsResponsive(m[k]) {
			fn(path)
		} else if nested, ok := objpath.AsMap(m[k]); ok {
			walkResponsive(nested, path, fn)
		}
	}
}

// entryCount counts breakpoint entries and the properties inside them.
func entryCount(cfg map[string]any) int {
	n := 0
	for _, bp := range breakpoint.Ordered() {
		raw, ok := cfg[string(bp)]
		if !ok {
			continue
		}
		n++
		if props, isMap := objpath.AsMap(raw); isMap {
			n += len(props)
		}
	}
	return n
}
