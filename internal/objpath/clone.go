package objpath

// Clone creates a deep copy of a value. Maps and lists are copied,
// everything else is shared.
func Clone(val any) any {
	if m, ok := AsMap(val); ok {
		return CloneMap(m)
	}

	switch v := val.(type) {
	case []any:
		return cloneSlice(v)
	default:
		return val
	}
}

// CloneMap creates a deep copy of a map.
func CloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	dst := make(map[string]any, len(src))
	for key, val := range src {
		dst[key] = Clone(val)
	}

	return dst
}

func cloneSlice(src []any) []any {
	if src == nil {
		return nil
	}

	dst := make([]any, len(src))
	for i, val := range src {
		dst[i] = Clone(val)
	}

	return dst
}

// DeepMerge recursively merges src into dst.
// Values in src override values in dst.
// Maps are merged recursively; other types are replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	if src == nil {
		return dst
	}

	for key, srcVal := range src {
		srcMap, srcIsMap := AsMap(srcVal)
		dstMap, dstIsMap := AsMap(dst[key])
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
		} else {
			dst[key] = Clone(srcVal)
		}
	}

	return dst
}

// Flatten flattens a nested map into a single-level map keyed by full path.
func Flatten(data map[string]any) map[string]any {
	result := make(map[string]any)
	flattenInto(data, "", result)
	return result
}

func flattenInto(data map[string]any, prefix string, result map[string]any) {
	for key, val := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + Separator + key
		}

		if nested, ok := AsMap(val); ok && len(nested) > 0 {
			flattenInto(nested, fullKey, result)
		} else {
			result[fullKey] = val
		}
	}
}

// Diff returns the flattened paths that differ between two maps.
func Diff(old, new map[string]any) (added, modified, removed []string) {
	oldFlat := Flatten(old)
	newFlat := Flatten(new)

	for path, newVal := range newFlat {
		if oldVal, exists := oldFlat[path]; exists {
			if !Equal(oldVal, newVal) {
				modified = append(modified, path)
			}
		} else {
			added = append(added, path)
		}
	}

	for path := range oldFlat {
		if _, exists := newFlat[path]; !exists {
			removed = append(removed, path)
		}
	}

	return added, modified, removed
}

// Equal compares two values structurally.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if ma, ok := AsMap(a); ok {
		mb, ok := AsMap(b)
		if !ok || len(ma) != len(mb) {
			return false
		}
		for k, x := range ma {
			y, ok := mb[k]
			if !ok || !Equal(x, y) {
				return false
			}
		}
		return true
	}

	switch va := a.(type) {
	case []any:
		vb, ok := b.([]any)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !Equal(va[i], vb[i]) {
				return false
			}
		}
		return true
	default:
		return comparableEqual(a, b)
	}
}
