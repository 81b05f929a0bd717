// Package objpath reads and writes values inside nested maps using
// slash-separated paths such as "components/button/primary/background".
//
// Maps are map[string]any, or a named type over it, and lists are []any.
// Normalize brings decoded data into that shape.
package objpath

import "strings"

// Separator delimits path segments.
const Separator = "/"

// Split breaks a path into its segments, ignoring empty segments.
func Split(path string) []string {
	raw := strings.Split(path, Separator)
	parts := raw[:0]
	for _, p := range raw {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// Join builds a path from segments.
func Join(parts ...string) string {
	return strings.Join(parts, Separator)
}

// GetAt retrieves a value from a nested map.
func GetAt(data map[string]any, path string) (any, bool) {
	if data == nil {
		return nil, false
	}

	parts := Split(path)
	if len(parts) == 0 {
		return nil, false
	}
	current := any(data)

	for _, part := range parts {
		m, ok := AsMap(current)
		if !ok {
			return nil, false
		}

		val, exists := m[part]
		if !exists {
			return nil, false
		}

		current = val
	}

	return current, true
}

// SetValue sets a value in a nested map, creating intermediate maps as
// needed. Non-map intermediates are replaced.
func SetValue(data map[string]any, path string, value any) {
	if data == nil {
		return
	}

	parts := Split(path)
	if len(parts) == 0 {
		return
	}
	current := data

	for _, part := range parts[:len(parts)-1] {
		if next, ok := AsMap(current[part]); ok {
			current = next
		} else {
			next := make(map[string]any)
			current[part] = next
			current = next
		}
	}

	current[parts[len(parts)-1]] = value
}

// DeleteAt removes a value from a nested map.
// Returns true if the value was found and deleted.
func DeleteAt(data map[string]any, path string) bool {
	if data == nil {
		return false
	}

	parts := Split(path)
	if len(parts) == 0 {
		return false
	}
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := AsMap(current[part])
		if !ok {
			return false
		}
		current = next
	}

	key := parts[len(parts)-1]
	if _, exists := current[key]; exists {
		delete(current, key)
		return true
	}

	return false
}

// Cleanup removes nil entries from data in place, walking nested maps and
// the maps held inside lists. With removeEmptyObjects, maps left empty are
// removed from their parent; with removeEmptyArrays, empty lists are too.
// The root map itself is never removed.
func Cleanup(data map[string]any, removeEmptyObjects, removeEmptyArrays bool) {
	for key, val := range data {
		if prune(val, removeEmptyObjects, removeEmptyArrays) {
			delete(data, key)
		}
	}
}

// prune cleans val and reports whether it should be removed from its parent.
func prune(val any, removeEmptyObjects, removeEmptyArrays bool) bool {
	if m, ok := AsMap(val); ok {
		Cleanup(m, removeEmptyObjects, removeEmptyArrays)
		return removeEmptyObjects && len(m) == 0
	}

	switch v := val.(type) {
	case nil:
		return true
	case []any:
		for _, item := range v {
			if m, ok := AsMap(item); ok {
				Cleanup(m, removeEmptyObjects, removeEmptyArrays)
			}
		}
		return removeEmptyArrays && len(v) == 0
	default:
		return false
	}
}
