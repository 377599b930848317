// Package merge implements the null-aware partial overlay used to fold
// incoming payment snapshots into the locally known one. A field the
// incoming record omits, or sends as null, never erases a previously known
// value.
package merge

// Overlay returns incoming when it carries a value, otherwise current. A nil
// incoming pointer models both "absent" and JSON null.
func Overlay[T any](current, incoming *T) *T {
	if incoming != nil {
		return incoming
	}
	return current
}

// Flat merges two flat key-value records. Keys present in incoming with a
// non-nil value overwrite; nil values and missing keys preserve current.
// exclude names keys that the caller merges with dedicated sub-rules.
//
// Recursion is deliberately not applied here: callers recurse explicitly at
// each known nesting boundary. The result is always a fresh map; neither
// input is mutated.
func Flat(current, incoming map[string]any, exclude ...string) map[string]any {
	if current == nil {
		if incoming == nil {
			return nil
		}
		out := make(map[string]any, len(incoming))
		for k, v := range incoming {
			out[k] = v
		}
		return out
	}

	skip := make(map[string]struct{}, len(exclude))
	for _, k := range exclude {
		skip[k] = struct{}{}
	}

	out := make(map[string]any, len(current)+len(incoming))
	for k, v := range current {
		out[k] = v
	}
	for k, v := range incoming {
		if _, excluded := skip[k]; excluded {
			continue
		}
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}
