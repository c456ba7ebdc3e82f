package reconcile

import (
	"sort"
	"strconv"
)

// Separator joins path segments into a Key.
const Separator = "."

// Flatten converts nested resource data into a flat bundle.
//
// Nested map keys are joined with "." and slice indices become segments.
// Empty maps and slices produce nothing. Map keys are visited in sorted order,
// so when two paths flatten to the same Key (e.g. {"a.b": 1} and
// {"a": {"b": 2}}) the later one in that order wins. Such keys are returned
// as collisions so the caller can warn about them.
func Flatten(data map[string]any) (ResourceBundle, []Key) {
	bundle := make(ResourceBundle)
	var collisions []Key

	var walk func(path string, val any)
	walk = func(path string, val any) {
		switch v := val.(type) {
		case map[string]any:
			for _, k := range sortedKeys(v) {
				walk(joinPath(path, k), v[k])
			}
		case map[string]string:
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				walk(joinPath(path, k), v[k])
			}
		case []any:
			for i, item := range v {
				walk(joinPath(path, strconv.Itoa(i)), item)
			}
		case []string:
			for i, item := range v {
				walk(joinPath(path, strconv.Itoa(i)), item)
			}
		default:
			key := Key(path)
			if _, exists := bundle[key]; exists {
				collisions = append(collisions, key)
			}
			bundle[key] = v
		}
	}

	for _, k := range sortedKeys(data) {
		walk(k, data[k])
	}

	return bundle, collisions
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + Separator + segment
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
