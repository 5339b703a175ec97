// pkg/config/merge.go
package config

import (
	"sort"

	"github.com/knadh/koanf/maps"
)

// pathDelim joins key paths while flattening. Keys in YAML documents may
// contain dots, so merging never splits on a printable character.
const pathDelim = "\x00"

// leaf is one non-map value of a nested document and the keys leading to it.
type leaf struct {
	path  []string
	value any
}

// leaves lists the values of m by key path, sorted by path. Empty nested
// maps hold no values and are skipped.
func leaves(m map[string]any) []leaf {
	flat, paths := maps.Flatten(m, nil, pathDelim)
	keys := make([]string, 0, len(flat))
	for key, val := range flat {
		if sub, ok := val.(map[string]any); ok && len(sub) == 0 {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]leaf, 0, len(keys))
	for _, key := range keys {
		out = append(out, leaf{path: paths[key], value: flat[key]})
	}
	return out
}

// Merge overlays patch onto base leaf by leaf and returns a new document.
// Patch values win and keys missing from patch are kept as they are. The only
// base values dropped are those whose position the patch turns into (or out
// of) a subtree. An empty nested map in patch changes nothing.
func Merge(base, patch map[string]any) map[string]any {
	out := maps.Copy(base)
	if out == nil {
		out = make(map[string]any)
	}
	for _, l := range leaves(patch) {
		setPath(out, l.path, l.value)
	}
	return out
}

// setPath stores val under path, replacing any non-map value found on the way.
func setPath(m map[string]any, path []string, val any) {
	cur := m
	for _, key := range path[:len(path)-1] {
		next, ok := cur[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[key] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = val
}
