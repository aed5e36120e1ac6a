package settings

import "strings"

// Document is a hierarchical key-value tree addressed by dotted paths, the
// in-memory form of one settings partition. Intermediate nodes are
// map[string]any; leaves are whatever JSON produced (string, float64, bool,
// nil, arrays, nested maps).
type Document map[string]any

// Get resolves a dotted path. The second return value reports whether the
// full path exists.
func (d Document) Get(key string) (any, bool) {
	parts := strings.Split(key, ".")
	var node any = map[string]any(d)

	for _, part := range parts {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[part]
		if !ok {
			return nil, false
		}
	}

	return node, true
}

// Set writes value at a dotted path, creating intermediate maps as needed.
// A non-map value sitting on an intermediate segment is overwritten.
func (d Document) Set(key string, value any) {
	parts := strings.Split(key, ".")
	node := map[string]any(d)

	for _, part := range parts[:len(parts)-1] {
		next, ok := node[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			node[part] = next
		}
		node = next
	}

	node[parts[len(parts)-1]] = value
}

// Has reports whether the full dotted path exists.
func (d Document) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Delete removes the leaf at a dotted path. Missing paths are a no-op;
// empty intermediate maps are left in place.
func (d Document) Delete(key string) {
	parts := strings.Split(key, ".")
	node := map[string]any(d)

	for _, part := range parts[:len(parts)-1] {
		next, ok := node[part].(map[string]any)
		if !ok {
			return
		}
		node = next
	}

	delete(node, parts[len(parts)-1])
}

// Section returns the named top-level section as a map, or nil if absent or
// not a map.
func (d Document) Section(name string) map[string]any {
	section, ok := d[name].(map[string]any)
	if !ok {
		return nil
	}
	return section
}

// mergeSection layers override on top of base one key deep. Nested maps are
// replaced wholesale, not recursed into.
func mergeSection(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
