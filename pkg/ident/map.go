package ident

// entry holds a value together with the original casing of the key it was
// stored under, so callers can recover how a name was spelled even though
// lookups are case-insensitive.
type entry[V any] struct {
	originalKey string
	value       V
}

// Map is a case-insensitive string-keyed map. Keys are folded with
// Normalize for storage and lookup, but the original spelling of the most
// recent Set for a given key is preserved and retrievable via
// GetOriginalKey. Map is not safe for concurrent use.
type Map[V any] struct {
	entries map[string]entry[V]
}

// NewMap creates an empty Map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{entries: make(map[string]entry[V])}
}

// NewMapWithCapacity creates an empty Map pre-sized for capacity entries.
func NewMapWithCapacity[V any](capacity int) *Map[V] {
	return &Map[V]{entries: make(map[string]entry[V], capacity)}
}

// Set stores val under name, overwriting any existing entry for the same
// name (case-insensitively). The original casing of name replaces any
// previously recorded spelling.
func (m *Map[V]) Set(name string, val V) {
	m.entries[Normalize(name)] = entry[V]{originalKey: name, value: val}
}

// SetIfAbsent stores val under name only if no entry already exists for
// that name. It returns true if the value was stored, false if an entry
// was already present.
func (m *Map[V]) SetIfAbsent(name string, val V) bool {
	key := Normalize(name)
	if _, ok := m.entries[key]; ok {
		return false
	}
	m.entries[key] = entry[V]{originalKey: name, value: val}
	return true
}

// Get retrieves the value stored under name, ignoring case.
func (m *Map[V]) Get(name string) (V, bool) {
	e, ok := m.entries[Normalize(name)]
	return e.value, ok
}

// Has reports whether name (case-insensitively) is present in the map.
func (m *Map[V]) Has(name string) bool {
	_, ok := m.entries[Normalize(name)]
	return ok
}

// GetOriginalKey returns the casing name was originally stored under, or
// "" if name is not present.
func (m *Map[V]) GetOriginalKey(name string) string {
	e, ok := m.entries[Normalize(name)]
	if !ok {
		return ""
	}
	return e.originalKey
}

// Delete removes the entry for name, if present, and reports whether an
// entry was removed.
func (m *Map[V]) Delete(name string) bool {
	key := Normalize(name)
	if _, ok := m.entries[key]; !ok {
		return false
	}
	delete(m.entries, key)
	return true
}

// Len returns the number of entries in the map.
func (m *Map[V]) Len() int {
	return len(m.entries)
}

// Keys returns the original-cased keys of every entry, in unspecified order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		keys = append(keys, e.originalKey)
	}
	return keys
}

// Range calls f for each entry in the map, in unspecified order, stopping
// early if f returns false.
func (m *Map[V]) Range(f func(key string, value V) bool) {
	for _, e := range m.entries {
		if !f(e.originalKey, e.value) {
			return
		}
	}
}

// Clear removes every entry from the map.
func (m *Map[V]) Clear() {
	m.entries = make(map[string]entry[V])
}

// Clone returns a shallow copy of the map: entries are copied but pointer
// or reference values within them are shared with the original.
func (m *Map[V]) Clone() *Map[V] {
	clone := NewMapWithCapacity[V](len(m.entries))
	for k, e := range m.entries {
		clone.entries[k] = e
	}
	return clone
}
