package assets

import (
	"sort"

	"github.com/spaghettifunk/stratum/engine/core"
)

// Manager is a named cache of assets of one type with an optional default
// returned for missing names. It is not safe for concurrent use; the asset
// caches belong to the main thread.
type Manager[T any] struct {
	kind         string
	assets       map[string]T
	defaultAsset T
	hasDefault   bool
}

func NewManager[T any](kind string) *Manager[T] {
	return &Manager[T]{
		kind:   kind,
		assets: make(map[string]T),
	}
}

// Attach stores asset under name and returns the asset it replaced, if any.
func (m *Manager[T]) Attach(name string, asset T) (T, bool) {
	previous, replaced := m.assets[name]
	m.assets[name] = asset
	if replaced {
		core.LogDebug("%s '%s' replaced", m.kind, name)
	}
	return previous, replaced
}

func (m *Manager[T]) SetDefault(asset T) {
	m.defaultAsset = asset
	m.hasDefault = true
}

func (m *Manager[T]) Default() (T, bool) {
	return m.defaultAsset, m.hasDefault
}

// Get returns the named asset, or the default one when the name is unknown.
// The boolean reports whether the name itself was found.
func (m *Manager[T]) Get(name string) (T, bool) {
	if asset, ok := m.assets[name]; ok {
		return asset, true
	}
	return m.defaultAsset, false
}

func (m *Manager[T]) Has(name string) bool {
	_, ok := m.assets[name]
	return ok
}

// Remove drops the named asset and returns it.
func (m *Manager[T]) Remove(name string) (T, bool) {
	asset, ok := m.assets[name]
	if ok {
		delete(m.assets, name)
	}
	return asset, ok
}

// Names returns the attached names in sorted order.
func (m *Manager[T]) Names() []string {
	names := make([]string, 0, len(m.assets))
	for name := range m.assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manager[T]) Len() int {
	return len(m.assets)
}

// Clear calls release on every attached asset and the default one, then
// empties the cache.
func (m *Manager[T]) Clear(release func(name string, asset T)) {
	if release != nil {
		for _, name := range m.Names() {
			release(name, m.assets[name])
		}
		if m.hasDefault {
			release("default", m.defaultAsset)
		}
	}
	clear(m.assets)
	var zero T
	m.defaultAsset = zero
	m.hasDefault = false
}
