package tpl

import (
	"sync"
)

type SafeMap[K comparable, V any] struct {
	Data sync.Map
}

func (m *SafeMap[K, V]) Clear() {
	m.Data = sync.Map{}
}

func (m *SafeMap[K, V]) Get(k K) (V, bool) {
	ret, ok := m.Data.Load(k)
	if ret == nil {
		var tmp V
		return tmp, ok
	}
	return ret.(V), ok
}

func (m *SafeMap[K, V]) Set(k K, v V) {
	m.Data.Store(k, v)
}

func (m *SafeMap[K, V]) Delete(k K) {
	m.Data.Delete(k)
}

func (m *SafeMap[K, V]) Has(k K) bool {
	_, ok := m.Data.Load(k)
	return ok
}

func (m *SafeMap[K, V]) Range(f func(k K, v V) bool) {
	m.Data.Range(func(key, value any) bool {
		return f(key.(K), value.(V))
	})
}

func (m *SafeMap[K, V]) Map() map[K]V {
	ret := make(map[K]V)
	m.Range(func(k K, v V) bool {
		ret[k] = v
		return true
	})
	return ret
}
