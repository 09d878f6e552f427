package util

import "sync"

// RWMap is a string to unix-timestamp map safe for concurrent use.
type RWMap struct {
	sync.RWMutex
	m map[string]int64
}

func NewRWMap() *RWMap {
	return &RWMap{
		m: make(map[string]int64, 0),
	}
}

func (m *RWMap) Get(k string) (int64, bool) {
	m.RLock()
	defer m.RUnlock()
	v, existed := m.m[k]
	return v, existed
}

func (m *RWMap) Set(k string, v int64) {
	m.Lock()
	defer m.Unlock()
	m.m[k] = v
}

func (m *RWMap) Len() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.m)
}

// Prune drops every entry stamped before ts.
func (m *RWMap) Prune(ts int64) {
	m.Lock()
	defer m.Unlock()
	for k, v := range m.m {
		if v < ts {
			delete(m.m, k)
		}
	}
}
