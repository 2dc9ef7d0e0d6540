package score

import "sync"

// MemoryBackend keeps items in memory. Useful for tests and for hosts
// without a writable data directory.
type MemoryBackend struct {
	mu    sync.Mutex
	items map[string][]byte
}

func (m *MemoryBackend) LoadItem(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.items[name]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryBackend) SaveItem(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items == nil {
		m.items = make(map[string][]byte)
	}
	m.items[name] = append([]byte(nil), data...)
	return nil
}

var _ Backend = (*MemoryBackend)(nil)
