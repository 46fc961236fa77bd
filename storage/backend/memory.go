package backend

import (
	"context"
	"sync"
)

// Memory keeps the document in memory. Useful for tests.
type Memory struct {
	mu         sync.RWMutex
	doc        []byte
	defaultDoc []byte
	writes     int
}

var _ Backend = (*Memory)(nil)

func NewMemory(defaultDoc []byte) *Memory {
	return &Memory{defaultDoc: defaultDoc}
}

func (m *Memory) ReadAll(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.doc == nil {
		m.doc = append([]byte(nil), m.defaultDoc...)
	}
	return append([]byte(nil), m.doc...), nil
}

func (m *Memory) WriteAll(_ context.Context, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.doc = append([]byte(nil), doc...)
	m.writes++
	return nil
}

// Writes returns how many times the document was written.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
