package kv

import (
	"context"
	"sync"
)

// Memory is an in-process adapter. It backs tests and is handy for running
// the server without external storage during development.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string

	// FailPuts makes every Put return an error. Tests use it to simulate
	// an unavailable backend.
	FailPuts error
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *Memory) Put(_ context.Context, key, value string) error {
	if m.FailPuts != nil {
		return m.FailPuts
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
