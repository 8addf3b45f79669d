package storage

import (
	"context"
	"strings"
	"sync"
)

type object struct {
	data        []byte
	contentType string
}

// Memory keeps blobs in process memory. It backs local runs and tests.
type Memory struct {
	mu      sync.Mutex
	objects map[string]object
	baseURL string
}

func NewMemory(baseURL string) *Memory {
	return &Memory{objects: make(map[string]object), baseURL: strings.TrimRight(baseURL, "/")}
}

func (m *Memory) Upload(_ context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = object{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

// Remove deletes the given keys. Missing keys are ignored.
func (m *Memory) Remove(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.objects, k)
	}
	return nil
}

func (m *Memory) URL(key string) string {
	return m.baseURL + "/" + key
}

// Get returns a copy of the stored bytes and content type.
func (m *Memory) Get(key string) ([]byte, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.objects[key]
	if !ok {
		return nil, "", false
	}
	return append([]byte(nil), o.data...), o.contentType, true
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
