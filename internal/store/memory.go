package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store. It is safe for concurrent use.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

type memCollection struct {
	order []string
	docs  map[string]json.RawMessage
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	m := &MemoryStore{collections: make(map[string]*memCollection, len(Collections))}
	for _, c := range Collections {
		m.collections[c] = &memCollection{docs: make(map[string]json.RawMessage)}
	}
	return m
}

func (m *MemoryStore) collection(name string) (*memCollection, error) {
	if err := checkCollection(name); err != nil {
		return nil, err
	}
	return m.collections[name], nil
}

func (m *MemoryStore) GetAll(_ context.Context, collection string) ([]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, err := m.collection(collection)
	if err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, cloneRaw(c.docs[id]))
	}
	return out, nil
}

func (m *MemoryStore) Get(_ context.Context, collection, id string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, err := m.collection(collection)
	if err != nil {
		return nil, err
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", collection, id, ErrNotFound)
	}
	return cloneRaw(doc), nil
}

func (m *MemoryStore) Put(_ context.Context, collection, id string, value any) error {
	data, err := encode(value)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", collection, id, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.collection(collection)
	if err != nil {
		return err
	}
	if _, ok := c.docs[id]; !ok {
		c.order = append(c.order, id)
	}
	c.docs[id] = cloneRaw(data)
	return nil
}

func (m *MemoryStore) Add(_ context.Context, collection, id string, value any) error {
	data, err := encode(value)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", collection, id, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.collection(collection)
	if err != nil {
		return err
	}
	if _, ok := c.docs[id]; ok {
		return fmt.Errorf("%s %s: %w", collection, id, ErrExists)
	}
	c.order = append(c.order, id)
	c.docs[id] = cloneRaw(data)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.collection(collection)
	if err != nil {
		return err
	}
	if _, ok := c.docs[id]; !ok {
		return nil
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, collection string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.collection(collection)
	if err != nil {
		return err
	}
	c.order = nil
	c.docs = make(map[string]json.RawMessage)
	return nil
}

// InTx runs fn against m and restores the previous contents if fn fails.
// Writers outside fn are not isolated from it.
func (m *MemoryStore) InTx(_ context.Context, fn func(Store) error) error {
	m.mu.RLock()
	saved := make(map[string]*memCollection, len(m.collections))
	for name, c := range m.collections {
		docs := make(map[string]json.RawMessage, len(c.docs))
		for id, doc := range c.docs {
			docs[id] = doc
		}
		saved[name] = &memCollection{order: append([]string(nil), c.order...), docs: docs}
	}
	m.mu.RUnlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.collections = saved
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}
