// Package metastore provides document stores for annotation groups and
// connection metadata.
package metastore

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/leapstack-labs/leapmodel/pkg/core"
)

// MemoryStore is an in-process DocumentStore.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[core.Namespace]map[string][]byte
}

var _ core.DocumentStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[core.Namespace]map[string][]byte)}
}

// Put stores a copy of doc.
func (s *MemoryStore) Put(_ context.Context, ns core.Namespace, name string, doc []byte) error {
	if name == "" {
		return fmt.Errorf("%w: document name is required", core.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs[ns] == nil {
		s.docs[ns] = make(map[string][]byte)
	}
	s.docs[ns][name] = bytes.Clone(doc)
	return nil
}

// Get returns a copy of the stored document.
func (s *MemoryStore) Get(_ context.Context, ns core.Namespace, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[ns][name]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", core.ErrNotFound, ns, name)
	}
	return bytes.Clone(doc), nil
}

// List returns the names in ns, sorted.
func (s *MemoryStore) List(_ context.Context, ns core.Namespace) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.docs[ns]))
	for name := range s.docs[ns] {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes a document if present.
func (s *MemoryStore) Delete(_ context.Context, ns core.Namespace, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs[ns], name)
	return nil
}
