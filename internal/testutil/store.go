package testutil

import (
	"context"
	"sync"

	"github.com/localnerve/shopfloor/internal/storage"
)

// MemoryStore is an in-memory storage.Store
type MemoryStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Deleted []string
	Uploads int
	// FailUpload, when set, is returned by Upload
	FailUpload error
}

var _ storage.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Objects: make(map[string][]byte)}
}

// Upload implements storage.Store
func (m *MemoryStore) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Uploads++
	if m.FailUpload != nil {
		return "", m.FailUpload
	}
	m.Objects[name] = append([]byte(nil), data...)
	return "https://files.example.com/" + name, nil
}

// Delete implements storage.Store
func (m *MemoryStore) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.Objects, name)
	m.Deleted = append(m.Deleted, name)
	return nil
}

// Ping implements storage.Store
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Name implements storage.Store
func (m *MemoryStore) Name() string {
	return "memory"
}
