package checkout

import "context"

// Store is the persistence boundary for checkout sessions: a key-value
// store of opaque JSON blobs. A missing key yields ok=false from Load, not
// an error.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, blob []byte) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore is a map-backed Store for library embedding and tests. The
// engine is single-session and synchronous, so no locking is needed.
type MemoryStore struct {
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	blob, ok := m.blobs[key]
	return blob, ok, nil
}

func (m *MemoryStore) Save(_ context.Context, key string, blob []byte) error {
	m.blobs[key] = blob
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	delete(m.blobs, key)
	return nil
}
