package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
)

// ErrBlobNotFound reports a Fetch for an object the store does not hold.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is the file collaborator consumed by the document sub-resource
// manager: Store persists bytes under a caller-chosen key and returns the URL
// recorded in case metadata; Fetch streams a stored object back by that URL;
// Delete tolerates an already-missing target.
type BlobStore interface {
	Store(ctx context.Context, key string, r io.Reader, size int64, contentType string) (url string, err error)
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
	Delete(ctx context.Context, url string) error
}

// MemoryBlobStore keeps blobs in a map; used by unit tests.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

func (m *MemoryBlobStore) Store(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	url := "/uploads/" + key
	m.blobs[url] = b
	return url, nil
}

func (m *MemoryBlobStore) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[url]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *MemoryBlobStore) Delete(ctx context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, url)
	return nil
}

// Get returns the stored bytes, for test assertions.
func (m *MemoryBlobStore) Get(url string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[url]
	return b, ok
}
