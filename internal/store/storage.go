package store

import "errors"

// ErrNotFound is returned by Storage.Load when no collection has been saved
// yet.
var ErrNotFound = errors.New("store: no saved collection")

// Storage is the durable key-value entry holding the serialized library.
// Implementations persist a single blob under a fixed key; the blob is the
// JSON array of Book records.
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// MemoryStorage is a Storage implementation backed by a byte slice, used in
// tests and when running without a data directory.
type MemoryStorage struct {
	data []byte
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Load returns the stored blob, or ErrNotFound if nothing has been saved.
func (m *MemoryStorage) Load() ([]byte, error) {
	if m.data == nil {
		return nil, ErrNotFound
	}
	return m.data, nil
}

// Save replaces the stored blob.
func (m *MemoryStorage) Save(data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}
