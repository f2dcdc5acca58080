package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// booksKey is the single entry holding the JSON-serialized book collection.
const booksKey = "library:books"

// BadgerStorage persists the collection in an embedded Badger database so the
// library survives restarts.
type BadgerStorage struct {
	db *badger.DB
}

// OpenBadgerStorage opens (or creates) the database at path.
func OpenBadgerStorage(path string) (*BadgerStorage, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil      // Disable Badger's internal logging
	opts.SyncWrites = true // Sync writes to disk to prevent corruption on crashes

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &BadgerStorage{db: db}, nil
}

// Load returns the saved collection blob, or ErrNotFound if none exists.
func (s *BadgerStorage) Load() ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(booksKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	return data, nil
}

// Save overwrites the collection blob.
func (s *BadgerStorage) Save(data []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(booksKey), data)
	})
	if err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *BadgerStorage) Close() error {
	return s.db.Close()
}
