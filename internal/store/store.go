package store

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"biblio-ai/backend/internal/model"

	"github.com/google/uuid"
)

// ErrValidation is returned by Add when title or author is empty after
// trimming.
var ErrValidation = errors.New("store: title and author are required")

// BookStore owns the canonical in-memory book list for the process and
// mirrors every mutation to its Storage backend. A Storage failure never
// fails the mutation; the in-memory state stays authoritative and the write
// is retried implicitly on the next mutation.
type BookStore struct {
	mu      sync.RWMutex
	books   []model.Book
	storage Storage
}

// NewBookStore loads the collection from storage. An absent or malformed
// saved collection falls back to the seed books.
func NewBookStore(storage Storage) *BookStore {
	s := &BookStore{storage: storage}
	s.books = s.load()
	return s
}

func (s *BookStore) load() []model.Book {
	data, err := s.storage.Load()
	if errors.Is(err, ErrNotFound) {
		log.Printf("[INFO] No saved library found, starting from seed collection")
		return SeedBooks()
	}
	if err != nil {
		log.Printf("[WARN] Failed to load library, starting from seed collection: %v", err)
		return SeedBooks()
	}

	var books []model.Book
	if err := json.Unmarshal(data, &books); err != nil {
		log.Printf("[WARN] Saved library is malformed, starting from seed collection: %v", err)
		return SeedBooks()
	}
	return books
}

// List returns a copy of the collection, newest-added first.
func (s *BookStore) List() []model.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	books := make([]model.Book, len(s.books))
	copy(books, s.books)
	return books
}

// Get returns the book with the given ID.
func (s *BookStore) Get(id string) (model.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, book := range s.books {
		if book.ID == id {
			return book, true
		}
	}
	return model.Book{}, false
}

// Add creates a book with a fresh ID and default status and progress, and
// prepends it to the collection.
func (s *BookStore) Add(title, author string) (model.Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" || author == "" {
		return model.Book{}, ErrValidation
	}

	book := model.Book{
		ID:         uuid.New().String(),
		Title:      title,
		Author:     author,
		Status:     model.StatusToRead,
		TotalPages: model.DefaultTotalPages,
		AddedAt:    time.Now().UnixMilli(),
	}

	s.mu.Lock()
	s.books = append([]model.Book{book}, s.books...)
	s.persistLocked()
	s.mu.Unlock()

	return book, nil
}

// Update replaces the record whose ID matches book.ID, preserving its
// position. An unknown ID is a silent no-op.
func (s *BookStore) Update(book model.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.books {
		if s.books[i].ID == book.ID {
			s.books[i] = book
			s.persistLocked()
			return
		}
	}
}

// Delete removes the book with the given ID. An unknown ID is a silent
// no-op.
func (s *BookStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.books {
		if s.books[i].ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			s.persistLocked()
			return
		}
	}
}

// persistLocked re-serializes the whole collection to storage. Callers must
// hold mu.
func (s *BookStore) persistLocked() {
	data, err := json.Marshal(s.books)
	if err != nil {
		log.Printf("[WARN] Failed to serialize library: %v", err)
		return
	}
	if err := s.storage.Save(data); err != nil {
		log.Printf("[WARN] Failed to persist library: %v", err)
	}
}
