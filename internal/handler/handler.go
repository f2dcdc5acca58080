package handler

import (
	"context"

	"biblio-ai/backend/internal/agent"
	"biblio-ai/backend/internal/model"
	"biblio-ai/backend/internal/store"
)

// Librarian is the AI collaborator surface the handlers need. All methods
// are total; degraded content stands in for failures.
type Librarian interface {
	Analyze(ctx context.Context, title, author string) agent.AnalysisResult
	Recommend(ctx context.Context, books []model.Book) []string
	Chat(ctx context.Context, book model.Book, history []model.ChatTurn, message string) string
}

// Handler carries the handlers' dependencies. librarian may be nil when the
// AI client could not be initialized; the library itself keeps working and
// the AI routes answer 503.
type Handler struct {
	store     *store.BookStore
	librarian Librarian
}

// New creates a Handler. Pass a nil librarian to run without AI features.
func New(books *store.BookStore, librarian Librarian) *Handler {
	return &Handler{
		store:     books,
		librarian: librarian,
	}
}
