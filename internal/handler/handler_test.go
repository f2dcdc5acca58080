package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"biblio-ai/backend/internal/agent"
	"biblio-ai/backend/internal/model"
	"biblio-ai/backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeLibrarian scripts AI collaborator results for handler tests.
type fakeLibrarian struct {
	analysis     agent.AnalysisResult
	recs         []string
	chatReply    string
	analyzeCalls int
}

func (f *fakeLibrarian) Analyze(_ context.Context, _, _ string) agent.AnalysisResult {
	f.analyzeCalls++
	return f.analysis
}

func (f *fakeLibrarian) Recommend(_ context.Context, books []model.Book) []string {
	if len(books) == 0 {
		return []string{}
	}
	return f.recs
}

func (f *fakeLibrarian) Chat(_ context.Context, _ model.Book, _ []model.ChatTurn, _ string) string {
	return f.chatReply
}

func newTestRouter(librarian Librarian) (*gin.Engine, *store.BookStore) {
	books := store.NewBookStore(store.NewMemoryStorage())
	h := New(books, librarian)

	r := gin.New()
	r.GET("/health", h.HandleHealth)
	r.GET("/ready", h.HandleReadiness)
	api := r.Group("/api")
	{
		api.GET("/books", h.HandleListBooks)
		api.POST("/books", h.HandleAddBook)
		api.GET("/books/:id", h.HandleGetBook)
		api.PUT("/books/:id", h.HandleUpdateBook)
		api.DELETE("/books/:id", h.HandleDeleteBook)
		api.POST("/books/:id/analyze", h.HandleAnalyzeBook)
		api.GET("/recommendations", h.HandleGetRecommendations)
		api.GET("/stats", h.HandleGetStats)
		api.POST("/books/:id/chat", h.HandleChat)
	}
	return r, books
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHandleListBooks(t *testing.T) {
	r, _ := newTestRouter(nil)

	w := doJSON(t, r, http.MethodGet, "/api/books", nil)

	require.Equal(t, http.StatusOK, w.Code)
	books := decode[[]model.Book](t, w)
	require.Len(t, books, 2)
	assert.Equal(t, "Cien años de soledad", books[0].Title)
}

func TestHandleAddBook(t *testing.T) {
	r, _ := newTestRouter(nil)

	w := doJSON(t, r, http.MethodPost, "/api/books", AddBookRequest{Title: "Foundation", Author: "Isaac Asimov"})

	require.Equal(t, http.StatusCreated, w.Code)
	book := decode[model.Book](t, w)
	assert.Equal(t, model.StatusToRead, book.Status)
	assert.Equal(t, model.DefaultTotalPages, book.TotalPages)

	list := decode[[]model.Book](t, doJSON(t, r, http.MethodGet, "/api/books", nil))
	require.Len(t, list, 3)
	assert.Equal(t, book.ID, list[0].ID)
}

func TestHandleAddBook_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{name: "missing author", body: gin.H{"title": "Foundation"}},
		{name: "missing title", body: gin.H{"author": "Isaac Asimov"}},
		{name: "whitespace only", body: gin.H{"title": "   ", "author": "Isaac Asimov"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, books := newTestRouter(nil)

			w := doJSON(t, r, http.MethodPost, "/api/books", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Len(t, books.List(), 2)
		})
	}
}

func TestHandleGetBook_NotFound(t *testing.T) {
	r, _ := newTestRouter(nil)

	w := doJSON(t, r, http.MethodGet, "/api/books/no-such-id", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "BOOK_NOT_FOUND")
}

func TestHandleUpdateBook(t *testing.T) {
	r, books := newTestRouter(nil)
	dune := books.List()[1]

	status := model.StatusCompleted
	page := dune.TotalPages
	w := doJSON(t, r, http.MethodPut, "/api/books/"+dune.ID, UpdateBookRequest{
		Status:      &status,
		CurrentPage: &page,
	})

	require.Equal(t, http.StatusOK, w.Code)
	got, ok := books.Get(dune.ID)
	require.True(t, ok)
	assert.Equal(t, model.StatusCompleted, got.Status)
	assert.Equal(t, dune.TotalPages, got.CurrentPage)
	assert.Equal(t, dune.Title, got.Title, "unpatched fields are preserved")
}

func TestHandleUpdateBook_InvalidStatus(t *testing.T) {
	r, books := newTestRouter(nil)
	id := books.List()[0].ID

	w := doJSON(t, r, http.MethodPut, "/api/books/"+id, gin.H{"status": "abandoned"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleUpdateBook_NotFound(t *testing.T) {
	r, _ := newTestRouter(nil)

	w := doJSON(t, r, http.MethodPut, "/api/books/no-such-id", gin.H{"genre": "Horror"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleDeleteBook(t *testing.T) {
	r, books := newTestRouter(nil)
	id := books.List()[0].ID

	w := doJSON(t, r, http.MethodDelete, "/api/books/"+id, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, books.List(), 1)
}

func TestHandleAnalyzeBook(t *testing.T) {
	fake := &fakeLibrarian{
		analysis: agent.AnalysisResult{
			BookAnalysis: model.BookAnalysis{
				Summary:   "Generations of the Buendía family.",
				Themes:    []string{"Solitude", "Time"},
				MoodColor: "#f2c14e",
			},
			Genre: "Magical Realism",
		},
	}
	r, books := newTestRouter(fake)
	id := books.List()[0].ID

	w := doJSON(t, r, http.MethodPost, "/api/books/"+id+"/analyze", nil)

	require.Equal(t, http.StatusOK, w.Code)
	book := decode[model.Book](t, w)
	require.NotNil(t, book.Analysis)
	assert.Equal(t, "Generations of the Buendía family.", book.Analysis.Summary)
	assert.Equal(t, "Magical Realism", book.Genre, "analysis genre overwrites the record")

	// The attachment is persisted, and a second call reuses it.
	stored, ok := books.Get(id)
	require.True(t, ok)
	require.NotNil(t, stored.Analysis)

	doJSON(t, r, http.MethodPost, "/api/books/"+id+"/analyze", nil)
	assert.Equal(t, 1, fake.analyzeCalls, "existing analysis is not refetched")

	doJSON(t, r, http.MethodPost, "/api/books/"+id+"/analyze", AnalyzeRequest{Force: true})
	assert.Equal(t, 2, fake.analyzeCalls, "force refetches")
}

func TestHandleAnalyzeBook_Unavailable(t *testing.T) {
	r, books := newTestRouter(nil)
	id := books.List()[0].ID

	w := doJSON(t, r, http.MethodPost, "/api/books/"+id+"/analyze", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "SERVICE_UNAVAILABLE")
}

func TestHandleGetRecommendations(t *testing.T) {
	fake := &fakeLibrarian{recs: []string{"Pedro Páramo by Juan Rulfo"}}
	r, _ := newTestRouter(fake)

	w := doJSON(t, r, http.MethodGet, "/api/recommendations", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[RecommendationsResponse](t, w)
	assert.Equal(t, []string{"Pedro Páramo by Juan Rulfo"}, resp.Recommendations)
}

func TestHandleChat(t *testing.T) {
	fake := &fakeLibrarian{chatReply: "Melquíades wrote the parchments."}
	r, books := newTestRouter(fake)
	id := books.List()[0].ID

	w := doJSON(t, r, http.MethodPost, "/api/books/"+id+"/chat", ChatRequest{
		Message: "Who wrote the parchments?",
		History: []model.ChatTurn{{Role: model.RoleUser, Text: "Hola"}},
	})

	require.Equal(t, http.StatusOK, w.Code)
	msg := decode[model.ChatMessage](t, w)
	assert.Equal(t, model.RoleModel, msg.Role)
	assert.Equal(t, "Melquíades wrote the parchments.", msg.Text)
	assert.NotEmpty(t, msg.ID)
	assert.NotZero(t, msg.Timestamp)
}

func TestHandleChat_Invalid(t *testing.T) {
	fake := &fakeLibrarian{chatReply: "ok"}
	r, books := newTestRouter(fake)
	id := books.List()[0].ID

	w := doJSON(t, r, http.MethodPost, "/api/books/"+id+"/chat", gin.H{"history": []any{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/books/no-such-id/chat", ChatRequest{Message: "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetStats(t *testing.T) {
	r, books := newTestRouter(nil)
	_, err := books.Add("Foundation", "Isaac Asimov")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/stats", nil)

	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[StatsResponse](t, w)
	assert.Equal(t, 3, stats.TotalBooks)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Reading)
	assert.Equal(t, 1, stats.ToRead)
	// 417 pages of the completed seed plus 342 in-progress pages of Dune.
	assert.Equal(t, 417+342, stats.PagesRead)
	require.NotEmpty(t, stats.TopGenres)
	assert.Equal(t, 1, stats.TopGenres[0].Count)
}

func TestHealthEndpoints(t *testing.T) {
	r, _ := newTestRouter(nil)

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[HealthResponse](t, w)
	assert.Equal(t, "degraded", health.Status)
	assert.Equal(t, "unavailable", health.AI)

	w = doJSON(t, r, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	r2, _ := newTestRouter(&fakeLibrarian{})
	w = doJSON(t, r2, http.MethodGet, "/health", nil)
	health = decode[HealthResponse](t, w)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "ready", health.AI)
}
