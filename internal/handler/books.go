package handler

import (
	"errors"
	"net/http"

	"biblio-ai/backend/internal/model"
	"biblio-ai/backend/internal/store"

	"github.com/gin-gonic/gin"
)

type AddBookRequest struct {
	Title  string `json:"title" binding:"required"`
	Author string `json:"author" binding:"required"`
}

// UpdateBookRequest is a partial update; absent fields keep their current
// value. ID and AddedAt are never updatable.
type UpdateBookRequest struct {
	Title       *string              `json:"title,omitempty"`
	Author      *string              `json:"author,omitempty"`
	Status      *model.ReadingStatus `json:"status,omitempty"`
	TotalPages  *int                 `json:"totalPages,omitempty"`
	CurrentPage *int                 `json:"currentPage,omitempty"`
	Genre       *string              `json:"genre,omitempty"`
}

// HandleListBooks returns the collection, newest-added first.
func (h *Handler) HandleListBooks(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.List())
}

func (h *Handler) HandleGetBook(c *gin.Context) {
	book, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Book not found",
			"code":  "BOOK_NOT_FOUND",
		})
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *Handler) HandleAddBook(c *gin.Context) {
	var req AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: title and author are required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	book, err := h.store.Add(req.Title, req.Author)
	if errors.Is(err, store.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Title and author must not be empty",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	c.JSON(http.StatusCreated, book)
}

func (h *Handler) HandleUpdateBook(c *gin.Context) {
	book, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Book not found",
			"code":  "BOOK_NOT_FOUND",
		})
		return
	}

	var req UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
			"code":  "INVALID_REQUEST",
		})
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown reading status",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Status != nil {
		book.Status = *req.Status
	}
	if req.TotalPages != nil {
		book.TotalPages = *req.TotalPages
	}
	if req.CurrentPage != nil {
		book.CurrentPage = *req.CurrentPage
	}
	if req.Genre != nil {
		book.Genre = *req.Genre
	}

	h.store.Update(book)
	c.JSON(http.StatusOK, book)
}

func (h *Handler) HandleDeleteBook(c *gin.Context) {
	h.store.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}
