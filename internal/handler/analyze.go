package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type AnalyzeRequest struct {
	// Force refetches the analysis even if one is already attached.
	Force bool `json:"force"`
}

// HandleAnalyzeBook attaches a literary analysis to a book. The presentation
// layer calls this explicitly when a book detail opens; a book that already
// has an analysis is returned as-is unless force is set.
func (h *Handler) HandleAnalyzeBook(c *gin.Context) {
	book, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Book not found",
			"code":  "BOOK_NOT_FOUND",
		})
		return
	}

	var req AnalyzeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request body",
				"code":  "INVALID_REQUEST",
			})
			return
		}
	}

	if book.Analysis != nil && !req.Force {
		c.JSON(http.StatusOK, book)
		return
	}

	if h.librarian == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "AI service is not available",
			"code":  "SERVICE_UNAVAILABLE",
		})
		return
	}

	start := time.Now()
	result := h.librarian.Analyze(c.Request.Context(), book.Title, book.Author)
	log.Printf("[PERF] Analysis for %q completed in %v", book.Title, time.Since(start))

	analysis := result.BookAnalysis
	book.Analysis = &analysis
	book.Genre = result.Genre
	h.store.Update(book)

	c.JSON(http.StatusOK, book)
}
