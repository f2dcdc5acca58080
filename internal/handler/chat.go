package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"biblio-ai/backend/internal/model"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/text/unicode/norm"
)

// MaxMessageLength is the maximum allowed chat message length
const MaxMessageLength = 1000

type ChatRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
	// History is the prior turns of the current book-detail session,
	// replayed by the client. It is never persisted server-side.
	History []model.ChatTurn `json:"history" binding:"omitempty,dive"`
}

// HandleChat answers one question about a book. The librarian absorbs
// service failures, so a bound request always gets a usable reply.
func (h *Handler) HandleChat(c *gin.Context) {
	startTime := time.Now()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if strings.Contains(err.Error(), "max") {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Message is too long (max 1000 characters)",
				"code":  "MESSAGE_TOO_LONG",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: message is required",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	// Normalize Unicode to NFC form so lookalike characters cannot slip
	// past length checks or confuse the model.
	req.Message = norm.NFC.String(req.Message)

	book, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "The specified book was not found",
			"code":  "BOOK_NOT_FOUND",
		})
		return
	}

	if h.librarian == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "AI service is not available",
			"code":  "SERVICE_UNAVAILABLE",
		})
		return
	}

	reply := h.librarian.Chat(c.Request.Context(), book, req.History, req.Message)
	log.Printf("[PERF] Chat for %q completed in %v", book.Title, time.Since(startTime))

	c.JSON(http.StatusOK, model.ChatMessage{
		ID:        newMessageID(),
		Role:      model.RoleModel,
		Text:      reply,
		Timestamp: time.Now().UnixMilli(),
	})
}

// newMessageID generates a transcript-scoped message ID.
func newMessageID() string {
	id, err := gonanoid.New()
	if err != nil {
		// gonanoid only fails when the OS random source does; fall back to
		// a timestamp-based ID.
		return "msg_" + time.Now().Format("20060102150405.000000000")
	}
	return id
}
