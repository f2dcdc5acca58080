package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	AI        string `json:"ai"`
}

// HandleHealth returns the health status of the service. The library keeps
// working without the AI client, so a missing librarian reports degraded
// rather than unhealthy.
func (h *Handler) HandleHealth(c *gin.Context) {
	aiStatus := "unavailable"
	status := "degraded"
	if h.librarian != nil {
		aiStatus = "ready"
		status = "healthy"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		AI:        aiStatus,
	})
}

// HandleReadiness returns whether the service is ready to accept traffic.
// Readiness only requires the book store; AI availability is reported by
// the health endpoint.
func (h *Handler) HandleReadiness(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"reason": "store_not_initialized",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
