package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type RecommendationsResponse struct {
	Recommendations []string `json:"recommendations"`
}

// HandleGetRecommendations suggests new titles from the current collection.
// An empty library yields an empty list without a service call, and service
// failures degrade to an empty list inside the librarian.
func (h *Handler) HandleGetRecommendations(c *gin.Context) {
	if h.librarian == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "AI service is not available",
			"code":  "SERVICE_UNAVAILABLE",
		})
		return
	}

	start := time.Now()
	recs := h.librarian.Recommend(c.Request.Context(), h.store.List())
	log.Printf("[PERF] Recommendations completed in %v count=%d", time.Since(start), len(recs))

	c.JSON(http.StatusOK, RecommendationsResponse{Recommendations: recs})
}
