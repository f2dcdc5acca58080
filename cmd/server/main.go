package main

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"biblio-ai/backend/internal/agent"
	"biblio-ai/backend/internal/config"
	"biblio-ai/backend/internal/handler"
	"biblio-ai/backend/internal/middleware"
	"biblio-ai/backend/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

func main() {
	cfg := config.Load()
	log.Printf("[INFO] Starting BiblioAI server env=%s", cfg.Env)

	storage, err := store.OpenBadgerStorage(filepath.Join(cfg.DataDir, "library"))
	if err != nil {
		log.Fatalf("[FATAL] Failed to open library storage: %v", err)
	}
	defer storage.Close()

	books := store.NewBookStore(storage)
	log.Printf("[INFO] Library loaded with %d books", len(books.List()))

	librarian := initLibrarian(cfg)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// Security headers (before CORS)
	r.Use(middleware.SecurityHeaders())

	allowedOrigins := []string{}
	if gin.Mode() != gin.ReleaseMode {
		allowedOrigins = append(allowedOrigins, "http://localhost:5173")
	}
	allowedOrigins = append(allowedOrigins, cfg.AllowedOrigins...)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	ipLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.ChatRatePerSec), cfg.ChatBurst)
	dailyQuota := middleware.NewDailyQuota(cfg.DailyChatQuota)
	log.Printf("[INFO] Rate limiting enabled rate=%v burst=%d daily=%d",
		cfg.ChatRatePerSec, cfg.ChatBurst, cfg.DailyChatQuota)

	h := handler.New(books, librarian)

	// Health check endpoints (outside /api group, no rate limiting)
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
		api.POST("/books/:id/chat", middleware.RateLimitMiddleware(ipLimiter, dailyQuota), h.HandleChat)
	}

	log.Printf("[INFO] Server ready port=%s allowed_origins=%v", cfg.Port, allowedOrigins)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("[FATAL] Failed to start server: %v", err)
	}
}

// initLibrarian builds the AI collaborator. A missing key or client failure
// degrades to library-only mode instead of refusing to start.
func initLibrarian(cfg *config.Config) handler.Librarian {
	if cfg.GeminiAPIKey == "" {
		log.Println("[WARN] GEMINI_API_KEY is not set")
		log.Println("[WARN] Analysis, recommendations and chat will be unavailable")
		return nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		log.Printf("[WARN] Failed to create Gemini client: %v", err)
		log.Println("[WARN] Analysis, recommendations and chat will be unavailable")
		return nil
	}

	log.Printf("[INFO] Librarian initialized analysis_model=%s chat_model=%s",
		cfg.AnalysisModel, cfg.ChatModel)
	return agent.NewLibrarian(agent.NewGeminiLLMClient(client, cfg.AnalysisModel, cfg.ChatModel))
}
