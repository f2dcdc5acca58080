package agent

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"biblio-ai/backend/internal/agent/deps"
	"biblio-ai/backend/internal/agent/prompt"
	"biblio-ai/backend/internal/agent/response"
	"biblio-ai/backend/internal/model"

	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// MaxRetries is the number of additional attempts after a failed service
	// call.
	MaxRetries = 2
	// retryDelay is the base delay before a retry, scaled by attempt number.
	retryDelay = 500 * time.Millisecond
)

// Fallback content returned when the service cannot be reached. The caller
// always gets a usable value; failure surfaces as degraded content only.
const (
	FallbackSummary   = "The analysis could not be generated right now."
	FallbackStyle     = "N/A"
	FallbackMoodColor = "#cbd5e0"
	FallbackGenre     = "General"
	ApologyMessage    = "Sorry, I had trouble reaching this book's knowledge."
)

// AnalysisResult is the structured analysis for one book, including the
// genre that gets written back onto the record.
type AnalysisResult struct {
	model.BookAnalysis
	Genre string `json:"genre"`
}

// Librarian is the AI collaborator: per-book literary analysis, collection
// recommendations, and per-book chat. Every method is total — there is
// nothing useful a caller could do with an error mid-interaction, so failure
// is absorbed here.
type Librarian struct {
	llm     deps.LLMClient
	prompts *prompt.Builder
}

// NewLibrarian creates a Librarian on top of an LLM client.
func NewLibrarian(llm deps.LLMClient) *Librarian {
	return &Librarian{
		llm:     llm,
		prompts: prompt.NewBuilder(),
	}
}

// Analyze fetches a structured literary analysis for one book. On any
// failure it returns the fixed fallback analysis.
func (l *Librarian) Analyze(ctx context.Context, title, author string) AnalysisResult {
	text, err := l.generateWithRetry(ctx, l.prompts.BuildAnalysisPrompt(title, author), analysisSchema)
	if err != nil || text == "" {
		log.Printf("[WARN] Analysis failed for %q: %v", title, err)
		return fallbackAnalysis()
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(response.ExtractJSON(text)), &result); err != nil {
		log.Printf("[WARN] Analysis response for %q is not valid JSON: %v", title, err)
		return fallbackAnalysis()
	}
	return result
}

func fallbackAnalysis() AnalysisResult {
	return AnalysisResult{
		BookAnalysis: model.BookAnalysis{
			Summary:        FallbackSummary,
			Themes:         []string{"Unknown"},
			MainCharacters: []string{},
			LiteraryStyle:  FallbackStyle,
			MoodColor:      FallbackMoodColor,
		},
		Genre: FallbackGenre,
	}
}

// Recommend suggests new titles based on the current collection. An empty
// collection returns an empty list without contacting the service; so does
// any failure.
func (l *Librarian) Recommend(ctx context.Context, books []model.Book) []string {
	if len(books) == 0 {
		return []string{}
	}

	text, err := l.generateWithRetry(ctx, l.prompts.BuildRecommendationPrompt(books), recommendationSchema)
	if err != nil || text == "" {
		log.Printf("[WARN] Recommendation request failed: %v", err)
		return []string{}
	}

	var parsed struct {
		Recommendations []string `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(response.ExtractJSON(text)), &parsed); err != nil {
		log.Printf("[WARN] Recommendation response is not valid JSON: %v", err)
		return []string{}
	}
	if parsed.Recommendations == nil {
		return []string{}
	}
	return parsed.Recommendations
}

// Chat answers one question about a book, replaying the session history for
// context. On any failure it returns a fixed apology string.
func (l *Librarian) Chat(ctx context.Context, book model.Book, history []model.ChatTurn, message string) string {
	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("[RETRY] Chat attempt %d/%d for %q", attempt+1, MaxRetries+1, book.Title)
			time.Sleep(time.Duration(attempt) * retryDelay)
		}

		reply, err := l.llm.Converse(ctx, l.prompts.BuildChatSystemInstruction(book), history, message)
		if err == nil && reply != "" {
			return reply
		}
		lastErr = err

		if !shouldRetry(err) {
			break
		}
	}

	log.Printf("[WARN] Chat failed for %q: %v", book.Title, lastErr)
	return ApologyMessage
}

// generateWithRetry wraps GenerateContent with a bounded retry. The context
// is passed through untouched; the service's own timeout behavior governs
// worst-case latency.
func (l *Librarian) generateWithRetry(ctx context.Context, p string, schema *genai.Schema) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("[RETRY] Generation attempt %d/%d", attempt+1, MaxRetries+1)
			time.Sleep(time.Duration(attempt) * retryDelay)
		}

		text, err := l.llm.GenerateContent(ctx, p, schema)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return "", err
		}
	}
	return "", lastErr
}

// shouldRetry reports whether another attempt could succeed. Cancelled
// callers and exhausted API quotas will not recover within the retry window.
func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if isQuotaError(err) {
		log.Printf("[QUOTA] Gemini API quota exhausted")
		return false
	}
	return true
}

// isQuotaError checks if the error is a Gemini API rate limit error.
func isQuotaError(err error) bool {
	// Check for gRPC ResourceExhausted status
	if s, ok := status.FromError(err); ok && s.Code() == codes.ResourceExhausted {
		return true
	}
	// Also check for wrapped errors and string matching as fallback
	errStr := err.Error()
	return strings.Contains(errStr, "ResourceExhausted") ||
		strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "quota")
}
