package deps

import (
	"context"

	"biblio-ai/backend/internal/model"

	"google.golang.org/genai"
)

// LLMClient abstracts the external text-generation service.
type LLMClient interface {
	// GenerateContent runs a single prompt. A non-nil schema constrains the
	// response to JSON conforming to it.
	GenerateContent(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
	// Converse replays the session history under a system instruction and
	// sends one new user message.
	Converse(ctx context.Context, systemInstruction string, history []model.ChatTurn, message string) (string, error)
}
