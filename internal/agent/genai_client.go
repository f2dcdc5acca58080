package agent

import (
	"context"

	"biblio-ai/backend/internal/model"

	"google.golang.org/genai"
)

// GeminiLLMClient implements deps.LLMClient using the Gemini API.
type GeminiLLMClient struct {
	client        *genai.Client
	analysisModel string
	chatModel     string
}

// NewGeminiLLMClient creates a new GeminiLLMClient.
func NewGeminiLLMClient(client *genai.Client, analysisModel, chatModel string) *GeminiLLMClient {
	return &GeminiLLMClient{
		client:        client,
		analysisModel: analysisModel,
		chatModel:     chatModel,
	}
}

// GenerateContent generates content using the Gemini API. When schema is
// non-nil the response is constrained to JSON matching it.
func (c *GeminiLLMClient) GenerateContent(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.4),
	}
	if schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = schema
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.analysisModel, []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}, config)
	if err != nil {
		return "", err
	}

	return firstText(resp), nil
}

// Converse runs one chat turn: system instruction plus the replayed history,
// then the new message.
func (c *GeminiLLMClient) Converse(ctx context.Context, systemInstruction string, history []model.ChatTurn, message string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.7),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}

	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		contents = append(contents, &genai.Content{
			Role:  string(turn.Role),
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}

	chat, err := c.client.Chats.Create(ctx, c.chatModel, config, contents)
	if err != nil {
		return "", err
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", err
	}

	return firstText(resp), nil
}

// firstText extracts the first text part from a response.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.Text != "" {
				return part.Text
			}
		}
	}
	return ""
}
