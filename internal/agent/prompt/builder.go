package prompt

import (
	"fmt"
	"strings"

	"biblio-ai/backend/internal/model"
)

// Builder constructs prompts for the librarian.
type Builder struct{}

// NewBuilder creates a new prompt builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildAnalysisPrompt creates the prompt for a single-book analysis.
func (b *Builder) BuildAnalysisPrompt(title, author string) string {
	return fmt.Sprintf(AnalysisPromptTemplate, title, author)
}

// BuildRecommendationPrompt creates the prompt listing each book's title and
// status.
func (b *Builder) BuildRecommendationPrompt(books []model.Book) string {
	entries := make([]string, 0, len(books))
	for _, book := range books {
		entries = append(entries, fmt.Sprintf("%q (%s)", book.Title, book.Status))
	}
	return fmt.Sprintf(RecommendationPromptTemplate, strings.Join(entries, ", "))
}

// BuildChatSystemInstruction creates the system instruction scoping a chat
// to one book.
func (b *Builder) BuildChatSystemInstruction(book model.Book) string {
	return fmt.Sprintf(ChatSystemInstructionTemplate, book.Title, book.Author)
}
