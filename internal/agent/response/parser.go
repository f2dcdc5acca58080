package response

import "strings"

// ExtractJSON returns the bare JSON payload of a model response. Structured
// output normally arrives unwrapped, but some responses still fence the JSON
// in a markdown code block; those fences are stripped here.
func ExtractJSON(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.LastIndex(trimmed, "```"); idx != -1 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
