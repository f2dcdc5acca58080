package agent

import "google.golang.org/genai"

// analysisSchema constrains the analysis response to the BookAnalysis shape
// plus the genre written back onto the record.
var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {
			Type:        genai.TypeString,
			Description: "A 2-3 sentence summary capturing the essence of the book.",
		},
		"themes": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "3-5 central themes.",
		},
		"mainCharacters": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "Names of 3-4 main characters.",
		},
		"literaryStyle": {
			Type:        genai.TypeString,
			Description: "Brief description of the writing style (e.g. Gothic, Minimalist).",
		},
		"moodColor": {
			Type:        genai.TypeString,
			Description: "A hex color code representing the book's atmosphere.",
		},
		"genre": {
			Type:        genai.TypeString,
			Description: "The primary literary genre.",
		},
	},
	Required: []string{"summary", "themes", "mainCharacters", "literaryStyle", "moodColor", "genre"},
}

// recommendationSchema constrains the recommendation response to a list of
// title/author strings.
var recommendationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"recommendations": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
}
