package model

// ReadingStatus is the reading state of a book in the library.
type ReadingStatus string

const (
	// StatusToRead marks a book that has not been started yet (TBR).
	StatusToRead ReadingStatus = "tbr"
	// StatusReading marks a book currently in progress.
	StatusReading ReadingStatus = "reading"
	// StatusCompleted marks a finished book.
	StatusCompleted ReadingStatus = "completed"
)

// Valid reports whether s is one of the known reading statuses.
func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusToRead, StatusReading, StatusCompleted:
		return true
	}
	return false
}

// DefaultTotalPages is assumed when a book is added without page information.
// The value can be corrected later through an update.
const DefaultTotalPages = 300

// BookAnalysis is the AI-derived annotation attached to a book after a
// successful analysis. MoodColor is a display-only hex value; no field is
// validated beyond what the response schema enforces.
type BookAnalysis struct {
	Summary        string   `json:"summary"`
	Themes         []string `json:"themes"`
	MainCharacters []string `json:"mainCharacters"`
	LiteraryStyle  string   `json:"literaryStyle"`
	MoodColor      string   `json:"moodColor"`
}

// Book is one library entry. AddedAt is Unix milliseconds and immutable after
// creation. Analysis stays nil until fetched once and is never invalidated by
// later title or author edits.
type Book struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Author      string        `json:"author"`
	Status      ReadingStatus `json:"status"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	AddedAt     int64         `json:"addedAt"`
	Analysis    *BookAnalysis `json:"analysis,omitempty"`
	Genre       string        `json:"genre,omitempty"`
}
