package handler

import (
	"net/http"
	"sort"

	"biblio-ai/backend/internal/model"

	"github.com/gin-gonic/gin"
)

type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

type StatsResponse struct {
	TotalBooks int          `json:"totalBooks"`
	Completed  int          `json:"completed"`
	Reading    int          `json:"reading"`
	ToRead     int          `json:"toRead"`
	PagesRead  int          `json:"pagesRead"`
	TopGenres  []GenreCount `json:"topGenres"`
}

// topGenreLimit caps the genre breakdown to the most common entries.
const topGenreLimit = 5

// HandleGetStats summarizes the collection for the statistics view. Pages
// read counts full length for completed books and current progress for
// books in flight.
func (h *Handler) HandleGetStats(c *gin.Context) {
	books := h.store.List()

	stats := StatsResponse{TotalBooks: len(books)}
	genreCounts := make(map[string]int)

	for _, book := range books {
		switch book.Status {
		case model.StatusCompleted:
			stats.Completed++
			stats.PagesRead += book.TotalPages
		case model.StatusReading:
			stats.Reading++
			stats.PagesRead += book.CurrentPage
		case model.StatusToRead:
			stats.ToRead++
		}

		genre := book.Genre
		if genre == "" {
			genre = "Other"
		}
		genreCounts[genre]++
	}

	stats.TopGenres = topGenres(genreCounts, topGenreLimit)
	c.JSON(http.StatusOK, stats)
}

// topGenres returns the n most common genres, count descending with name as
// a deterministic tie-break.
func topGenres(counts map[string]int, n int) []GenreCount {
	genres := make([]GenreCount, 0, len(counts))
	for genre, count := range counts {
		genres = append(genres, GenreCount{Genre: genre, Count: count})
	}

	sort.Slice(genres, func(i, j int) bool {
		if genres[i].Count != genres[j].Count {
			return genres[i].Count > genres[j].Count
		}
		return genres[i].Genre < genres[j].Genre
	})

	if len(genres) > n {
		genres = genres[:n]
	}
	return genres
}
