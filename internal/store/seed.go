package store

import (
	"time"

	"biblio-ai/backend/internal/model"
)

// SeedBooks returns the starter collection used when no saved library exists
// or the saved one cannot be read.
func SeedBooks() []model.Book {
	now := time.Now().UnixMilli()
	return []model.Book{
		{
			ID:          "1",
			Title:       "Cien años de soledad",
			Author:      "Gabriel García Márquez",
			Status:      model.StatusCompleted,
			TotalPages:  417,
			CurrentPage: 417,
			AddedAt:     now,
			Genre:       "Realismo Mágico",
		},
		{
			ID:          "2",
			Title:       "Dune",
			Author:      "Frank Herbert",
			Status:      model.StatusReading,
			TotalPages:  896,
			CurrentPage: 342,
			AddedAt:     now - 100000,
			Genre:       "Ciencia Ficción",
		},
	}
}
