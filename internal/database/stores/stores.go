// Package stores assembles the per-kind repositories over one connection.
package stores

import (
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/database/authors"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/database/counts"
	"github.com/mrlokans/locallibrary/internal/database/genres"
	"github.com/mrlokans/locallibrary/internal/database/instances"
	"github.com/mrlokans/locallibrary/internal/database/languages"
	"github.com/mrlokans/locallibrary/internal/services"
)

// New returns the catalog stores backed by db.
func New(db *gorm.DB) services.CatalogStores {
	return services.CatalogStores{
		Genres:    genres.NewRepository(db),
		Languages: languages.NewRepository(db),
		Authors:   authors.NewRepository(db),
		Books:     books.NewRepository(db),
		Instances: instances.NewRepository(db),
	}
}

// NewSummaryService returns a summary service counting over db.
func NewSummaryService(db *gorm.DB, cfg services.SummaryConfig) *services.SummaryService {
	return services.NewSummaryService(counts.NewRepository(db), cfg)
}
