package services

import "github.com/mrlokans/locallibrary/internal/catalog"

// CatalogStores bundles the per-kind stores used by importers and the
// management API.
type CatalogStores struct {
	Genres    catalog.GenreStore
	Languages catalog.LanguageStore
	Authors   catalog.AuthorStore
	Books     catalog.BookStore
	Instances catalog.BookInstanceStore
}

// ImportResult contains the outcome of a catalog import.
type ImportResult struct {
	Genres    int `json:"genres"`
	Languages int `json:"languages"`
	Authors   int `json:"authors"`
	Books     int `json:"books"`
	Instances int `json:"instances"`
}
