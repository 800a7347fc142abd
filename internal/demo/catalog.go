package demo

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"github.com/mrlokans/locallibrary/internal/services"
)

//go:embed catalog.json
var catalogJSON []byte

// Catalog returns the embedded sample catalog.
func Catalog() (*services.CatalogImport, error) {
	doc, err := services.DecodeCatalogImport(bytes.NewReader(catalogJSON))
	if err != nil {
		return nil, fmt.Errorf("decode embedded catalog: %w", err)
	}
	return doc, nil
}

// Seed imports the embedded sample catalog into stores.
func Seed(ctx context.Context, stores services.CatalogStores) (services.ImportResult, error) {
	doc, err := Catalog()
	if err != nil {
		return services.ImportResult{}, err
	}
	return services.NewImportService(stores).Import(ctx, doc)
}
