// Command generate_demo creates a demo database holding the sample catalog.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db] [-term dahlia]
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/database/stores"
	"github.com/mrlokans/locallibrary/internal/demo"
	"github.com/mrlokans/locallibrary/internal/services"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	term := flag.String("term", config.DefaultSearchTerm, "word to count in book titles when verifying")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(config.SQLiteDatabase(*dbPath))
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	result, err := demo.Seed(ctx, stores.New(db.DB))
	if err != nil {
		log.Fatalf("Failed to seed demo catalog: %v", err)
	}
	log.Printf("Saved %d genres, %d languages, %d authors, %d books, %d copies",
		result.Genres, result.Languages, result.Authors, result.Books, result.Instances)

	summary, err := stores.NewSummaryService(db.DB, services.SummaryConfig{SearchTerm: *term}).BuildCatalogSummary(ctx)
	if err != nil {
		log.Fatalf("Failed to verify demo catalog: %v", err)
	}
	log.Printf("Verified: %d books, %d copies (%d available), %d titles matching %q",
		summary.BookCount, summary.InstanceCount, summary.AvailableInstanceCount,
		summary.BooksMatchingSearchCount, summary.SearchTerm)

	log.Println("Demo database generated successfully!")
}
