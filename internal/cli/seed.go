package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/database/stores"
	"github.com/mrlokans/locallibrary/internal/demo"
	"github.com/mrlokans/locallibrary/internal/services"
)

type SeedCommand struct {
	File         string
	DatabasePath string
	Out          io.Writer
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{Out: os.Stdout}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)

	fs.StringVar(&cmd.File, "file", "", "Catalog JSON document to import (defaults to the built-in sample catalog)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Load genres, languages, authors, books and copies into the catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s seed\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed -file ./fixtures/catalog.json -db ./locallibrary.db\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *SeedCommand) Run() error {
	doc, err := cmd.load()
	if err != nil {
		return err
	}

	db, err := database.NewDatabase(config.SQLiteDatabase(cmd.DatabasePath))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	result, err := services.NewImportService(stores.New(db.DB)).Import(context.Background(), doc)
	if err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Imported %d genres, %d languages, %d authors, %d books, %d copies into %s\n",
		result.Genres, result.Languages, result.Authors, result.Books, result.Instances, cmd.DatabasePath)
	return nil
}

func (cmd *SeedCommand) load() (*services.CatalogImport, error) {
	if cmd.File == "" {
		return demo.Catalog()
	}

	f, err := os.Open(cmd.File)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return services.DecodeCatalogImport(f)
}
