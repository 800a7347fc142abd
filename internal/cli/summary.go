package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/database/stores"
	"github.com/mrlokans/locallibrary/internal/services"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type SummaryCommand struct {
	DatabasePath string
	SearchTerm   string
	Out          io.Writer
}

func NewSummaryCommand() *SummaryCommand {
	return &SummaryCommand{Out: os.Stdout}
}

func (cmd *SummaryCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")
	fs.StringVar(&cmd.SearchTerm, "term", config.DefaultSearchTerm, "Word to count in book titles")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s summary [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print the catalog summary shown on the landing page as JSON.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s summary -db ./locallibrary.db\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s summary -term rose\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *SummaryCommand) Run() error {
	if _, err := os.Stat(cmd.DatabasePath); os.IsNotExist(err) {
		return fmt.Errorf("database file does not exist: %s", cmd.DatabasePath)
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

	svc := stores.NewSummaryService(db.DB, services.SummaryConfig{SearchTerm: cmd.SearchTerm})
	summary, err := svc.BuildCatalogSummary(context.Background())
	if err != nil {
		return fmt.Errorf("failed to build summary: %w", err)
	}

	enc := json.NewEncoder(cmd.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
