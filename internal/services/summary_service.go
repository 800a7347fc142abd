package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// CatalogSummary is the read model behind the landing page.
type CatalogSummary struct {
	BookCount                int64  `json:"book_count"`
	InstanceCount            int64  `json:"instance_count"`
	AvailableInstanceCount   int64  `json:"available_instance_count"`
	AuthorCount              int64  `json:"author_count"`
	GenreCount               int64  `json:"genre_count"`
	BooksMatchingSearchCount int64  `json:"books_matching_search_count"`
	SearchTerm               string `json:"search_term"`
}

// SummaryConfig configures the summary service.
type SummaryConfig struct {
	// SearchTerm is counted in book titles. Empty means the default term.
	SearchTerm string
}

// SummaryService builds catalog summaries from aggregate counts.
type SummaryService struct {
	counter    catalog.Counter
	searchTerm string
}

func NewSummaryService(counter catalog.Counter, cfg SummaryConfig) *SummaryService {
	term := cfg.SearchTerm
	if term == "" {
		term = config.DefaultSearchTerm
	}
	return &SummaryService{counter: counter, searchTerm: term}
}

// SearchTerm returns the configured title search term.
func (s *SummaryService) SearchTerm() string {
	return s.searchTerm
}

// BuildCatalogSummary runs the six counts concurrently. If any count fails
// the error is returned and no summary is produced.
func (s *SummaryService) BuildCatalogSummary(ctx context.Context) (CatalogSummary, error) {
	var summary CatalogSummary
	g, ctx := errgroup.WithContext(ctx)

	countAll := func(dst *int64, kind catalog.Kind) {
		g.Go(func() error {
			n, err := s.counter.CountAll(ctx, kind)
			if err != nil {
				return fmt.Errorf("count %s: %w", kind, err)
			}
			*dst = n
			return nil
		})
	}
	countWhere := func(dst *int64, kind catalog.Kind, p catalog.Predicate) {
		g.Go(func() error {
			n, err := s.counter.CountWhere(ctx, kind, p)
			if err != nil {
				return fmt.Errorf("count %s where %s %s: %w", kind, p.Attribute, p.Op, err)
			}
			*dst = n
			return nil
		})
	}

	countAll(&summary.BookCount, catalog.KindBook)
	countAll(&summary.InstanceCount, catalog.KindBookInstance)
	countWhere(&summary.AvailableInstanceCount, catalog.KindBookInstance,
		catalog.Equals("status", entities.LoanStatusAvailable))
	countAll(&summary.AuthorCount, catalog.KindAuthor)
	countAll(&summary.GenreCount, catalog.KindGenre)
	countWhere(&summary.BooksMatchingSearchCount, catalog.KindBook,
		catalog.Contains("title", s.searchTerm))

	if err := g.Wait(); err != nil {
		return CatalogSummary{}, fmt.Errorf("build catalog summary: %w", err)
	}
	summary.SearchTerm = s.searchTerm
	return summary, nil
}
