package audit

import (
	"context"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"github.com/mrlokans/locallibrary/internal/catalog"
	auditRepo "github.com/mrlokans/locallibrary/internal/database/audit"
	"github.com/mrlokans/locallibrary/internal/entities"
)

const (
	maxReprLength    = 200
	maxMessageLength = 500

	// KindImport marks history entries written for catalog imports.
	KindImport = "import"
)

// Service records the admin change history. Recording failures are logged
// and never fail the edit that triggered them.
type Service struct {
	repo *auditRepo.Repository
}

// NewService creates a new audit service.
func NewService(repo *auditRepo.Repository) *Service {
	return &Service{repo: repo}
}

// LogAddition records a created record.
func (s *Service) LogAddition(ctx context.Context, kind catalog.Kind, objectID, repr string) {
	s.record(ctx, entities.ChangeAddition, string(kind), objectID, repr, "")
}

// LogChange records an updated record.
func (s *Service) LogChange(ctx context.Context, kind catalog.Kind, objectID, repr string) {
	s.record(ctx, entities.ChangeChange, string(kind), objectID, repr, "")
}

// LogDeletion records a removed record. repr should be captured before the
// delete so the entry stays readable.
func (s *Service) LogDeletion(ctx context.Context, kind catalog.Kind, objectID, repr string) {
	s.record(ctx, entities.ChangeDeletion, string(kind), objectID, repr, "")
}

// LogImport records a catalog import. payloadFile is the audit file name,
// empty when payloads are not kept.
func (s *Service) LogImport(ctx context.Context, payloadFile string, books, instances int, err error) {
	message := fmt.Sprintf("Imported %d books and %d copies", books, instances)
	if err != nil {
		message = "Import failed: " + err.Error()
	}
	objectID := payloadFile
	if objectID == "" {
		objectID = "-"
	}
	s.record(ctx, entities.ChangeAddition, KindImport, objectID, "catalog import", message)
}

// History lists recorded changes, most recent first.
func (s *Service) History(ctx context.Context, f auditRepo.Filter) ([]entities.ChangeEntry, int64, error) {
	return s.repo.List(ctx, f)
}

// Prune removes entries older than retention.
func (s *Service) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.DeleteOlderThan(ctx, time.Now().Add(-retention))
}

func (s *Service) record(ctx context.Context, action entities.ChangeAction, kind, objectID, repr, message string) {
	entry := &entities.ChangeEntry{
		Action:     action,
		Kind:       kind,
		ObjectID:   objectID,
		ObjectRepr: truncate(repr, maxReprLength),
		Message:    truncate(message, maxMessageLength),
	}
	if err := s.repo.Record(ctx, entry); err != nil {
		log.Printf("Failed to record %s of %s %s: %v", action, kind, objectID, err)
	}
}

// truncate shortens a string to maxLen characters, counted in runes.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}
