package http

import (
	"context"

	"github.com/mrlokans/locallibrary/internal/catalog"
	auditRepo "github.com/mrlokans/locallibrary/internal/database/audit"
	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/services"
)

// Each controller depends on the narrowest interface it needs. The
// per-kind store interfaces live in the catalog package.

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SummaryBuilder produces the landing page read model.
type SummaryBuilder interface {
	BuildCatalogSummary(ctx context.Context) (services.CatalogSummary, error)
}

// ChangeRecorder keeps the admin change history.
type ChangeRecorder interface {
	LogAddition(ctx context.Context, kind catalog.Kind, objectID, repr string)
	LogChange(ctx context.Context, kind catalog.Kind, objectID, repr string)
	LogDeletion(ctx context.Context, kind catalog.Kind, objectID, repr string)
	LogImport(ctx context.Context, payloadFile string, books, instances int, err error)
	History(ctx context.Context, f auditRepo.Filter) ([]entities.ChangeEntry, int64, error)
}

// PayloadAuditor keeps copies of submitted import documents.
type PayloadAuditor interface {
	Enabled() bool
	SavePayload(raw []byte) (string, error)
}
