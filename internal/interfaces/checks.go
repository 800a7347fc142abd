package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/locallibrary/internal/audit"
	"github.com/mrlokans/locallibrary/internal/catalog"
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/database/authors"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/database/counts"
	"github.com/mrlokans/locallibrary/internal/database/genres"
	"github.com/mrlokans/locallibrary/internal/database/instances"
	"github.com/mrlokans/locallibrary/internal/database/languages"
	"github.com/mrlokans/locallibrary/internal/http"
	"github.com/mrlokans/locallibrary/internal/scheduler"
	"github.com/mrlokans/locallibrary/internal/services"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ catalog.GenreStore = (*genres.Repository)(nil)
var _ catalog.LanguageStore = (*languages.Repository)(nil)
var _ catalog.AuthorStore = (*authors.Repository)(nil)
var _ catalog.BookStore = (*books.Repository)(nil)
var _ catalog.BookInstanceStore = (*instances.Repository)(nil)

// Counter implementations
var _ catalog.Counter = (*counts.Repository)(nil)

// =============================================================================
// HTTP Dependencies
// =============================================================================

var _ http.Pinger = (*database.Database)(nil)
var _ http.SummaryBuilder = (*services.SummaryService)(nil)
var _ http.ChangeRecorder = (*audit.Service)(nil)
var _ http.PayloadAuditor = (*audit.Auditor)(nil)

// =============================================================================
// Background Jobs
// =============================================================================

var _ scheduler.Pruner = (*audit.Service)(nil)
