package http

import (
	"github.com/mrlokans/locallibrary/internal/admin"
	"github.com/mrlokans/locallibrary/internal/analytics"
	"github.com/mrlokans/locallibrary/internal/demo"
	"github.com/mrlokans/locallibrary/internal/services"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database Pinger
	Summary  SummaryBuilder

	// Management API; disabled when AdminEnabled is false or Site is nil
	Stores       services.CatalogStores
	Site         *admin.Site
	AdminEnabled bool

	// Change history and import payload copies (optional)
	History ChangeRecorder
	Auditor PayloadAuditor

	// Plausible snippet on the landing page (optional)
	Analytics *analytics.PlausibleConfig

	// Demo mode keeps the catalog read-only (optional)
	DemoMiddleware *demo.Middleware

	// Application info
	Version string
}
