package http

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Analytics data must be in the context before the CSP is built
	router.Use(AnalyticsContextMiddleware(cfg.Analytics))

	// Apply security headers to all responses
	router.Use(SecurityHeadersMiddleware())
	router.Use(StrictTransportSecurityMiddleware())

	// Apply demo mode middleware if enabled
	if cfg.DemoMiddleware != nil && cfg.DemoMiddleware.IsEnabled() {
		router.Use(cfg.DemoMiddleware.InjectContext())
		router.Use(cfg.DemoMiddleware.Handler())
	}

	tmpl := template.Must(template.ParseFS(templatesFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	if cfg.Summary != nil {
		index := NewIndexController(cfg.Summary)
		router.GET("/", index.Page)
		router.GET("/api/summary", index.Summary)
	}

	if cfg.AdminEnabled && cfg.Site != nil {
		adminController := NewAdminController(cfg.Site, cfg.Stores, cfg.History, cfg.Auditor)
		adminController.RegisterRoutes(router.Group("/admin/api"))
	}

	return router
}
