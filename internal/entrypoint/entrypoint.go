package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/admin"
	"github.com/mrlokans/locallibrary/internal/analytics"
	"github.com/mrlokans/locallibrary/internal/audit"
	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/database"
	auditRepo "github.com/mrlokans/locallibrary/internal/database/audit"
	"github.com/mrlokans/locallibrary/internal/database/stores"
	"github.com/mrlokans/locallibrary/internal/demo"
	http_controllers "github.com/mrlokans/locallibrary/internal/http"
	"github.com/mrlokans/locallibrary/internal/scheduler"
	"github.com/mrlokans/locallibrary/internal/services"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -2 is syscall.SIGINT, plain kill sends syscall.SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Close stores only after in-flight requests have drained
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

// App is the wired application: an open database and the router serving it.
type App struct {
	Router  *gin.Engine
	DB      *database.Database
	History *audit.Service
	Pruner  *scheduler.HistoryPruneScheduler
	cleanup func()
}

// Close stops background jobs and releases the database and any demo files.
func (a *App) Close() {
	if a.Pruner != nil {
		a.Pruner.Stop()
	}
	if err := a.DB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
	if a.cleanup != nil {
		a.cleanup()
	}
}

// NewApp opens the catalog store described by cfg and builds the router.
// In demo mode the configured database is replaced by a seeded temporary
// SQLite file and all writes are rejected.
func NewApp(cfg *config.Config, version string) (*App, error) {
	var demoMiddleware *demo.Middleware
	var cleanup func()

	dbConfig := cfg.Database
	if cfg.Demo.Enabled {
		log.Printf("Demo mode enabled - write operations will be blocked")
		demoMiddleware = demo.NewMiddleware(true)

		tempDir, err := os.MkdirTemp("", "locallibrary-demo-*")
		if err != nil {
			return nil, fmt.Errorf("create demo directory: %w", err)
		}
		cleanup = func() {
			log.Printf("Cleaning up demo catalog from %s", tempDir)
			os.RemoveAll(tempDir)
		}
		dbConfig = config.SQLiteDatabase(filepath.Join(tempDir, "demo.db"))
		dbConfig.LogLevel = cfg.Database.LogLevel
	}

	db, err := database.NewDatabase(dbConfig)
	if err != nil {
		if cleanup != nil {
			cleanup()
		}
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	app := &App{DB: db, cleanup: cleanup}

	catalogStores := stores.New(db.DB)
	if cfg.Demo.Enabled {
		result, err := demo.Seed(context.Background(), catalogStores)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("seed demo catalog: %w", err)
		}
		log.Printf("Seeded demo catalog with %d books and %d copies", result.Books, result.Instances)
	}

	summary := stores.NewSummaryService(db.DB, services.SummaryConfig{SearchTerm: cfg.Catalog.SearchTerm})
	log.Printf("Landing page counts titles containing %q", summary.SearchTerm())

	app.History = audit.NewService(auditRepo.NewRepository(db.DB))
	auditor := audit.NewAuditor(cfg.Audit.Dir)
	if auditor.Enabled() {
		log.Printf("Import documents will be kept in %s", cfg.Audit.Dir)
	}

	retention := time.Duration(cfg.Audit.RetentionDays) * 24 * time.Hour
	app.Pruner = scheduler.NewHistoryPruneScheduler(app.History, cfg.Audit.PruneSchedule, retention)
	if err := app.Pruner.Start(context.Background()); err != nil {
		app.Close()
		return nil, fmt.Errorf("start history pruning: %w", err)
	}

	plausible := analytics.NewPlausibleConfig(cfg.Analytics)
	if plausible.Enabled {
		log.Printf("Plausible analytics enabled for %s", plausible.Domain)
	}

	app.Router = http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		Summary:        summary,
		Stores:         catalogStores,
		Site:           admin.DefaultSite(),
		AdminEnabled:   cfg.Admin.Enabled,
		History:        app.History,
		Auditor:        auditor,
		Analytics:      plausible,
		DemoMiddleware: demoMiddleware,
		Version:        version,
	})
	return app, nil
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Local Library v%s", version)

	app, err := NewApp(cfg, version)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	log.Printf("Catalog store: %s", app.DB.Driver())
	if cfg.Admin.Enabled {
		log.Printf("WARNING: management API at /admin/api is enabled and has no authentication; keep it off public networks")
	} else {
		log.Printf("Management API is disabled (default). Set 'ADMIN_ENABLED=true' to expose /admin/api.")
	}

	Serve(app.Router, cfg, func(ctx context.Context) {
		app.Close()
	})
}
