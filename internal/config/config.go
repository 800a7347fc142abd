package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Catalog
		Admin
		Demo
		Audit
		Analytics
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver       string // "sqlite" or "postgres"
		Path         string // SQLite file path
		DSN          string // Postgres connection string
		LogLevel     string // silent, error, warn, info
		MaxOpenConns int
	}
	Catalog struct {
		SearchTerm string // Word counted in book titles on the landing page
	}
	Admin struct {
		Enabled bool // Expose the unauthenticated management API under /admin/api
	}
	Demo struct {
		Enabled bool // Serve a seeded, read-only catalog
	}
	Audit struct {
		Dir           string // Directory for copies of import documents; empty disables
		RetentionDays int    // Days of admin history to keep; 0 keeps everything
		PruneSchedule string // Cron schedule for history pruning
	}
	Analytics struct {
		PlausibleDomain     string // Site domain reported to Plausible; empty disables
		PlausibleScriptURL  string
		PlausibleExtensions string // Comma-separated script extensions
	}
)

// loadDotEnv reads a .env file from the working directory if one exists.
// Variables already present in the environment win.
func loadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Printf("WARNING: failed to load .env: %v", err)
	}
}

func NewConfig() *Config {
	loadDotEnv()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	// Database defaults
	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("database_max_open_conns", 10)

	v.SetDefault("catalog_search_term", DefaultSearchTerm)
	v.SetDefault("admin_enabled", false)
	v.SetDefault("demo_mode", false)

	v.SetDefault("audit_dir", "")
	v.SetDefault("audit_retention_days", 0)
	v.SetDefault("audit_prune_schedule", DefaultPruneSchedule)

	v.SetDefault("plausible_domain", "")
	v.SetDefault("plausible_script_url", "")
	v.SetDefault("plausible_extensions", "")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:       v.GetString("DATABASE_DRIVER"),
			Path:         v.GetString("DATABASE_PATH"),
			DSN:          v.GetString("DATABASE_DSN"),
			LogLevel:     v.GetString("DATABASE_LOG_LEVEL"),
			MaxOpenConns: v.GetInt("DATABASE_MAX_OPEN_CONNS"),
		},
		Catalog: Catalog{
			SearchTerm: v.GetString("CATALOG_SEARCH_TERM"),
		},
		Admin: Admin{
			Enabled: v.GetBool("ADMIN_ENABLED"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
		Audit: Audit{
			Dir:           v.GetString("AUDIT_DIR"),
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
			PruneSchedule: v.GetString("AUDIT_PRUNE_SCHEDULE"),
		},
		Analytics: Analytics{
			PlausibleDomain:     v.GetString("PLAUSIBLE_DOMAIN"),
			PlausibleScriptURL:  v.GetString("PLAUSIBLE_SCRIPT_URL"),
			PlausibleExtensions: v.GetString("PLAUSIBLE_EXTENSIONS"),
		},
	}
}

// SQLiteDatabase returns a Database config for a local SQLite file, used by
// CLI commands and tests.
func SQLiteDatabase(path string) Database {
	return Database{
		Driver:       DriverSQLite,
		Path:         path,
		LogLevel:     "silent",
		MaxOpenConns: 1,
	}
}
