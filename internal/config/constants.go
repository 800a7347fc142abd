package config

// Default paths and values
const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./locallibrary.db"

	// DefaultSearchTerm is the word counted in book titles on the landing page
	DefaultSearchTerm = "dahlia"

	// DefaultPruneSchedule runs history pruning daily at 03:00
	DefaultPruneSchedule = "0 3 * * *"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)
