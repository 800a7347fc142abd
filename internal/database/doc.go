// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into kind-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres) and migrations
//	├── dberr/           # Driver error translation into catalog errors
//	├── genres/          # Genre lookup table
//	├── languages/       # Language lookup table
//	├── authors/         # Authors and their lifespans
//	├── books/           # Books with genre and language links
//	├── instances/       # Book copies and loan state
//	├── counts/          # Aggregate counts built with goqu
//	├── audit/           # Admin change history
//	└── stores/          # Bundles the repositories for services
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type implementing one catalog store:
//
//	db, err := database.NewDatabase(config.SQLiteDatabase("./locallibrary.db"))
//
//	genresRepo := genres.NewRepository(db.DB)
//	booksRepo := books.NewRepository(db.DB)
//
//	err = genresRepo.Create(ctx, &entities.Genre{Name: "Gothic"})
//
// Errors returned by repositories wrap the catalog error kinds
// (catalog.ErrNotFound, catalog.ErrUniquenessViolation and friends) so
// callers can match them with errors.Is regardless of the driver.
//
// # Adding a New Kind
//
//  1. Create a new sub-package: internal/database/<kind>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the catalog store interface
//  5. Add compile-time interface check in internal/interfaces/checks.go
package database
