// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - GenreStore, LanguageStore: Named lookup tables (internal/catalog/store.go)
//   - AuthorStore: Authors and their lifespans (internal/catalog/store.go)
//   - BookStore: Books with genre and language links (internal/catalog/store.go)
//   - BookInstanceStore: Physical copies and loan state (internal/catalog/store.go)
//   - Counter: Aggregate counts by kind and predicate (internal/catalog/store.go)
//
// ## HTTP Dependencies
//
//   - Pinger: Store health probe (internal/http/stores.go)
//   - SummaryBuilder: Landing page counts (internal/http/stores.go)
//   - ChangeRecorder: Admin change history (internal/http/stores.go)
//   - PayloadAuditor: Copies of import documents (internal/http/stores.go)
//
// ## Background Jobs
//
//   - Pruner: Deletes old history entries (internal/scheduler/history_prune.go)
//
// # Adding a New Catalog Kind
//
//  1. Add the entity to internal/entities/catalog.go and to AllModels
//
//  2. Register the kind and its attributes in internal/catalog/kinds.go
//
//  3. Create sub-package: internal/database/<kind>/
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  4. Map the table in internal/database/counts so it can be counted
//
//  5. Add a Registration to admin.DefaultSite and a resource builder in
//     internal/http/admin.go
//
//  6. Add compile-time check:
//
//     var _ catalog.<Kind>Store = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
