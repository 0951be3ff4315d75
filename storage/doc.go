// Package storage defines the persistence contract consumed by the
// preferences model, plus the shared helpers every backend gets for free.
//
// Responsibilities:
//   - Adapter persists one scalar or list entry per setting, keyed by the
//     setting's breadcrumb string, inside an application-specific namespace.
//   - Load calls return the supplied default when a key is absent; a missing
//     key is a first run, never an error.
//   - Save calls are durable when they return, so the model can report
//     "settings saved" truthfully.
//
// Window geometry, divider position, and the last displayed category are
// composed from the same scalar calls under reserved keys, so backends only
// implement the five core operations.
//
// Implementations in this module:
//
//	storage/memory     map-backed, for tests and examples
//	storage/viperstore file-backed YAML via spf13/viper
//	storage/sqlitestore SQLite via modernc.org/sqlite
package storage
