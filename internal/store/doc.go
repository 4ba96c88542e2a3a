// Package store provides persistent conversation state for flow-gateway
// using SQLite.
//
// # Data Model
//
// A single UserContext record exists per external user identifier. It carries
// the active flow, the step within that flow, a free-form variables map
// (JSON-encoded in the database), and the timestamp of the last successful
// update. Records are created lazily on a user's first message with the
// WELCOME/INIT defaults and are only ever removed in bulk by ResetContexts.
//
// # Atomicity
//
// The store owns the concurrency guarantees the flow engine relies on:
//
//   - GetOrCreateContext inserts with ON CONFLICT DO NOTHING against the
//     unique user_id index, so concurrent first messages cannot race-create
//     duplicate records.
//   - UpdateContext applies the partial merge in a single UPDATE statement,
//     so two near-simultaneous updates for one user serialize at the
//     database and each sees a consistent prior state.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//
// # Error Handling
//
// ErrNotFound is returned when an update targets a user with no record. All
// methods accept context.Context for cancellation support.
//
// # Testing
//
// Use NewMockStore() for unit tests; it implements Store with an in-memory
// map. Use NewSQLiteStore with a t.TempDir() path for integration tests
// against real SQLite.
package store
