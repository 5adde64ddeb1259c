// Package store provides SQLite-backed durable storage for the conveyor
// engineering catalog.
//
// The store holds:
//   - Belts: belt catalog rows plus their optional material profiles
//   - Pulleys: pulley catalog rows with station eligibility flags
//   - Gearmotors: vendor gearmotor performance points
//   - Selection Runs: an audit record per gearmotor selection invocation
//
// # Critical Patterns
//
// Fail-closed writes: every catalog upsert re-runs the admin validators
// from internal/catalog before touching the database. A row that violates
// a catalog-write rule (for example an INTERNAL_BEARINGS pulley claiming
// head-drive eligibility) is rejected with the full accumulated violation
// list; the pulley filter re-derives the same constraint again at
// evaluation time, so a row smuggled in around the store still cannot be
// mis-selected.
//
// Deterministic reads: all list queries order by catalog_key (or
// part_number) COLLATE BINARY ASC so repeated reads feed the engines the
// same candidate order, which the stable ranking laws depend on.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
