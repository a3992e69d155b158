// Package view declares the narrow interfaces this module consumes from
// the enclosing node -- block storage, the latest-message index, and the
// pending-block dependency DAG -- and ships one in-memory implementation,
// MemoryView, for tests and for callers that want a reference adapter
// before wiring up their own store.
//
// Nothing in this package is required in production: a real node backs
// View with its own block store, latest-message index, and block buffer.
package view
