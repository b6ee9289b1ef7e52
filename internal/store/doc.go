// Package store persists draw snapshots locally, either as a JSON file or a
// SQLite database. Both backends share the same last-write-wins semantics:
// re-saving a draw number replaces the previous row.
package store
