// Package store provides the SQLite-backed label index.
//
// The index records, per label, the metadata needed to recover a secret
// without retyping it: storage mode, secret length, growth factor, word
// mode, KDF and file name. It is a convenience layer - losing the index
// never loses a secret, because every value it supplies can also be given
// on the command line.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Entry IDs are UUIDs assigned on first insert; labels are unique and a
// re-make of the same label updates the existing row in place.
package store
