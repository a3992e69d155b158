// Package block defines the read-only data model consumed by the
// equivocation detection core: validator identities, block hashes,
// and the block shape itself (sender, sequence number, justifications,
// bonds).
//
// Everything here is a value type. The package does not fetch, store,
// or validate blocks -- that is the job of the block store and DAG
// external to this module (see package view). A block.Block is only
// ever handed to this module by the caller; nothing constructs one
// from raw network bytes.
package block
