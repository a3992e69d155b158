package view

import (
	"context"

	"github.com/dagchain/equivocation/block"
)

// BlockStore is a blocking, byte-addressable lookup of blocks already
// admitted to the local view. Fetching a hash that is unknown is an
// error -- this module never distinguishes "not yet fetched" from
// "does not exist"; it is the caller's job to only hand this module
// blocks whose justification cones are fully resolved.
type BlockStore interface {
	FetchBlock(ctx context.Context, hash block.Hash) (block.Block, error)
}

// LatestMessageIndex exposes the local node's current per-validator
// latest-message view.
type LatestMessageIndex interface {
	// LatestMessages returns the hash of the most recent known block from
	// each validator. A validator absent from the map has not been seen.
	LatestMessages() map[block.Validator]block.Hash
}

// DependencyDAG answers whether some not-yet-admitted block has already
// declared hash as a dependency it is waiting on.
type DependencyDAG interface {
	IsRequestedAsDependency(hash block.Hash) bool
}

// View aggregates the three external collaborators the classifier and
// neglect detector need. A real node typically satisfies it with three
// different subsystems behind one small adapter struct.
type View interface {
	BlockStore
	LatestMessageIndex
	DependencyDAG
}
