package view

import (
	"context"
	"sync"

	"github.com/dagchain/equivocation/block"
)

// MemoryView is an in-memory, mutex-guarded reference implementation of
// View. It exists for tests and for small tools that want to drive the
// equivocation core without a real block store.
type MemoryView struct {
	mu        sync.RWMutex
	blocks    map[block.Hash]block.Block
	latest    map[block.Validator]block.Hash
	requested map[block.Hash]bool
}

// NewMemoryView returns an empty MemoryView.
func NewMemoryView() *MemoryView {
	return &MemoryView{
		blocks:    make(map[block.Hash]block.Block),
		latest:    make(map[block.Validator]block.Hash),
		requested: make(map[block.Hash]bool),
	}
}

// AddBlock admits a block into the view so it can be fetched by hash.
// It does not touch the latest-message index; callers drive that
// separately with SetLatestMessage, which lets tests construct
// equivocating histories deliberately.
func (v *MemoryView) AddBlock(b block.Block) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.blocks[b.Hash] = b
}

// SetLatestMessage sets the local view's latest known block for val.
func (v *MemoryView) SetLatestMessage(val block.Validator, hash block.Hash) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.latest[val] = hash
}

// MarkRequested records that some pending block has declared hash as a
// dependency it is waiting on.
func (v *MemoryView) MarkRequested(hash block.Hash) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.requested[hash] = true
}

// FetchBlock implements view.BlockStore.
func (v *MemoryView) FetchBlock(ctx context.Context, hash block.Hash) (block.Block, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	b, ok := v.blocks[hash]
	if !ok {
		return block.Block{}, ErrBlockNotFound
	}
	return b, nil
}

// LatestMessages implements view.LatestMessageIndex.
func (v *MemoryView) LatestMessages() map[block.Validator]block.Hash {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make(map[block.Validator]block.Hash, len(v.latest))
	for k, val := range v.latest {
		out[k] = val
	}
	return out
}

// IsRequestedAsDependency implements view.DependencyDAG.
func (v *MemoryView) IsRequestedAsDependency(hash block.Hash) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.requested[hash]
}
