package justification

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dagchain/equivocation/block"
	"github.com/dagchain/equivocation/view"
)

// VisitFunc is called once per direct justification of the root block,
// in order. It decides for itself whether j's block needs fetching at
// all (via Fetch) -- Walk does not fetch eagerly, so a visitor that can
// answer its question from j.Hash alone (a known-witness shortcut, for
// instance) never pays for a fetch. It returns stop=true to end the
// walk early, or a non-nil err to abort the walk entirely.
type VisitFunc func(ctx context.Context, store view.BlockStore, cache map[block.Hash]block.Block, j block.Justification) (stop bool, err error)

// Walk folds visit over root's justifications (not root itself), one
// hop at a time, in order. It is an explicit iterative loop rather than
// recursion so that a deep or wide DAG cannot grow the call stack.
// Walk itself never touches the block store; it exists to fix the
// traversal order and the early-stop/abort protocol, leaving "fetch on
// demand" entirely to visit.
func Walk(ctx context.Context, store view.BlockStore, root block.Block, cache map[block.Hash]block.Block, visit VisitFunc) error {
	for _, j := range root.Justifications {
		stop, err := visit(ctx, store, cache, j)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
	return nil
}

// Fetch resolves a single hash, preferring cache over store, and turns a
// store-level error into a MissingBlockError.
// Visitors call it when they've decided they actually need the block.
func Fetch(ctx context.Context, store view.BlockStore, cache map[block.Hash]block.Block, hash block.Hash) (block.Block, error) {
	return fetch(ctx, store, cache, hash)
}

func fetch(ctx context.Context, store view.BlockStore, cache map[block.Hash]block.Block, hash block.Hash) (block.Block, error) {
	if cache != nil {
		if b, ok := cache[hash]; ok {
			return b, nil
		}
	}
	b, err := store.FetchBlock(ctx, hash)
	if err != nil {
		return block.Block{}, newMissingBlockError(hash)
	}
	return b, nil
}

// PrefetchJustifications concurrently warms the block store for every
// distinct hash named by justs, returning a cache keyed by hash.
//
// It is not used by the neglect detector's own scan: that scan's
// witness shortcut only pays off if a justification can be skipped
// without ever being fetched, and prefetching everything up front would
// defeat that. Callers that already know they're about to resolve every
// justification regardless -- warming the store ahead of a batch of
// ClassifyLocal calls on a freshly received block, for instance -- can
// use this to fan the first-hop fetches out in parallel the way the
// enclosing engine already fans out independent block-store I/O
// (compare its block-sync peer fetches).
func PrefetchJustifications(ctx context.Context, store view.BlockStore, justs []block.Justification) (map[block.Hash]block.Block, error) {
	seen := make(map[block.Hash]bool, len(justs))
	var unique []block.Hash
	for _, j := range justs {
		if !seen[j.Hash] {
			seen[j.Hash] = true
			unique = append(unique, j.Hash)
		}
	}
	if len(unique) == 0 {
		return map[block.Hash]block.Block{}, nil
	}

	type fetched struct {
		hash block.Hash
		blk  block.Block
	}
	results := make([]fetched, len(unique))

	g, gctx := errgroup.WithContext(ctx)
	for i, h := range unique {
		i, h := i, h
		g.Go(func() error {
			b, err := store.FetchBlock(gctx, h)
			if err != nil {
				return newMissingBlockError(h)
			}
			results[i] = fetched{hash: h, blk: b}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cache := make(map[block.Hash]block.Block, len(results))
	for _, r := range results {
		cache[r.hash] = r.blk
	}
	return cache, nil
}
