package equivocation

import (
	"context"

	"github.com/emirpasic/gods/sets/hashset"

	"github.com/dagchain/equivocation/block"
	"github.com/dagchain/equivocation/justification"
	"github.com/dagchain/equivocation/view"
)

// discoveryStatus is the per-record verdict computed against one new
// block: first a bond check, then a reachability scan.
type discoveryStatus int

const (
	statusOblivious discoveryStatus = iota
	statusDetected
	statusNeglected
)

// walkBudget bounds the total number of block resolutions (fetches or
// cache hits) a single discoverStatus call may perform, guarding against
// a pathological justification cone turning one CheckNeglect call into
// an unbounded scan. A zero max means unlimited.
type walkBudget struct {
	remaining int
	unlimited bool
}

func newWalkBudget(max int) *walkBudget {
	if max <= 0 {
		return &walkBudget{unlimited: true}
	}
	return &walkBudget{remaining: max}
}

func (b *walkBudget) consume() error {
	if b.unlimited {
		return nil
	}
	if b.remaining <= 0 {
		return ErrWalkDepthExceeded
	}
	b.remaining--
	return nil
}

// discoverStatus computes the discovery status of record r against
// block b: a dropped or zero-stake equivocator is always Detected;
// otherwise the outcome depends on whether b's justification cone can
// prove the equivocation.
func discoverStatus(ctx context.Context, v view.View, budget *walkBudget, r *EquivocationRecord, b block.Block) (discoveryStatus, error) {
	stake, bonded := b.Bonds.Stake(r.Equivocator)
	if !bonded {
		log.Infof("neglect: validator=%s dropped from bonds at block=%s -> detected", r.Equivocator, b.Hash)
		return statusDetected, nil
	}
	if stake == 0 {
		// Guarded defensively: a bonded validator with zero stake should
		// be impossible under the proof-of-stake contract, but a block
		// that nonetheless shows one is treated the same as a drop.
		log.Warningf("neglect: validator=%s bonded with zero stake at block=%s -> detected", r.Equivocator, b.Hash)
		return statusDetected, nil
	}

	proof, err := provable(ctx, v, budget, r, b)
	if err != nil {
		return 0, err
	}
	switch proof {
	case proofByWitness:
		// b's cone reaches a block already known to prove the
		// equivocation, yet b itself did not carry a witness -- the
		// evidence existed and b's author neglected to act on it.
		return statusNeglected, nil
	case proofByChildren:
		// b's cone assembles the proof itself, for the first time, from
		// two distinct fresh equivocation children. b becomes a witness.
		return statusDetected, nil
	default:
		return statusOblivious, nil
	}
}

// reachabilityProof distinguishes how (or whether) provable proved the
// equivocation: the two routes must be handled differently. A
// known-witness shortcut means b neglected evidence that already
// existed (Neglected), while assembling two fresh children means b is
// the first block to surface the evidence (Detected).
type reachabilityProof int

const (
	proofNone reachabilityProof = iota
	proofByWitness
	proofByChildren
)

// provable folds over b's justifications, maintaining a children set of
// distinct equivocation-child blocks, shortcutting on a known witness,
// and succeeding once two distinct children are found.
//
// The walk deliberately does not prefetch: the witness shortcut must be
// checked against j.Hash alone, before any block is fetched, or the
// shortcut stops saving the fetch it exists to save.
func provable(ctx context.Context, v view.View, budget *walkBudget, r *EquivocationRecord, b block.Block) (reachabilityProof, error) {
	children := hashset.New()
	cache := make(map[block.Hash]block.Block)

	proof := proofNone
	walkErr := justification.Walk(ctx, v, b, cache, func(ctx context.Context, store view.BlockStore, cache map[block.Hash]block.Block, j block.Justification) (bool, error) {
		if r.HasWitness(j.Hash) {
			proof = proofByWitness
			return true, nil
		}
		if err := budget.consume(); err != nil {
			return false, err
		}
		jb, err := justification.Fetch(ctx, store, cache, j.Hash)
		if err != nil {
			return false, err
		}
		if err := maybeAddEquivocationChild(ctx, v, cache, budget, r, jb, children); err != nil {
			return false, err
		}
		if children.Size() >= 2 {
			proof = proofByChildren
			return true, nil
		}
		return false, nil
	})
	if walkErr != nil {
		return proofNone, walkErr
	}
	return proof, nil
}

// maybeAddEquivocationChild decides whether jb (or the equivocator's
// latest block as named in jb's own justifications, if jb was authored
// by someone else) is a fresh equivocation child worth adding to the
// children set.
func maybeAddEquivocationChild(
	ctx context.Context,
	v view.View,
	cache map[block.Hash]block.Block,
	budget *walkBudget,
	r *EquivocationRecord,
	jb block.Block,
	children *hashset.Set,
) error {
	if jb.Sender == r.Equivocator {
		if jb.SeqNum > r.BaseSeqNum {
			return addEquivocationChild(ctx, v, cache, budget, r, jb, children)
		}
		return nil
	}

	lh, ok := jb.JustificationFor(r.Equivocator)
	if !ok {
		return newMissingEquivocatorJustificationError(jb.Hash, r.Equivocator)
	}

	if err := budget.consume(); err != nil {
		return err
	}
	lb, err := justification.Fetch(ctx, v, cache, lh)
	if err != nil {
		return err
	}
	if lb.SeqNum > r.BaseSeqNum {
		return addEquivocationChild(ctx, v, cache, budget, r, lb, children)
	}
	return nil
}

// addEquivocationChild canonicalizes candidate before adding it: walk
// candidate's creator-justification chain downward in sequence number
// until reaching baseSeqNum+1, and add that ancestor -- not candidate
// itself -- to children. Two blocks on the same branch above the base
// always canonicalize to the same ancestor, which is what makes
// children.Size() >= 2 equivalent to "two distinct branches observed".
func addEquivocationChild(
	ctx context.Context,
	v view.View,
	cache map[block.Hash]block.Block,
	budget *walkBudget,
	r *EquivocationRecord,
	candidate block.Block,
	children *hashset.Set,
) error {
	target := r.BaseSeqNum + 1
	cur := candidate

	for cur.SeqNum > target {
		cj, ok := cur.CreatorJustification()
		if !ok {
			return newMissingBranchAncestorError(candidate.Hash, target)
		}
		if err := budget.consume(); err != nil {
			return err
		}
		next, err := justification.Fetch(ctx, v, cache, cj)
		if err != nil {
			return err
		}
		cur = next
	}

	if cur.SeqNum != target {
		return newMissingBranchAncestorError(candidate.Hash, target)
	}

	children.Add(cur.Hash)
	return nil
}
