package equivocation

import (
	"github.com/dagchain/equivocation/block"
	"github.com/dagchain/equivocation/view"
)

// Classification is the outcome of classifying a fresh block against the
// local view, before any neglect check runs.
type Classification int

const (
	// Valid means the block linearly extends its creator's known chain.
	Valid Classification = iota
	// AdmissibleEquivocation means the block equivocates its creator's
	// chain, but was already requested as a dependency and so must be
	// accommodated.
	AdmissibleEquivocation
	// IgnorableEquivocation means the block equivocates its creator's
	// chain and nothing local depends on it; it should be discarded.
	IgnorableEquivocation
)

// String renders the classification for logs.
func (c Classification) String() string {
	switch c {
	case Valid:
		return "valid"
	case AdmissibleEquivocation:
		return "admissible_equivocation"
	case IgnorableEquivocation:
		return "ignorable_equivocation"
	default:
		return "unknown"
	}
}

// ClassifyLocal decides whether b constitutes an equivocation by its
// creator relative to what the local node has already seen, and if so,
// whether that equivocation is admissible. It depends only on b's
// justifications, b.Sender, the latest-message index, and the
// dependency DAG -- it never touches the record store and never
// fetches a block, so it cannot fail.
func ClassifyLocal(v view.View, b block.Block) Classification {
	creatorJust, hasCreatorJust := b.CreatorJustification()

	latest := v.LatestMessages()
	localLatest, hasLocalLatest := latest[b.Sender]

	if justificationsMatch(creatorJust, hasCreatorJust, localLatest, hasLocalLatest) {
		log.Debugf("classify: block=%s sender=%s -> valid", b.Hash, b.Sender)
		return Valid
	}

	if v.IsRequestedAsDependency(b.Hash) {
		log.Infof("classify: block=%s sender=%s -> admissible equivocation", b.Hash, b.Sender)
		return AdmissibleEquivocation
	}
	log.Infof("classify: block=%s sender=%s -> ignorable equivocation", b.Hash, b.Sender)
	return IgnorableEquivocation
}

// justificationsMatch implements "j == m, including both absent".
func justificationsMatch(j block.Hash, hasJ bool, m block.Hash, hasM bool) bool {
	if hasJ != hasM {
		return false
	}
	if !hasJ {
		return true
	}
	return j == m
}
