package equivocation

import (
	"context"

	"github.com/dagchain/equivocation/block"
	"github.com/dagchain/equivocation/view"
)

// Detector is the public entry point of this core: one per node, it
// owns the outstanding-equivocation Store and ties the classifier and
// the neglect scan to a concrete view of the local node's state. A zero
// Detector is not usable; construct one with NewDetector.
type Detector struct {
	store  *Store
	view   view.View
	config Config
}

// NewDetector builds a Detector over v using the given Store and
// Config. The Store is exposed separately (rather than hidden inside
// Detector) because external recovery logic -- restoring records after
// a restart, say -- legitimately needs direct access to it.
func NewDetector(v view.View, store *Store, config Config) *Detector {
	return &Detector{store: store, view: v, config: config}
}

// Store returns the Detector's underlying equivocation record store.
func (d *Detector) Store() *Store {
	return d.store
}

// ClassifyLocal classifies a freshly received block against the local
// view. See ClassifyLocal for the decision it implements; this method
// only threads the Detector's view through.
func (d *Detector) ClassifyLocal(b block.Block) Classification {
	return ClassifyLocal(d.view, b)
}

// RecordEquivocation registers that validator equivocated at baseSeqNum,
// creating a new outstanding record if one does not already exist. It is
// the caller's responsibility to have first classified the triggering
// block as AdmissibleEquivocation; RecordEquivocation itself does not
// re-derive that judgment.
func (d *Detector) RecordEquivocation(validator block.Validator, baseSeqNum block.SeqNum) *EquivocationRecord {
	rec, _ := d.store.Insert(validator, baseSeqNum)
	return rec
}

// CheckNeglect runs the neglect scan against every outstanding record,
// using b as the candidate witness. Records that already list b as a
// witness are skipped; for every other record:
//
//   - if the equivocator is dropped from b's bonds or bonded with zero
//     stake, or b's justifications assemble two distinct equivocation
//     children, b is recorded as a witness and the scan continues;
//   - if one of b's justifications is already a known witness, b had
//     the evidence and did not act on it: CheckNeglect reports the
//     neglect as a *NeglectedEquivocationError;
//   - otherwise the record is left untouched for this pass.
//
// Each record gets its own walk budget of Config.MaxWalkDepth.
// CheckNeglect takes a stable Snapshot of the store before scanning, so
// records inserted concurrently during the scan are picked up by the
// next call rather than this one.
func (d *Detector) CheckNeglect(ctx context.Context, b block.Block) error {
	for _, rec := range d.store.Snapshot() {
		if rec.HasWitness(b.Hash) {
			continue
		}

		budget := newWalkBudget(d.config.MaxWalkDepth)
		status, err := discoverStatus(ctx, d.view, budget, rec, b)
		if err != nil {
			return err
		}

		switch status {
		case statusNeglected:
			log.Warningf("neglect: block=%s failed to report equivocation by validator=%s base_seqnum=%d",
				b.Hash, rec.Equivocator, rec.BaseSeqNum)
			return &NeglectedEquivocationError{
				BlockHash:   b.Hash,
				Equivocator: rec.Equivocator,
				BaseSeqNum:  rec.BaseSeqNum,
			}
		case statusDetected:
			key := RecordKey{Equivocator: rec.Equivocator, BaseSeqNum: rec.BaseSeqNum}
			d.store.addWitness(key, b.Hash)
		case statusOblivious:
			// b's cone does not yet reach the equivocation; nothing to do.
		}
	}
	return nil
}
