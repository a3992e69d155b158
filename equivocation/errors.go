package equivocation

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/dagchain/equivocation/block"
)

// Sentinel errors for the fatal protocol inconsistencies detected in this
// package (a missing block is reported by package justification as
// justification.ErrMissingBlock), the neglect finding itself, and an
// exhausted walk budget. Compare with errors.Is; except for
// ErrWalkDepthExceeded, which is returned bare, each has a concrete
// *Error type carrying the detail needed to act on the failure (which
// hash, which validator, which sequence number).
var (
	ErrMissingEquivocatorJustification = fmt.Errorf("equivocation: block has neither a witness nor a justification for the equivocator")
	ErrMissingBranchAncestor           = fmt.Errorf("equivocation: no ancestor at the base+1 sequence number")
	ErrNeglectedEquivocation           = fmt.Errorf("equivocation: block neglected to report a detectable equivocation")
	ErrWalkDepthExceeded               = fmt.Errorf("equivocation: justification walk exceeded configured depth")
)

// MissingEquivocatorJustificationError reports that, while walking a
// justification cone looking for evidence against validator E, a block
// authored by someone other than E carried no justification entry for
// E at all. Per the protocol, every block must name its author's view
// of every other validator, so this is fatal: it means local storage
// disagrees with its own invariants.
type MissingEquivocatorJustificationError struct {
	BlockHash block.Hash
	Validator block.Validator
}

func (e *MissingEquivocatorJustificationError) Error() string {
	return fmt.Sprintf("%s: block %s, validator %s", ErrMissingEquivocatorJustification, e.BlockHash, e.Validator)
}

func (e *MissingEquivocatorJustificationError) Unwrap() error {
	return ErrMissingEquivocatorJustification
}

func newMissingEquivocatorJustificationError(blockHash block.Hash, validator block.Validator) error {
	return errors.WithStack(&MissingEquivocatorJustificationError{BlockHash: blockHash, Validator: validator})
}

// MissingBranchAncestorError reports that walking a candidate equivocation
// child's creator-justification chain downward never reached the target
// sequence number. The base+1 block on every branch is supposed to
// already be admitted locally by the time this walk runs, so this is
// fatal.
type MissingBranchAncestorError struct {
	BlockHash    block.Hash
	TargetSeqNum block.SeqNum
}

func (e *MissingBranchAncestorError) Error() string {
	return fmt.Sprintf("%s: block %s, target seqnum %d", ErrMissingBranchAncestor, e.BlockHash, e.TargetSeqNum)
}

func (e *MissingBranchAncestorError) Unwrap() error {
	return ErrMissingBranchAncestor
}

func newMissingBranchAncestorError(blockHash block.Hash, targetSeqNum block.SeqNum) error {
	return errors.WithStack(&MissingBranchAncestorError{BlockHash: blockHash, TargetSeqNum: targetSeqNum})
}

// NeglectedEquivocationError reports that block b's justification cone
// already proved an outstanding equivocation without b's author
// escalating it. It carries enough detail to identify the neglected
// record for the caller's validation-failure report.
type NeglectedEquivocationError struct {
	BlockHash   block.Hash
	Equivocator block.Validator
	BaseSeqNum  block.SeqNum
}

func (e *NeglectedEquivocationError) Error() string {
	return fmt.Sprintf("%s: block %s neglected equivocation by %s at base seqnum %d",
		ErrNeglectedEquivocation, e.BlockHash, e.Equivocator, e.BaseSeqNum)
}

func (e *NeglectedEquivocationError) Unwrap() error {
	return ErrNeglectedEquivocation
}
