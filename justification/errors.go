package justification

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/dagchain/equivocation/block"
)

// ErrMissingBlock is the sentinel wrapped by every MissingBlockError.
// Callers that only care about the category should compare with
// errors.Is(err, justification.ErrMissingBlock).
var ErrMissingBlock = fmt.Errorf("justification: missing block")

// MissingBlockError reports that a justification hash could not be
// resolved against the block store. It is fatal: the enclosing pipeline
// only walks blocks whose justifications are supposed to already be
// admitted, so this indicates corrupt storage or a protocol bug upstream.
type MissingBlockError struct {
	Hash block.Hash
}

func (e *MissingBlockError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingBlock, e.Hash)
}

// Unwrap lets errors.Is(err, ErrMissingBlock) succeed.
func (e *MissingBlockError) Unwrap() error {
	return ErrMissingBlock
}

// newMissingBlockError wraps a MissingBlockError with a stack trace
// captured at the fetch site, so an operator staring at a log line can
// tell which walk produced the inconsistency.
func newMissingBlockError(hash block.Hash) error {
	return errors.WithStack(&MissingBlockError{Hash: hash})
}
