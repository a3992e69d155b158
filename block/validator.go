package block

import "encoding/hex"

// Validator is an opaque, fixed-width validator identity.
type Validator [HashSize]byte

// String returns the hex encoding of the validator identity, for logs.
func (v Validator) String() string {
	return hex.EncodeToString(v[:])
}

// NewValidator builds a Validator from bytes, returning false if the
// length is wrong.
func NewValidator(data []byte) (Validator, bool) {
	var v Validator
	if len(data) != HashSize {
		return v, false
	}
	copy(v[:], data)
	return v, true
}

// Bonds maps a validator identity to its bonded stake as of a given block.
// A validator absent from Bonds is not part of the active set; a validator
// present with stake 0 is, per protocol, not supposed to happen but is
// handled defensively (see the neglect detector's bond check).
type Bonds map[Validator]uint64

// Stake returns the bonded stake for v and whether v is present at all.
func (b Bonds) Stake(v Validator) (stake uint64, bonded bool) {
	stake, bonded = b[v]
	return stake, bonded
}
