package block

// SeqNum is a validator's personal, monotonic sequence number. The
// genesis block of a validator's chain has SeqNum 0.
type SeqNum uint64

// Justification names the latest block the creator of a block had seen
// from a given validator at creation time. A block carries at most one
// Justification per validator.
type Justification struct {
	Validator Validator
	Hash      Hash
}

// Block is the read-only view of a block this core consumes. It never
// mutates a Block it is handed; storage, gossip, and validation of the
// wider block format are the concern of the enclosing node.
type Block struct {
	Hash           Hash
	Sender         Validator
	SeqNum         SeqNum
	Justifications []Justification
	Bonds          Bonds
}

// CreatorJustification returns the entry in Justifications whose
// validator equals b.Sender -- the block the creator last saw from
// itself -- and whether such an entry exists at all (the genesis block
// of a chain has none).
func (b Block) CreatorJustification() (Hash, bool) {
	for _, j := range b.Justifications {
		if j.Validator == b.Sender {
			return j.Hash, true
		}
	}
	return Hash{}, false
}

// JustificationFor returns the hash a block named as its latest-known
// block from validator v, and whether such an entry exists.
func (b Block) JustificationFor(v Validator) (Hash, bool) {
	for _, j := range b.Justifications {
		if j.Validator == v {
			return j.Hash, true
		}
	}
	return Hash{}, false
}
