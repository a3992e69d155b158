package equivocation

import (
	"fmt"
	"sync"

	"github.com/emirpasic/gods/sets/hashset"

	"github.com/dagchain/equivocation/block"
)

// RecordKey identifies an EquivocationRecord. At most one record exists
// per (equivocator, baseSeqNum) pair.
type RecordKey struct {
	Equivocator block.Validator
	BaseSeqNum  block.SeqNum
}

// EquivocationRecord is immutable once constructed: the neglect detector
// never mutates a record in place, only swaps it for a replacement with
// a larger witness set (see Store.addWitness). Reading a record obtained
// from Snapshot is therefore always safe without additional locking.
type EquivocationRecord struct {
	Equivocator block.Validator
	BaseSeqNum  block.SeqNum
	witnesses   *hashset.Set
}

// HasWitness reports whether hash is already known to prove this
// equivocation.
func (r *EquivocationRecord) HasWitness(hash block.Hash) bool {
	return r.witnesses.Contains(hash)
}

// Witnesses returns a defensive copy of the witness block hashes.
func (r *EquivocationRecord) Witnesses() []block.Hash {
	values := r.witnesses.Values()
	out := make([]block.Hash, 0, len(values))
	for _, v := range values {
		out = append(out, v.(block.Hash))
	}
	return out
}

// String renders the record for logs and panics.
func (r *EquivocationRecord) String() string {
	return fmt.Sprintf("equivocation(validator=%s base_seqnum=%d witnesses=%d)",
		r.Equivocator, r.BaseSeqNum, r.witnesses.Size())
}

// Store is the in-memory set of outstanding equivocations. Its zero
// value is not usable; construct one with NewStore. All operations are
// safe for concurrent use: Snapshot gives a detection pass a stable
// view to iterate while other passes or insertions proceed concurrently.
type Store struct {
	mu      sync.RWMutex
	records map[RecordKey]*EquivocationRecord
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{records: make(map[RecordKey]*EquivocationRecord)}
}

// Insert creates a new record for (equivocator, baseSeqNum) with an
// empty witness set, unless one already exists. It returns the record
// (new or pre-existing) and whether it was newly created. This is the
// only way a record comes into being; the neglect detector only ever
// grows a record's witnesses.
func (s *Store) Insert(equivocator block.Validator, baseSeqNum block.SeqNum) (*EquivocationRecord, bool) {
	key := RecordKey{Equivocator: equivocator, BaseSeqNum: baseSeqNum}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.records[key]; ok {
		return existing, false
	}

	rec := &EquivocationRecord{
		Equivocator: equivocator,
		BaseSeqNum:  baseSeqNum,
		witnesses:   hashset.New(),
	}
	s.records[key] = rec
	log.Infof("equivocation recorded: validator=%s base_seqnum=%d", equivocator, baseSeqNum)
	return rec, true
}

// Get returns the record for (equivocator, baseSeqNum), if any.
func (s *Store) Get(equivocator block.Validator, baseSeqNum block.SeqNum) (*EquivocationRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[RecordKey{Equivocator: equivocator, BaseSeqNum: baseSeqNum}]
	return r, ok
}

// Snapshot returns a stable view of all records for a single detection
// pass. Records inserted after Snapshot returns are not included; they
// will be visible to the next pass.
func (s *Store) Snapshot() []*EquivocationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*EquivocationRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	return out
}

// Size returns the number of outstanding records.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// addWitness atomically swaps the record at key for a copy whose
// witness set additionally contains hash. It returns the updated record,
// or nil if no record exists for key (which would itself be a caller
// bug: the neglect detector only calls this for records it just read
// from a Snapshot). The swap -- rather than mutating witnesses in
// place -- is what makes a concurrent Snapshot see one generation or
// the other, never a half-updated record.
func (s *Store) addWitness(key RecordKey, hash block.Hash) *EquivocationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.records[key]
	if !ok {
		return nil
	}

	newWitnesses := hashset.New(old.witnesses.Values()...)
	newWitnesses.Add(hash)

	updated := &EquivocationRecord{
		Equivocator: old.Equivocator,
		BaseSeqNum:  old.BaseSeqNum,
		witnesses:   newWitnesses,
	}
	s.records[key] = updated
	log.Infof("equivocation witness added: validator=%s base_seqnum=%d witness=%s", old.Equivocator, old.BaseSeqNum, hash)
	return updated
}
