package equivocation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagchain/equivocation/block"
	"github.com/dagchain/equivocation/view"
)

var (
	validatorA = block.Validator{0xA}
	validatorB = block.Validator{0xB}
	validatorC = block.Validator{0xC}
	validatorD = block.Validator{0xD}
	validatorE = block.Validator{0xE}
)

func bonded(pairs ...interface{}) block.Bonds {
	b := block.Bonds{}
	for i := 0; i < len(pairs); i += 2 {
		b[pairs[i].(block.Validator)] = pairs[i+1].(uint64)
	}
	return b
}

// TestDiscoverStatusBondDrop: a dropped equivocator is always Detected,
// independent of justifications.
func TestDiscoverStatusBondDrop(t *testing.T) {
	v := view.NewMemoryView()
	rec, _ := NewStore().Insert(validatorA, 1)

	e6 := block.Block{
		Hash:   block.Hash{0x66},
		Sender: validatorE,
		SeqNum: 1,
		Bonds:  bonded(validatorE, uint64(10)),
	}

	status, err := discoverStatus(context.Background(), v, newWalkBudget(0), rec, e6)
	require.NoError(t, err)
	assert.Equal(t, statusDetected, status)
}

func TestDiscoverStatusZeroStakeIsDetected(t *testing.T) {
	v := view.NewMemoryView()
	rec, _ := NewStore().Insert(validatorA, 1)

	b := block.Block{
		Hash:   block.Hash{0x10},
		Sender: validatorC,
		SeqNum: 1,
		Bonds:  bonded(validatorA, uint64(0)),
	}

	status, err := discoverStatus(context.Background(), v, newWalkBudget(0), rec, b)
	require.NoError(t, err)
	assert.Equal(t, statusDetected, status)
}

// TestDiscoverStatusOblivious: only one branch reachable, so the
// equivocation cannot yet be proven.
func TestDiscoverStatusOblivious(t *testing.T) {
	v := view.NewMemoryView()
	a1 := block.Block{Hash: block.Hash{0x01}, Sender: validatorA, SeqNum: 1}
	a2 := block.Block{
		Hash: block.Hash{0x02}, Sender: validatorA, SeqNum: 2,
		Justifications: []block.Justification{{Validator: validatorA, Hash: a1.Hash}},
	}
	v.AddBlock(a1)
	v.AddBlock(a2)

	rec, _ := NewStore().Insert(validatorA, 1)

	c3 := block.Block{
		Hash:   block.Hash{0x03},
		Sender: validatorC,
		SeqNum: 1,
		Justifications: []block.Justification{
			{Validator: validatorA, Hash: a2.Hash},
		},
		Bonds: bonded(validatorA, uint64(10), validatorC, uint64(10)),
	}

	status, err := discoverStatus(context.Background(), v, newWalkBudget(0), rec, c3)
	require.NoError(t, err)
	assert.Equal(t, statusOblivious, status)
}

// TestDiscoverStatusDetected: two distinct seq-2 children of A are
// reachable through different justification paths.
func TestDiscoverStatusDetected(t *testing.T) {
	v := view.NewMemoryView()
	a1 := block.Block{Hash: block.Hash{0x01}, Sender: validatorA, SeqNum: 1}
	a2 := block.Block{
		Hash: block.Hash{0x02}, Sender: validatorA, SeqNum: 2,
		Justifications: []block.Justification{{Validator: validatorA, Hash: a1.Hash}},
	}
	a2Prime := block.Block{
		Hash: block.Hash{0x12}, Sender: validatorA, SeqNum: 2,
		Justifications: []block.Justification{{Validator: validatorA, Hash: a1.Hash}},
	}
	b1 := block.Block{
		Hash: block.Hash{0x20}, Sender: validatorB, SeqNum: 1,
		Justifications: []block.Justification{{Validator: validatorA, Hash: a2Prime.Hash}},
	}
	for _, b := range []block.Block{a1, a2, a2Prime, b1} {
		v.AddBlock(b)
	}

	rec, _ := NewStore().Insert(validatorA, 1)

	c4 := block.Block{
		Hash:   block.Hash{0x04},
		Sender: validatorC,
		SeqNum: 1,
		Justifications: []block.Justification{
			{Validator: validatorA, Hash: a2.Hash},
			{Validator: validatorB, Hash: b1.Hash},
		},
		Bonds: bonded(validatorA, uint64(10), validatorC, uint64(10)),
	}

	status, err := discoverStatus(context.Background(), v, newWalkBudget(0), rec, c4)
	require.NoError(t, err)
	assert.Equal(t, statusDetected, status)
}

func TestDiscoverStatusShortcutsOnKnownWitness(t *testing.T) {
	v := view.NewMemoryView()
	witnessHash := block.Hash{0x99}
	store := NewStore()
	store.Insert(validatorA, 1)
	rec := store.addWitness(RecordKey{Equivocator: validatorA, BaseSeqNum: 1}, witnessHash)

	d5 := block.Block{
		Hash:   block.Hash{0x05},
		Sender: validatorD,
		SeqNum: 1,
		Justifications: []block.Justification{
			{Validator: validatorC, Hash: witnessHash},
		},
		Bonds: bonded(validatorA, uint64(10), validatorD, uint64(10)),
	}

	status, err := discoverStatus(context.Background(), v, newWalkBudget(0), rec, d5)
	require.NoError(t, err)
	assert.Equal(t, statusNeglected, status)
}

func TestDiscoverStatusMissingEquivocatorJustificationIsFatal(t *testing.T) {
	v := view.NewMemoryView()
	rec, _ := NewStore().Insert(validatorA, 1)

	other := block.Block{Hash: block.Hash{0x30}, Sender: validatorC, SeqNum: 1}
	v.AddBlock(other)

	b := block.Block{
		Hash:   block.Hash{0x31},
		Sender: validatorD,
		SeqNum: 1,
		Justifications: []block.Justification{
			{Validator: validatorC, Hash: other.Hash},
		},
		Bonds: bonded(validatorA, uint64(10), validatorD, uint64(10)),
	}

	_, err := discoverStatus(context.Background(), v, newWalkBudget(0), rec, b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingEquivocatorJustification))
}

func TestWalkBudgetExceeded(t *testing.T) {
	budget := newWalkBudget(1)
	require.NoError(t, budget.consume())
	assert.ErrorIs(t, budget.consume(), ErrWalkDepthExceeded)
}

func TestWalkBudgetUnlimited(t *testing.T) {
	budget := newWalkBudget(0)
	for i := 0; i < 1000; i++ {
		require.NoError(t, budget.consume())
	}
}
