package view

import (
	"context"
	"testing"

	"github.com/dagchain/equivocation/block"
)

func TestMemoryViewRoundTrip(t *testing.T) {
	v := NewMemoryView()
	val := block.Validator{1}
	h := block.Hash{2}
	b := block.Block{Hash: h, Sender: val, SeqNum: 1}

	v.AddBlock(b)
	v.SetLatestMessage(val, h)
	v.MarkRequested(h)

	got, err := v.FetchBlock(context.Background(), h)
	if err != nil {
		t.Fatalf("FetchBlock failed: %v", err)
	}
	if got.Hash != h {
		t.Errorf("got hash %v, want %v", got.Hash, h)
	}

	latest := v.LatestMessages()
	if latest[val] != h {
		t.Errorf("latest message mismatch: got %v, want %v", latest[val], h)
	}

	if !v.IsRequestedAsDependency(h) {
		t.Error("expected h to be marked as requested")
	}
	if v.IsRequestedAsDependency(block.Hash{9}) {
		t.Error("unrelated hash should not be requested")
	}
}

func TestMemoryViewFetchMissing(t *testing.T) {
	v := NewMemoryView()
	if _, err := v.FetchBlock(context.Background(), block.Hash{1}); err != ErrBlockNotFound {
		t.Errorf("expected ErrBlockNotFound, got %v", err)
	}
}
