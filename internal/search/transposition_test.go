package search

import (
	"testing"

	"github.com/brainit-consulting/chess-sub002/internal/board"
)

// TestStoreKeepsDeeperEntryOnCollision exercises the weight() replacement
// policy: a shallow probe must not evict a deeper result recorded in the
// same generation at the same slot.
func TestStoreKeepsDeeperEntryOnCollision(t *testing.T) {
	tt := NewTranspositionTable(1)
	hash := uint64(1) << 40 // arbitrary, fixed slot index 0 under a 1MB table's mask

	tt.Store(hash, 8, 100, TTExact, board.NoMove)
	tt.Store(hash, 2, -50, TTExact, board.NoMove)

	entry, ok := tt.Probe(hash)
	if !ok {
		t.Fatal("expected a verified entry after two stores to the same slot")
	}
	if entry.Depth != 8 || entry.Score != 100 {
		t.Errorf("shallow store should not have evicted the deeper one: got depth=%d score=%d", entry.Depth, entry.Score)
	}
}

// TestStoreRefreshesStaleEntryAcrossGenerations checks that an entry from a
// prior generation readily yields to a new, shallower one: weight() decays
// with generation distance so the table doesn't cling to stale lines from a
// search several moves back.
func TestStoreRefreshesStaleEntryAcrossGenerations(t *testing.T) {
	tt := NewTranspositionTable(1)
	hash := uint64(1) << 40

	tt.Store(hash, 10, 0, TTExact, board.NoMove)
	for i := 0; i < 4; i++ {
		tt.NewSearch()
	}
	tt.Store(hash, 3, 25, TTExact, board.NoMove)

	entry, ok := tt.Probe(hash)
	if !ok {
		t.Fatal("expected a verified entry")
	}
	if entry.Depth != 3 || entry.Score != 25 {
		t.Errorf("a 4-generation-old depth-10 entry should yield to a fresh depth-3 one: got depth=%d score=%d", entry.Depth, entry.Score)
	}
}

// TestHashFullOnlyCountsCurrentGeneration confirms hashfull reporting tracks
// the UCI convention of only the current generation's occupancy, not every
// slot that has ever been written.
func TestHashFullOnlyCountsCurrentGeneration(t *testing.T) {
	tt := NewTranspositionTable(1)
	hash := uint64(2) << 40

	tt.Store(hash, 5, 0, TTExact, board.NoMove)
	if tt.HashFull() == 0 {
		t.Fatal("expected a nonzero hashfull right after a store")
	}
	tt.NewSearch()
	if got := tt.HashFull(); got != 0 {
		t.Errorf("HashFull() after aging past the only occupied slot = %d, want 0", got)
	}
	if tt.Used() == 0 {
		t.Error("Used() should still count the slot regardless of its generation")
	}
}
