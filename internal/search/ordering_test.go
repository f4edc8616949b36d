package search

import (
	"testing"

	"github.com/brainit-consulting/chess-sub002/internal/board"
)

// TestKingEvasionPrefersSafeDestination exercises spec.md §4.3 item 1's
// "among king moves, safe squares ahead of attacked squares" sub-ranking.
// Black's rook checks along the e-file and its bishop covers f1 along the
// h3-f1 diagonal, so Ke1-f1 walks back into check while Ke1-d1 does not.
func TestKingEvasionPrefersSafeDestination(t *testing.T) {
	gs, err := board.ParseFEN("4r3/8/8/8/8/7b/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !gs.InCheck() {
		t.Fatal("test position should have White in check")
	}

	os := NewOrderingState()
	ctx := Context{
		Board:   gs.Board,
		TTMove:  board.NoMove,
		PVMove:  board.NoMove,
		InCheck: true,
	}

	safe := board.NewMove(board.E1, board.D1)
	attacked := board.NewMove(board.E1, board.F1)

	if !gs.Board.KingMoveIsSafe(board.E1, board.D1, board.White) {
		t.Fatal("Ke1-d1 should be safe in this position")
	}
	if gs.Board.KingMoveIsSafe(board.E1, board.F1, board.White) {
		t.Fatal("Ke1-f1 should still be attacked by the bishop on h3")
	}

	if os.score(safe, ctx) <= os.score(attacked, ctx) {
		t.Errorf("a safe king evasion should score above an attacked one: safe=%d attacked=%d",
			os.score(safe, ctx), os.score(attacked, ctx))
	}
}
