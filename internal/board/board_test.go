package board

import "testing"

func TestCheckmateBackRank(t *testing.T) {
	gs, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if status := gs.GameStatus(); status != StatusCheckmate {
		t.Errorf("GameStatus() = %v, want checkmate", status)
	}
	if gs.HasLegalMoves() {
		t.Error("HasLegalMoves() = true in a checkmate position")
	}
}

func TestNotCheckmateKingCanCapture(t *testing.T) {
	gs, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if status := gs.GameStatus(); status == StatusCheckmate {
		t.Error("GameStatus() reported checkmate but the king can capture the rook")
	}
}

func TestStalemateCage(t *testing.T) {
	// Black king on h8, boxed in by white king g6 and queen f7; black to
	// move has no legal move and is not in check.
	gs, err := ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if status := gs.GameStatus(); status != StatusStalemate {
		t.Errorf("GameStatus() = %v, want stalemate", status)
	}
}

func TestInsufficientMaterialKingsOnly(t *testing.T) {
	gs, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !gs.IsInsufficientMaterial() {
		t.Error("K v K should be insufficient material")
	}
}

func TestInsufficientMaterialKingAndMinor(t *testing.T) {
	gs, err := ParseFEN("4k3/8/8/8/8/8/8/3NK3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !gs.IsInsufficientMaterial() {
		t.Error("K+N v K should be insufficient material")
	}
}

func TestSufficientMaterialKingAndTwoKnights(t *testing.T) {
	gs, err := ParseFEN("4k3/8/8/8/8/8/8/2NNK3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if gs.IsInsufficientMaterial() {
		t.Error("K+N+N v K must remain sufficient material (it can be forced, if rarely)")
	}
}

func TestSufficientMaterialWithPawn(t *testing.T) {
	gs, err := ParseFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if gs.IsInsufficientMaterial() {
		t.Error("K+P v K must never be insufficient material")
	}
}

func TestThreefoldRepetition(t *testing.T) {
	gs := NewGameState()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"}
	for _, s := range shuffle {
		m, err := ParseMove(s, gs)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		if err := ApplyMove(gs, m); err != nil {
			t.Fatalf("ApplyMove(%q): %v", s, err)
		}
	}
	if status := gs.GameStatus(); status != StatusDrawThreefold {
		t.Errorf("GameStatus() = %v, want draw by threefold repetition", status)
	}
}

func TestFiftyMoveRule(t *testing.T) {
	gs, err := ParseFEN("4k3/8/8/8/8/8/7P/4K2R w K - 99 60")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err := ParseMove("e1d1", gs)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if err := ApplyMove(gs, m); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if status := gs.GameStatus(); status != StatusDrawFiftyMove {
		t.Errorf("GameStatus() = %v, want draw by fifty-move rule", status)
	}
}

func TestCastlingThroughCheckIsIllegal(t *testing.T) {
	// White king e1, rook h1, black king e8; in the second position a black
	// rook on f2 covers f1, the kingside transit square.
	gs, err := ParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	// Sanity: with nothing attacking, castling is legal.
	moves := GenerateLegalMoves(gs)
	found := false
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i).IsCastling() {
			found = true
		}
	}
	if !found {
		t.Fatal("expected kingside castling to be available with no attackers")
	}

	gs2, err := ParseFEN("4k3/8/8/8/8/8/5r2/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	moves2 := GenerateLegalMoves(gs2)
	for i := 0; i < moves2.Len(); i++ {
		if moves2.Get(i).IsCastling() {
			t.Error("castling through an attacked transit square (f1) must be illegal")
		}
	}
}

func TestEnPassantCapture(t *testing.T) {
	gs, err := ParseFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := NewEnPassant(E5, D6)
	if !GenerateLegalMoves(gs).Contains(m) {
		t.Fatal("expected the en passant capture e5xd6 to be legal")
	}
	undo := gs.MakeMove(m)
	if gs.Board.PieceAt(D5) != nil {
		t.Error("the captured pawn on d5 should have been removed")
	}
	if p := gs.Board.PieceAt(D6); p == nil || p.Type != Pawn || p.Color != White {
		t.Error("the capturing pawn should now be on d6")
	}
	gs.UnmakeMove(m, undo)
	if p := gs.Board.PieceAt(D5); p == nil || p.Color != Black {
		t.Error("UnmakeMove should have restored the captured black pawn on d5")
	}
	if gs.Board.PieceAt(E5) == nil {
		t.Error("UnmakeMove should have restored the white pawn to e5")
	}
}

func TestPromotion(t *testing.T) {
	gs, err := ParseFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := NewPromotion(A7, A8, Queen)
	if err := ApplyMove(gs, m); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	p := gs.Board.PieceAt(A8)
	if p == nil || p.Type != Queen || p.Color != White {
		t.Fatalf("expected a white queen on a8 after promotion, got %+v", p)
	}
}

func TestNullMoveRoundTrip(t *testing.T) {
	gs := NewGameState()
	before := gs.Hash
	beforeSide := gs.SideToMove
	beforeEP := gs.EnPassant

	undo := gs.MakeNullMove()
	if gs.SideToMove == beforeSide {
		t.Error("MakeNullMove should flip the side to move")
	}
	if gs.EnPassant != NoSquare {
		t.Error("MakeNullMove should clear any en passant right")
	}
	if gs.Hash == before {
		t.Error("MakeNullMove should change the position hash")
	}

	gs.UnmakeNullMove(undo)
	if gs.Hash != before || gs.SideToMove != beforeSide || gs.EnPassant != beforeEP {
		t.Error("UnmakeNullMove should restore hash, side to move, and en passant exactly")
	}
}

func TestMakeUnmakeRestoresHash(t *testing.T) {
	gs := NewGameState()
	for _, s := range []string{"e2e4", "e7e5", "g1f3", "b8c6"} {
		before := gs.Hash
		m, err := ParseMove(s, gs)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		undo := gs.MakeMove(m)
		if !undo.Valid {
			t.Fatalf("MakeMove(%q) reported invalid", s)
		}
		gs.UnmakeMove(m, undo)
		if gs.Hash != before {
			t.Errorf("hash after make/unmake of %q = %d, want %d", s, gs.Hash, before)
		}
	}
}
