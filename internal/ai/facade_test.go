package ai

import (
	"testing"

	"github.com/brainit-consulting/chess-sub002/internal/board"
)

func TestChooseMoveNoLegalMovesReturnsFalse(t *testing.T) {
	gs, err := board.ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	e := NewEngine(1, "")
	_, ok := e.ChooseMove(gs, Options{Difficulty: Easy})
	if ok {
		t.Error("ChooseMove on a checkmated position should report ok=false")
	}
}

func TestChooseMoveSingleLegalMoveShortCircuits(t *testing.T) {
	gs, err := board.ParseFEN("k7/8/1K6/8/8/8/8/7R b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	legal := board.GenerateLegalMoves(gs)
	if legal.Len() != 1 {
		t.Fatalf("test position should have exactly one legal move, found %d", legal.Len())
	}
	e := NewEngine(1, "")
	result, ok := e.ChooseMove(gs, Options{Difficulty: Easy})
	if !ok {
		t.Fatal("ChooseMove should succeed")
	}
	if result.Move != legal.Get(0) {
		t.Errorf("ChooseMove = %v, want the only legal move %v", result.Move, legal.Get(0))
	}
}

func TestChooseMoveFindsMateInOne(t *testing.T) {
	gs, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	e := NewEngine(1, "")
	result, ok := e.ChooseMove(gs, Options{Difficulty: Hard})
	if !ok {
		t.Fatal("ChooseMove should succeed")
	}
	if result.MateInPlies != 1 {
		t.Errorf("MateInPlies = %d, want 1", result.MateInPlies)
	}
	if result.Move != board.NewMove(board.A1, board.A8) {
		t.Errorf("Move = %v, want Ra1-a8#", result.Move)
	}
}

func TestChooseMoveRespectsDepthOverride(t *testing.T) {
	gs := board.NewGameState()
	e := NewEngine(1, "")
	result, ok := e.ChooseMove(gs, Options{Difficulty: Easy, DepthOverride: 2})
	if !ok {
		t.Fatal("ChooseMove should succeed")
	}
	if result.Depth < 2 {
		t.Errorf("Depth = %d, want at least the overridden depth 2", result.Depth)
	}
}

func TestEvaluateIsSymmetric(t *testing.T) {
	gs := board.NewGameState()
	e := NewEngine(1, "")
	white := e.Evaluate(gs, board.White, false, 0)
	black := e.Evaluate(gs, board.Black, false, 0)
	if white != -black {
		t.Errorf("Evaluate(White)=%d, Evaluate(Black)=%d; want exact mirror", white, black)
	}
}

func TestExplainMoveReportsCapture(t *testing.T) {
	gs, err := board.ParseFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := board.NewMove(board.E4, board.D5)
	expl := ExplainMove(gs, m, ExplainOptions{})
	found := false
	for _, tag := range expl.Tags {
		if tag == "capture" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a capture tag, got %v", expl.Tags)
	}
}

func TestExplainMoveReportsCheckmate(t *testing.T) {
	gs, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := board.NewMove(board.A1, board.A8)
	expl := ExplainMove(gs, m, ExplainOptions{})
	found := false
	for _, tag := range expl.Tags {
		if tag == "checkmate" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a checkmate tag, got %v", expl.Tags)
	}
}

func TestExplainMoveIsPure(t *testing.T) {
	gs, err := board.ParseFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	before := gs.FEN()
	m := board.NewMove(board.E4, board.D5)
	ExplainMove(gs, m, ExplainOptions{})
	if gs.FEN() != before {
		t.Errorf("ExplainMove must not mutate the position: before %q, after %q", before, gs.FEN())
	}
}
