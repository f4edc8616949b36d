package nnue

import (
	"math"
	"testing"

	"github.com/brainit-consulting/chess-sub002/internal/board"
)

func accumsClose(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-3 {
			return false
		}
	}
	return true
}

// TestAccumulatorIdempotence is spec.md §8's core NNUE property: incrementally
// updating the accumulator across a make/unmake pair must land back exactly
// where a from-scratch rebuild would.
func TestAccumulatorIdempotence(t *testing.T) {
	net := NewNetwork(768, 16)
	net.InitRandom(42)

	gs := board.NewGameState()
	e := NewEvaluator(net)
	e.Refresh(gs)

	rebuilt := NewAccumulator(net)
	rebuilt.BuildFull(net, gs)
	if !accumsClose(e.Stack.Current().White, rebuilt.White) {
		t.Fatal("freshly refreshed accumulator should match a from-scratch build")
	}

	m, err := board.ParseMove("e2e4", gs)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	undo := gs.MakeMove(m)
	e.OnMakeMove(gs, m, undo)

	afterMove := NewAccumulator(net)
	afterMove.BuildFull(net, gs)
	if !accumsClose(e.Stack.Current().White, afterMove.White) {
		t.Error("incremental update after e2e4 should match a from-scratch rebuild")
	}
	if !accumsClose(e.Stack.Current().Black, afterMove.Black) {
		t.Error("incremental update after e2e4 should match a from-scratch rebuild (black perspective)")
	}

	e.OnUnmakeMove(gs, m, undo)
	gs.UnmakeMove(m, undo)

	backToStart := NewAccumulator(net)
	backToStart.BuildFull(net, gs)
	if !accumsClose(e.Stack.Current().White, backToStart.White) {
		t.Error("reversing the incremental update should match the starting position's accumulator")
	}
}

func TestAccumulatorIdempotenceThroughCapture(t *testing.T) {
	net := NewNetwork(768, 16)
	net.InitRandom(7)

	gs, err := board.ParseFEN("rnbqkbnr/pppp1ppp/8/4p3/3P4/8/PPP1PPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	e := NewEvaluator(net)
	e.Refresh(gs)

	m, err := board.ParseMove("d4e5", gs)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	undo := gs.MakeMove(m)
	if undo.CapturedID == board.NoPieceID {
		t.Fatal("d4e5 should have captured the black pawn on e5")
	}
	e.OnMakeMove(gs, m, undo)

	rebuilt := NewAccumulator(net)
	rebuilt.BuildFull(net, gs)
	if !accumsClose(e.Stack.Current().White, rebuilt.White) {
		t.Error("incremental update through a capture should match a from-scratch rebuild")
	}
}

func TestEvaluatorIsDeterministic(t *testing.T) {
	net := NewNetwork(768, 16)
	net.InitRandom(99)
	gs := board.NewGameState()

	e1 := NewEvaluator(net)
	e1.Refresh(gs)
	e2 := NewEvaluator(net)
	e2.Refresh(gs)

	if e1.Evaluate(board.White) != e2.Evaluate(board.White) {
		t.Error("two evaluators over the same network and position should score identically")
	}
}
