package nnue

import "github.com/brainit-consulting/chess-sub002/internal/board"

// Evaluator pairs a loaded network with a per-ply accumulator stack, giving
// the search an incrementally maintained NNUE score alongside make/unmake.
type Evaluator struct {
	Net   *Network
	Stack *AccumulatorStack
}

// NewEvaluator builds an evaluator around net with an empty accumulator stack.
func NewEvaluator(net *Network) *Evaluator {
	return &Evaluator{Net: net, Stack: NewAccumulatorStack(net)}
}

// Refresh rebuilds the ply-0 accumulator from scratch for gs, discarding any
// pushed plies.
func (e *Evaluator) Refresh(gs *board.GameState) {
	e.Stack.Reset()
	e.Stack.Current().BuildFull(e.Net, gs)
}

// OnMakeMove must be called immediately after gs.MakeMove(m) returned undo:
// it pushes a new ply and incrementally updates its accumulator.
func (e *Evaluator) OnMakeMove(gs *board.GameState, m board.Move, undo board.UndoInfo) {
	delta := buildMoveDelta(gs, m, undo)
	e.Stack.Push()
	e.Stack.Current().Apply(e.Net, delta, true)
}

// OnUnmakeMove must be called immediately before gs.UnmakeMove(m, undo): the
// board must still reflect the made move so the delta can be recomputed
// identically to OnMakeMove, then reversed and popped.
func (e *Evaluator) OnUnmakeMove(gs *board.GameState, m board.Move, undo board.UndoInfo) {
	delta := buildMoveDelta(gs, m, undo)
	e.Stack.Current().Apply(e.Net, delta, false)
	e.Stack.Pop()
}

// buildMoveDelta derives the piece-placement delta for one make/unmake from
// the move, its undo record, and the board state as it stands immediately
// after the move was made.
func buildMoveDelta(gs *board.GameState, m board.Move, undo board.UndoInfo) MoveDelta {
	moverAfter := gs.Board.PieceAt(m.To())
	delta := MoveDelta{
		MoverColor: undo.SideToMove,
		FromSquare: m.From(),
		ToSquare:   m.To(),
		ToType:     moverAfter.Type,
	}
	if m.IsPromotion() {
		delta.FromType = board.Pawn
	} else {
		delta.FromType = moverAfter.Type
	}
	if undo.CapturedID != board.NoPieceID {
		delta.HasCapture = true
		delta.CapturedColor = undo.CapturedColor
		delta.CapturedType = undo.CapturedType
		delta.CapturedSquare = undo.CapturedSquare
	}
	if m.IsCastling() {
		delta.HasCastlingRook = true
		delta.CastlingRookColor = undo.SideToMove
		delta.RookFrom = undo.RookFrom
		delta.RookTo = undo.RookTo
	}
	return delta
}

func clamp127(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return v
}

// Evaluate returns round(b2 + sum(clamp(acc[i], 0, 127) * w2[i])) for the
// current ply's accumulator from perspective's point of view, implementing
// evaluate_nnue and satisfying eval.NNUEEvaluator.
func (e *Evaluator) Evaluate(perspective board.Color) int {
	acc := e.Stack.Current()
	src := acc.White
	if perspective == board.Black {
		src = acc.Black
	}
	sum := e.Net.B2
	for i, a := range src {
		sum += clamp127(a) * e.Net.W2[i]
	}
	if sum < 0 {
		return int(sum - 0.5)
	}
	return int(sum + 0.5)
}
