package nnue

import "github.com/brainit-consulting/chess-sub002/internal/board"

// Accumulator holds the hidden-layer activation vector from each color's own
// perspective, maintained incrementally across make/unmake. Rebuilding from
// scratch (BuildFull) must always equal the incrementally updated vector
// (spec.md §8's accumulator-idempotence property).
type Accumulator struct {
	White    []float32
	Black    []float32
	Computed bool
}

// NewAccumulator allocates a zeroed accumulator sized for net.
func NewAccumulator(net *Network) *Accumulator {
	return &Accumulator{
		White: make([]float32, net.HiddenSize),
		Black: make([]float32, net.HiddenSize),
	}
}

// BuildFull recomputes the accumulator from scratch for gs.
func (acc *Accumulator) BuildFull(net *Network, gs *board.GameState) {
	copy(acc.White, net.B1)
	copy(acc.Black, net.B1)
	for sq := board.A1; sq <= board.H8; sq++ {
		p := gs.Board.PieceAt(sq)
		if p == nil {
			continue
		}
		acc.adjust(net, board.White, p.Color, p.Type, sq, 1)
		acc.adjust(net, board.Black, p.Color, p.Type, sq, 1)
	}
	acc.Computed = true
}

// adjust adds (sign=+1) or subtracts (sign=-1) the W1 row for a piece of
// pieceColor/pieceType on sq from the perspective accumulator.
func (acc *Accumulator) adjust(net *Network, perspective, pieceColor board.Color, pieceType board.PieceType, sq board.Square, sign float32) {
	idx := featureIndex(perspective, pieceColor, pieceType, sq)
	row := net.inputRow(idx)
	dst := acc.White
	if perspective == board.Black {
		dst = acc.Black
	}
	for i, w := range row {
		dst[i] += sign * w
	}
}

// MoveDelta describes the piece placements that changed because of one
// make/unmake, in terms the accumulator can subtract/add without needing to
// inspect the board itself.
type MoveDelta struct {
	MoverColor        board.Color
	FromType          board.PieceType // mover's type before the move (Pawn for a promotion)
	FromSquare        board.Square
	ToType            board.PieceType // mover's type after the move (promoted type, if any)
	ToSquare          board.Square
	HasCapture        bool
	CapturedColor     board.Color
	CapturedType      board.PieceType
	CapturedSquare    board.Square
	HasCastlingRook   bool
	CastlingRookColor board.Color
	RookFrom          board.Square
	RookTo            board.Square
}

// Apply updates the accumulator for delta. forward=true applies a move that
// was just made; forward=false reverses a move that is being unmade.
func (acc *Accumulator) Apply(net *Network, delta MoveDelta, forward bool) {
	sign := float32(1)
	if !forward {
		sign = -1
	}
	for _, persp := range [2]board.Color{board.White, board.Black} {
		acc.adjust(net, persp, delta.MoverColor, delta.FromType, delta.FromSquare, -sign)
		acc.adjust(net, persp, delta.MoverColor, delta.ToType, delta.ToSquare, sign)
		if delta.HasCapture {
			acc.adjust(net, persp, delta.CapturedColor, delta.CapturedType, delta.CapturedSquare, -sign)
		}
		if delta.HasCastlingRook {
			acc.adjust(net, persp, delta.CastlingRookColor, board.Rook, delta.RookFrom, -sign)
			acc.adjust(net, persp, delta.CastlingRookColor, board.Rook, delta.RookTo, sign)
		}
	}
}

// AccumulatorStack holds one accumulator per search ply so the search can
// push before a speculative move and pop after unmaking it, instead of
// recomputing from scratch.
type AccumulatorStack struct {
	stack [128]Accumulator
	top   int
}

// NewAccumulatorStack allocates a stack with accumulators sized for net.
func NewAccumulatorStack(net *Network) *AccumulatorStack {
	s := &AccumulatorStack{}
	for i := range s.stack {
		s.stack[i].White = make([]float32, net.HiddenSize)
		s.stack[i].Black = make([]float32, net.HiddenSize)
	}
	return s
}

// Push copies the current accumulator onto a new ply.
func (s *AccumulatorStack) Push() {
	if s.top < len(s.stack)-1 {
		copy(s.stack[s.top+1].White, s.stack[s.top].White)
		copy(s.stack[s.top+1].Black, s.stack[s.top].Black)
		s.stack[s.top+1].Computed = s.stack[s.top].Computed
		s.top++
	}
}

// Pop discards the current ply's accumulator, returning to the previous one.
func (s *AccumulatorStack) Pop() {
	if s.top > 0 {
		s.top--
	}
}

// Current returns the accumulator for the current ply.
func (s *AccumulatorStack) Current() *Accumulator {
	return &s.stack[s.top]
}

// Reset empties the stack back to ply 0.
func (s *AccumulatorStack) Reset() {
	s.top = 0
	s.stack[0].Computed = false
}
