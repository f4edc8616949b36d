// Package eval implements the static position evaluator: material,
// piece-square tables, king safety, rook activity, the early-queen
// penalty, and an optional NNUE mix.
package eval

// Piece-square tables are from White's perspective and mirrored for Black.
// Only minor pieces get positional tables and only pawns get an advancement
// table — the evaluator's component list stops there.

var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

// pawnAdvancePST rewards central control and forward progress, ramping up
// sharply on the two ranks before promotion.
var pawnAdvancePST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 10, 15, 15, 10, 5, 5,
	5, 5, 10, 20, 20, 10, 5, 5,
	10, 10, 15, 25, 25, 15, 10, 10,
	20, 20, 25, 35, 35, 25, 20, 20,
	40, 40, 45, 50, 50, 45, 40, 40,
	0, 0, 0, 0, 0, 0, 0, 0,
}
