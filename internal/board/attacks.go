package board

// knightOffsets and kingOffsets are (deltaFile, deltaRank) pairs.
var knightOffsets = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var kingOffsets = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// bishopDirections and rookDirections are the four diagonal / orthogonal
// ray directions used for sliding-piece attack detection.
var bishopDirections = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDirections = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// IsSquareAttacked reports whether sq is attacked by any piece of color by,
// per spec.md §4.1: pawn, knight, sliding (stopping at the first blocker),
// and king adjacency.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	file, rank := sq.File(), sq.Rank()

	// Pawn attacks: a pawn of color `by` attacks diagonally forward. To find
	// whether such a pawn attacks sq, look one rank behind (from the pawn's
	// own forward direction) on each adjacent file.
	pawnRankDelta := -1
	if by == White {
		pawnRankDelta = 1
	}
	for _, df := range [2]int{-1, 1} {
		pf, pr := file+df, rank-pawnRankDelta
		if OnBoard(pf, pr) {
			if p := b.PieceAt(NewSquare(pf, pr)); p != nil && p.Color == by && p.Type == Pawn {
				return true
			}
		}
	}

	// Knight attacks.
	for _, off := range knightOffsets {
		nf, nr := file+off[0], rank+off[1]
		if OnBoard(nf, nr) {
			if p := b.PieceAt(NewSquare(nf, nr)); p != nil && p.Color == by && p.Type == Knight {
				return true
			}
		}
	}

	// King adjacency.
	for _, off := range kingOffsets {
		nf, nr := file+off[0], rank+off[1]
		if OnBoard(nf, nr) {
			if p := b.PieceAt(NewSquare(nf, nr)); p != nil && p.Color == by && p.Type == King {
				return true
			}
		}
	}

	// Diagonal sliders (bishop/queen).
	for _, d := range bishopDirections {
		f, r := file+d[0], rank+d[1]
		for OnBoard(f, r) {
			if p := b.PieceAt(NewSquare(f, r)); p != nil {
				if p.Color == by && (p.Type == Bishop || p.Type == Queen) {
					return true
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}

	// Orthogonal sliders (rook/queen).
	for _, d := range rookDirections {
		f, r := file+d[0], rank+d[1]
		for OnBoard(f, r) {
			if p := b.PieceAt(NewSquare(f, r)); p != nil {
				if p.Color == by && (p.Type == Rook || p.Type == Queen) {
					return true
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}

	return false
}

// KingMoveIsSafe reports whether relocating color's king from `from` to `to`
// would leave `to` unattacked by the opponent. The king is actually removed
// from `from` and placed on `to` on a scratch clone before probing, so a
// slider that was blocked by the king's own departure square is correctly
// accounted for (the same reason movegen.go's legality filter uses
// make/unmake rather than probing the static board directly).
func (b *Board) KingMoveIsSafe(from, to Square, color Color) bool {
	clone := b.Clone()
	clone.removePiece(from)
	clone.removePiece(to)
	clone.place(King, color, to)
	return !clone.IsSquareAttacked(to, color.Other())
}
