package search

import "github.com/brainit-consulting/chess-sub002/internal/board"

var seeKnightOffsets = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}
var seeKingOffsets = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}
var seeBishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var seeRookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// occupantFunc reports the piece currently considered present at sq, used so
// the exchange simulation can "remove" pieces without mutating the board.
type occupantFunc func(sq board.Square) *board.Piece

// leastValuableAttacker finds the cheapest piece of color attacking sq,
// given the current (possibly reduced) occupancy.
func leastValuableAttacker(sq board.Square, color board.Color, occupant occupantFunc) (board.Square, board.PieceType, bool) {
	file, rank := sq.File(), sq.Rank()
	bestSq := board.NoSquare
	bestType := board.NoPieceType
	bestValue := 1 << 30

	consider := func(candSq board.Square, pt board.PieceType) {
		if board.PieceValue[pt] < bestValue {
			bestValue = board.PieceValue[pt]
			bestSq = candSq
			bestType = pt
		}
	}

	pawnRankDelta := -1
	if color == board.White {
		pawnRankDelta = 1
	}
	for _, df := range [2]int{-1, 1} {
		pf, pr := file+df, rank-pawnRankDelta
		if board.OnBoard(pf, pr) {
			candSq := board.NewSquare(pf, pr)
			if p := occupant(candSq); p != nil && p.Color == color && p.Type == board.Pawn {
				consider(candSq, board.Pawn)
			}
		}
	}

	for _, off := range seeKnightOffsets {
		f, r := file+off[0], rank+off[1]
		if board.OnBoard(f, r) {
			candSq := board.NewSquare(f, r)
			if p := occupant(candSq); p != nil && p.Color == color && p.Type == board.Knight {
				consider(candSq, board.Knight)
			}
		}
	}

	for _, off := range seeKingOffsets {
		f, r := file+off[0], rank+off[1]
		if board.OnBoard(f, r) {
			candSq := board.NewSquare(f, r)
			if p := occupant(candSq); p != nil && p.Color == color && p.Type == board.King {
				consider(candSq, board.King)
			}
		}
	}

	for _, d := range seeBishopDirs {
		f, r := file+d[0], rank+d[1]
		for board.OnBoard(f, r) {
			candSq := board.NewSquare(f, r)
			if p := occupant(candSq); p != nil {
				if p.Color == color && (p.Type == board.Bishop || p.Type == board.Queen) {
					consider(candSq, p.Type)
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}

	for _, d := range seeRookDirs {
		f, r := file+d[0], rank+d[1]
		for board.OnBoard(f, r) {
			candSq := board.NewSquare(f, r)
			if p := occupant(candSq); p != nil {
				if p.Color == color && (p.Type == board.Rook || p.Type == board.Queen) {
					consider(candSq, p.Type)
				}
				break
			}
			f += d[0]
			r += d[1]
		}
	}

	if bestSq == board.NoSquare {
		return board.NoSquare, board.NoPieceType, false
	}
	return bestSq, bestType, true
}

// seeLite approximates the net material value of m's capture, alternating
// least-valuable attackers on the destination square, from the initial
// mover's perspective. Used to demote poisoned captures in ordering and to
// prune losing captures in quiescence.
func seeLite(b *board.Board, m board.Move) int {
	to := m.To()
	capSq := to
	if m.IsEnPassant() {
		capSq = board.NewSquare(to.File(), m.From().Rank())
	}
	target := b.PieceAt(capSq)
	attacker := b.PieceAt(m.From())
	if target == nil || attacker == nil {
		return 0
	}

	var removed [64]bool
	removed[m.From()] = true
	occupant := func(sq board.Square) *board.Piece {
		if removed[sq] {
			return nil
		}
		if sq == capSq && capSq != to {
			return nil // the captured en passant pawn is already gone
		}
		return b.PieceAt(sq)
	}

	gains := make([]int, 1, 16)
	gains[0] = board.PieceValue[target.Type]

	onSquareType := attacker.Type
	sideToMove := attacker.Color.Other()
	for {
		sq, pt, ok := leastValuableAttacker(to, sideToMove, occupant)
		if !ok {
			break
		}
		removed[sq] = true
		gains = append(gains, board.PieceValue[onSquareType])
		onSquareType = pt
		sideToMove = sideToMove.Other()
	}

	return foldSEE(gains)
}

// foldSEE folds a gain sequence backward: at each step the side to move may
// stop (banking 0 further) or continue the exchange, so value[i] is the
// gain at i minus whatever the opponent nets by continuing.
func foldSEE(gains []int) int {
	for i := len(gains) - 2; i >= 0; i-- {
		if cont := gains[i+1]; cont > 0 {
			gains[i] -= cont
		}
	}
	return gains[0]
}
