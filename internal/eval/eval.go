package eval

import "github.com/brainit-consulting/chess-sub002/internal/board"

// Options controls which evaluator components are active, mirroring the
// difficulty-gated behavior described for evaluate_state.
type Options struct {
	// MaxThinking enables piece-square tables and sharpens the early-queen
	// penalty.
	MaxThinking bool
	// NNUEMix is the convex-combination weight (0..1) given to the NNUE
	// score; 0 disables the mix entirely.
	NNUEMix float64
}

// NNUEEvaluator is satisfied by an accumulator capable of producing a score
// from a given perspective. Defined here, not in package nnue, so eval never
// imports nnue and nnue can freely import board; GameState.NNUEAcc is type-
// asserted against this interface at evaluation time.
type NNUEEvaluator interface {
	Evaluate(perspective board.Color) int
}

const (
	kingSafetyRingPenalty = 12

	rookOpenFileBonus     = 20
	rookSemiOpenFileBonus = 10

	earlyQueenPenaltyCore = -30
	earlyQueenPenaltyMax  = -45
	earlyQueenMoveLimit   = 10
)

var minorStartSquares = [2][4]board.Square{
	{board.B1, board.C1, board.F1, board.G1},
	{board.B8, board.C8, board.F8, board.G8},
}

// Evaluate returns the static score of gs in centipawns from perspective's
// point of view (positive favors perspective). It is the implementation of
// evaluate_state.
func Evaluate(gs *board.GameState, perspective board.Color, opts Options) int {
	whiteScore := evaluateFromWhite(gs, opts)
	classical := whiteScore
	if perspective == board.Black {
		classical = -whiteScore
	}

	if opts.NNUEMix > 0 {
		if nn, ok := gs.NNUEAcc.(NNUEEvaluator); ok {
			// nn.Evaluate already returns a score relative to perspective
			// (the accumulator pair is built perspective-relative via
			// featureIndex), so it is mixed in directly rather than routed
			// through the classical score's White-relative sign flip.
			nnueScore := nn.Evaluate(perspective)
			mix := opts.NNUEMix
			return int(float64(classical)*(1-mix) + float64(nnueScore)*mix)
		}
	}

	return classical
}

func evaluateFromWhite(gs *board.GameState, opts Options) int {
	score := 0

	for sq := board.A1; sq <= board.H8; sq++ {
		p := gs.Board.PieceAt(sq)
		if p == nil {
			continue
		}
		sign := 1
		pstSq := sq
		if p.Color == board.Black {
			sign = -1
			pstSq = sq.Mirror()
		}

		score += sign * board.PieceValue[p.Type]

		if opts.MaxThinking {
			switch p.Type {
			case board.Knight:
				score += sign * knightPST[pstSq]
			case board.Bishop:
				score += sign * bishopPST[pstSq]
			case board.Pawn:
				score += sign * pawnAdvancePST[pstSq]
			}
		}
	}

	score += kingSafety(gs, board.White) - kingSafety(gs, board.Black)
	score += rookActivity(gs, board.White) - rookActivity(gs, board.Black)
	score += earlyQueenPenalty(gs, board.White, opts) - earlyQueenPenalty(gs, board.Black, opts)

	return score
}

// kingSafety returns a penalty (negative) for color's king based on how many
// squares in the 3x3 ring around it are attacked by the opponent, applied
// only when the opponent still has a queen on the board.
func kingSafety(gs *board.GameState, color board.Color) int {
	opponent := color.Other()
	if !hasQueen(gs, opponent) {
		return 0
	}
	ksq := gs.Board.KingSquare(color)
	if ksq == board.NoSquare {
		return 0
	}
	file, rank := ksq.File(), ksq.Rank()
	attacked := 0
	for df := -1; df <= 1; df++ {
		for dr := -1; dr <= 1; dr++ {
			if df == 0 && dr == 0 {
				continue
			}
			f, r := file+df, rank+dr
			if !board.OnBoard(f, r) {
				continue
			}
			if gs.Board.IsSquareAttacked(board.NewSquare(f, r), opponent) {
				attacked++
			}
		}
	}
	return -attacked * kingSafetyRingPenalty
}

func hasQueen(gs *board.GameState, color board.Color) bool {
	for _, p := range gs.Board.PiecesOf(color) {
		if p.Type == board.Queen {
			return true
		}
	}
	return false
}

// rookActivity rewards a rook standing on a file with no friendly pawns,
// with an extra bonus when the file is fully open toward the enemy king.
func rookActivity(gs *board.GameState, color board.Color) int {
	total := 0
	for sq := board.A1; sq <= board.H8; sq++ {
		p := gs.Board.PieceAt(sq)
		if p == nil || p.Color != color || p.Type != board.Rook {
			continue
		}
		friendlyPawn, enemyPawn := false, false
		file := sq.File()
		for rank := 0; rank < 8; rank++ {
			other := gs.Board.PieceAt(board.NewSquare(file, rank))
			if other == nil || other.Type != board.Pawn {
				continue
			}
			if other.Color == color {
				friendlyPawn = true
			} else {
				enemyPawn = true
			}
		}
		if friendlyPawn {
			continue
		}
		if enemyPawn {
			total += rookSemiOpenFileBonus
		} else {
			total += rookOpenFileBonus
		}
	}
	return total
}

// earlyQueenPenalty penalizes a queen sortie made before the minor pieces
// have developed and the game has progressed far enough to justify it.
func earlyQueenPenalty(gs *board.GameState, color board.Color, opts Options) int {
	if gs.FullMoveNumber > earlyQueenMoveLimit {
		return 0
	}
	queenMoved := false
	for _, p := range gs.Board.PiecesOf(color) {
		if p.Type == board.Queen && p.HasMoved {
			queenMoved = true
			break
		}
	}
	if !queenMoved {
		return 0
	}
	stillHome := 0
	for _, sq := range minorStartSquares[color] {
		if p := gs.Board.PieceAt(sq); p != nil && p.Color == color && (p.Type == board.Knight || p.Type == board.Bishop) {
			stillHome++
		}
	}
	if stillHome < 2 {
		return 0
	}
	if opts.MaxThinking {
		return earlyQueenPenaltyMax
	}
	return earlyQueenPenaltyCore
}
