package search

import "github.com/brainit-consulting/chess-sub002/internal/board"

// Move-ordering score bands, high to low, implementing spec.md §4.3's
// ten-tier ranking. Bands are spaced widely so tie-breaks within one tier
// (MVV-LVA, history counts) never spill into the next.
const (
	scoreTTMove        = 10_000_000
	scorePVMove        = 9_000_000
	scoreRecapture     = 8_000_000
	scoreGoodCapture   = 1_000_000
	scorePromotion     = 700_000
	scoreQueenPromoAdd = 50_000
	scoreKiller1       = 600_001
	scoreKiller2       = 600_000
	scoreCounterMove   = 500_000
	scoreLosingCapture = -100_000

	evasionCaptureBonus      = 300
	evasionBlockBonus        = 150
	evasionSafeKingBonus     = 100
	evasionAttackedKingBonus = 50
)

// mvvLva[victim][attacker] favors capturing the most valuable victim with
// the least valuable attacker.
var mvvLva = [6][6]int{
	{15, 14, 14, 13, 12, 11},
	{25, 24, 24, 23, 22, 21},
	{35, 34, 34, 33, 32, 31},
	{45, 44, 44, 43, 42, 41},
	{55, 54, 54, 53, 52, 51},
	{0, 0, 0, 0, 0, 0},
}

// OrderingState holds the per-search move-ordering memory: killers,
// history, and countermoves. It is owned by exactly one search worker
// (spec.md §5's "no shared mutable state across workers").
type OrderingState struct {
	killers      [MaxPly][2]board.Move
	history      [64][64]int
	counterMoves [12][64]board.Move
}

// NewOrderingState returns a fresh, empty ordering state.
func NewOrderingState() *OrderingState {
	os := &OrderingState{}
	os.Clear()
	return os
}

// Clear resets killers/countermoves and ages the history table, used at the
// start of a new choose_move call.
func (os *OrderingState) Clear() {
	for i := range os.killers {
		os.killers[i][0] = board.NoMove
		os.killers[i][1] = board.NoMove
	}
	for i := range os.history {
		for j := range os.history[i] {
			os.history[i][j] /= 2
		}
	}
	for i := range os.counterMoves {
		for j := range os.counterMoves[i] {
			os.counterMoves[i][j] = board.NoMove
		}
	}
}

func pieceIndex(c board.Color, pt board.PieceType) int {
	return int(c)*6 + int(pt)
}

// RecordCutoff updates killers/history/countermove after m caused a beta
// cutoff at ply, only for quiet moves (captures are never stored as killers).
func (os *OrderingState) RecordCutoff(m board.Move, ply, depth int, prevMove board.Move, prevColor board.Color, prevType board.PieceType) {
	if os.killers[ply][0] != m {
		os.killers[ply][1] = os.killers[ply][0]
		os.killers[ply][0] = m
	}
	os.history[m.From()][m.To()] += depth * depth
	if prevMove != board.NoMove {
		os.counterMoves[pieceIndex(prevColor, prevType)][prevMove.To()] = m
	}
}

// Context carries the per-node information needed to score this node's
// candidate moves.
type Context struct {
	Board       *board.Board
	TTMove      board.Move
	PVMove      board.Move
	LastMoveTo  board.Square
	InCheck     bool
	Ply         int
	MaxThinking bool
	PrevMove    board.Move
	PrevColor   board.Color
	PrevType    board.PieceType
}

// Order sorts ml in place, best move first, per spec.md §4.3.
func (os *OrderingState) Order(ml *board.MoveList, ctx Context) {
	n := ml.Len()
	scores := make([]int, n)
	for i := 0; i < n; i++ {
		scores[i] = os.score(ml.Get(i), ctx)
	}
	// Selection sort: move lists are short (legal moves per position rarely
	// exceed ~40) and this avoids allocating a sort.Interface closure.
	for i := 0; i < n; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if scores[j] > scores[best] {
				best = j
			}
		}
		if best != i {
			scores[i], scores[best] = scores[best], scores[i]
			ml.Swap(i, best)
		}
	}
}

func (os *OrderingState) score(m board.Move, ctx Context) int {
	if m == ctx.TTMove {
		return scoreTTMove
	}
	if m == ctx.PVMove {
		return scorePVMove
	}

	isCapture := m.IsCapture(ctx.Board)
	var evasionBonus int
	if ctx.InCheck {
		mover := ctx.Board.PieceAt(m.From())
		switch {
		case isCapture:
			evasionBonus = evasionCaptureBonus
		case mover != nil && mover.Type == board.King:
			if ctx.Board.KingMoveIsSafe(m.From(), m.To(), mover.Color) {
				evasionBonus = evasionSafeKingBonus
			} else {
				evasionBonus = evasionAttackedKingBonus
			}
		default:
			evasionBonus = evasionBlockBonus
		}
	}

	if isCapture {
		victimSq := m.To()
		if m.IsEnPassant() {
			victimSq = board.NewSquare(m.To().File(), m.From().Rank())
		}
		victim := ctx.Board.PieceAt(victimSq)
		attacker := ctx.Board.PieceAt(m.From())
		mvv := 0
		if victim != nil && attacker != nil {
			mvv = mvvLva[victim.Type][attacker.Type]
		}
		if m.To() == ctx.LastMoveTo {
			return scoreRecapture + mvv + evasionBonus
		}
		net := seeLite(ctx.Board, m)
		if net < 0 {
			demotion := 0
			if ctx.MaxThinking {
				demotion = -net * 100
			}
			return scoreLosingCapture + mvv - demotion + evasionBonus
		}
		return scoreGoodCapture + mvv + evasionBonus
	}

	if m.IsPromotion() {
		s := scorePromotion + evasionBonus
		if m.Promotion() == board.Queen {
			s += scoreQueenPromoAdd
		}
		return s
	}

	if os.killers[ctx.Ply][0] == m {
		return scoreKiller1 + evasionBonus
	}
	if os.killers[ctx.Ply][1] == m {
		return scoreKiller2 + evasionBonus
	}

	if ctx.PrevMove != board.NoMove && os.counterMoves[pieceIndex(ctx.PrevColor, ctx.PrevType)][ctx.PrevMove.To()] == m {
		return scoreCounterMove + evasionBonus
	}

	return os.history[m.From()][m.To()] + evasionBonus
}
