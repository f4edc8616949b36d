package search

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/brainit-consulting/chess-sub002/internal/board"
	"github.com/brainit-consulting/chess-sub002/internal/eval"
)

// PVTable holds the triangular principal-variation array built up during one
// search call.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

// Line returns the principal variation rooted at ply 0.
func (pv *PVTable) Line() []board.Move {
	n := pv.length[0]
	out := make([]board.Move, n)
	copy(out, pv.moves[0][:n])
	return out
}

// Searcher runs one negamax/PVS search over a single GameState. It owns no
// state shared with any other Searcher (spec.md §5's per-worker isolation):
// every hint worker, move worker, and explain worker constructs its own.
type Searcher struct {
	gs    *board.GameState
	tt    *TranspositionTable
	order *OrderingState

	evalOpts eval.Options

	microQDepth int // 0 = unbounded quiescence, >0 = micro-quiescence horizon

	nodes    uint64
	stopFlag atomic.Bool

	stopRequested func() bool
	deadline      time.Time
	hasDeadline   bool

	pv     PVTable
	prevPV []board.Move // previous iteration's PV, indexed by ply
}

// NewSearcher builds a searcher around a shared TT and a dedicated ordering
// state. tt may be shared across searchers that run sequentially within the
// same worker; order must not be shared across concurrently running workers.
func NewSearcher(tt *TranspositionTable, order *OrderingState) *Searcher {
	return &Searcher{tt: tt, order: order}
}

// Configure prepares the searcher for one choose_move/hint/explain call. The
// NNUE mix, if any, is read from gs.NNUEAcc by eval.Evaluate itself; callers
// that want NNUE must have already wired gs.NNUEAcc to an *nnue.Evaluator
// kept current via OnMakeMove/OnUnmakeMove.
func (s *Searcher) Configure(gs *board.GameState, opts eval.Options, microQDepth int, stopRequested func() bool, deadline time.Time, hasDeadline bool) {
	s.gs = gs
	s.evalOpts = opts
	s.microQDepth = microQDepth
	s.stopRequested = stopRequested
	s.deadline = deadline
	s.hasDeadline = hasDeadline
	s.nodes = 0
	s.stopFlag.Store(false)
	s.prevPV = nil
}

// SetPreviousPV feeds in the prior iterative-deepening depth's PV so the
// current depth can rank its continuation as the preferred move at each ply
// (spec.md §4.3's "previously-played preferred move" tier).
func (s *Searcher) SetPreviousPV(line []board.Move) {
	s.prevPV = line
}

// Stop requests cooperative cancellation; the search returns at its next
// suspension point (spec.md §5).
func (s *Searcher) Stop() { s.stopFlag.Store(true) }

// Nodes reports the node count visited since the last Configure.
func (s *Searcher) Nodes() uint64 { return s.nodes }

// PV returns the principal variation found by the most recent Search call.
func (s *Searcher) PV() []board.Move { return s.pv.Line() }

func (s *Searcher) pvHint(ply int) board.Move {
	if ply < len(s.prevPV) {
		return s.prevPV[ply]
	}
	return board.NoMove
}

// checkStop samples the stop flag and, every few thousand nodes, the
// deadline and external stopRequested callback. Sampling rather than
// checking every node keeps the hot path cheap.
func (s *Searcher) checkStop() bool {
	if s.stopFlag.Load() {
		return true
	}
	if s.nodes&2047 == 0 {
		if s.hasDeadline && !time.Now().Before(s.deadline) {
			s.stopFlag.Store(true)
			return true
		}
		if s.stopRequested != nil && s.stopRequested() {
			s.stopFlag.Store(true)
			return true
		}
	}
	return false
}

// Search runs one fixed-depth negamax pass from the root and returns the
// root score. Callers needing iterative deepening drive this repeatedly
// with increasing depth (see iterative.go).
func (s *Searcher) Search(depth, alpha, beta int) int {
	s.pv.length[0] = 0
	return s.negamax(depth, 0, alpha, beta, false)
}

// lmrReduction implements the logarithmic late-move-reduction formula from
// spec.md §4.5, floored at 1 ply and capped below the remaining depth.
func lmrReduction(depth, moveCount int) int {
	r := 21.46 * math.Log(float64(depth)) * math.Log(float64(moveCount)) / 1024
	ri := int(r)
	if ri < 1 {
		ri = 1
	}
	if max := depth - 1; ri > max {
		ri = max
	}
	if ri < 0 {
		ri = 0
	}
	return ri
}

func (s *Searcher) hasNonPawnMaterial(c board.Color) bool {
	for _, p := range s.gs.Board.PiecesOf(c) {
		if p.Type != board.Pawn && p.Type != board.King {
			return true
		}
	}
	return false
}

func (s *Searcher) nodeContext(ply int, ttMove, pvMove board.Move, inCheck bool) Context {
	ctx := Context{
		Board:       s.gs.Board,
		TTMove:      ttMove,
		PVMove:      pvMove,
		LastMoveTo:  board.NoSquare,
		InCheck:     inCheck,
		Ply:         ply,
		MaxThinking: s.evalOpts.MaxThinking,
		PrevMove:    board.NoMove,
	}
	if last := s.gs.LastMove; last != board.NoMove {
		ctx.LastMoveTo = last.To()
		ctx.PrevMove = last
		ctx.PrevColor = s.gs.SideToMove.Other()
		if p := s.gs.Board.PieceAt(last.To()); p != nil {
			ctx.PrevType = p.Type
		}
	}
	return ctx
}

func (s *Searcher) updatePV(ply int, m board.Move) {
	s.pv.moves[ply][ply] = m
	childLen := s.pv.length[ply+1]
	copy(s.pv.moves[ply][ply+1:childLen], s.pv.moves[ply+1][ply+1:childLen])
	s.pv.length[ply] = childLen
}

// negamax implements spec.md §4.5's seven-step node algorithm: TT probe,
// quiescence handoff at the horizon, null-move pruning, ordered move
// generation with per-move extensions and late-move reductions, principal
// variation search, and a TT store on the way out.
func (s *Searcher) negamax(depth, ply int, alpha, beta int, cutNode bool) int {
	s.pv.length[ply] = ply
	s.nodes++
	if s.checkStop() {
		return 0
	}

	pvNode := beta-alpha > 1

	if ply > 0 {
		if s.gs.HalfMoveClock >= 100 || s.gs.RepetitionCount() >= 3 || s.gs.IsInsufficientMaterial() {
			return 0
		}
		if ply >= MaxPly-1 {
			return eval.Evaluate(s.gs, s.gs.SideToMove, s.evalOpts)
		}
	}

	var ttMove board.Move = board.NoMove
	if entry, ok := s.tt.Probe(s.gs.Hash); ok {
		ttMove = entry.BestMove
		if int(entry.Depth) >= depth && !pvNode {
			score := AdjustScoreFromTT(int(entry.Score), ply)
			switch entry.Flag {
			case TTExact:
				return score
			case TTLowerBound:
				if score >= beta {
					return score
				}
			case TTUpperBound:
				if score <= alpha {
					return score
				}
			}
		}
	}

	if depth <= 0 {
		return s.quiescence(ply, alpha, beta, s.microQDepth)
	}

	inCheck := s.gs.InCheck()

	if !inCheck && !pvNode && depth >= 3 && s.hasNonPawnMaterial(s.gs.SideToMove) {
		r := 2
		if depth > 6 {
			r = 3
		}
		nullUndo := s.gs.MakeNullMove()
		score := -s.negamax(depth-1-r, ply+1, -beta, -beta+1, !cutNode)
		s.gs.UnmakeNullMove(nullUndo)
		if s.stopFlag.Load() {
			return 0
		}
		if score >= beta {
			return beta
		}
	}

	moves := board.GenerateLegalMoves(s.gs)
	if moves.Len() == 0 {
		if inCheck {
			return -MateScore + ply
		}
		return 0
	}

	ctx := s.nodeContext(ply, ttMove, s.pvHint(ply), inCheck)
	s.order.Order(moves, ctx)

	origAlpha := alpha
	bestScore := -InfScore
	bestMove := board.NoMove
	moveCount := 0

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		isCapture := m.IsCapture(s.gs.Board)
		isTrueRecapture := isCapture && m.To() == ctx.LastMoveTo

		undo := s.gs.MakeMove(m)
		moveCount++

		givesCheck := s.gs.InCheck()
		extension := 0
		if givesCheck || isTrueRecapture {
			extension = 1
		}
		newDepth := depth - 1 + extension

		var score int
		if moveCount == 1 {
			score = -s.negamax(newDepth, ply+1, -beta, -alpha, false)
		} else {
			reduction := 0
			if depth >= 3 && moveCount > 3 && extension == 0 && !isCapture && !m.IsPromotion() && !inCheck && !givesCheck {
				reduction = lmrReduction(depth, moveCount)
			}
			score = -s.negamax(newDepth-reduction, ply+1, -alpha-1, -alpha, true)
			if score > alpha && (reduction > 0 || score < beta) {
				score = -s.negamax(newDepth, ply+1, -beta, -alpha, false)
			}
		}

		s.gs.UnmakeMove(m, undo)

		if s.stopFlag.Load() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				s.updatePV(ply, m)
			}
		}

		if score >= beta {
			s.tt.Store(s.gs.Hash, depth, AdjustScoreToTT(score, ply), TTLowerBound, m)
			if !isCapture {
				s.order.RecordCutoff(m, ply, depth, ctx.PrevMove, ctx.PrevColor, ctx.PrevType)
			}
			return score
		}

		if ply == 0 && s.checkStop() {
			break
		}
	}

	flag := TTUpperBound
	if bestScore > origAlpha {
		flag = TTExact
	}
	s.tt.Store(s.gs.Hash, depth, AdjustScoreToTT(bestScore, ply), flag, bestMove)
	return bestScore
}

// quiescence extends search through captures (and, for "hard" difficulty,
// is cut off at a fixed micro-quiescence horizon) so the static evaluation
// at the search frontier is never taken mid-exchange.
func (s *Searcher) quiescence(ply, alpha, beta int, qDepthRemaining int) int {
	s.pv.length[ply] = ply
	s.nodes++
	if s.checkStop() {
		return 0
	}
	if ply >= MaxPly-1 {
		return eval.Evaluate(s.gs, s.gs.SideToMove, s.evalOpts)
	}

	inCheck := s.gs.InCheck()
	standPat := eval.Evaluate(s.gs, s.gs.SideToMove, s.evalOpts)

	if !inCheck {
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
		if qDepthRemaining < 0 {
			return alpha
		}
	}

	var moves *board.MoveList
	if inCheck {
		moves = board.GenerateLegalMoves(s.gs)
	} else {
		moves = board.GenerateCaptures(s.gs)
	}
	if moves.Len() == 0 {
		if inCheck {
			return -MateScore + ply
		}
		return alpha
	}

	ctx := s.nodeContext(ply, board.NoMove, board.NoMove, inCheck)
	s.order.Order(moves, ctx)

	nextQDepth := qDepthRemaining
	if nextQDepth > 0 {
		nextQDepth--
		if nextQDepth == 0 {
			nextQDepth = -1 // horizon reached: the next ply only stands pat
		}
	}

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if !inCheck {
			if net := seeLite(s.gs.Board, m); net < 0 {
				undo := s.gs.MakeMove(m)
				givesCheck := s.gs.InCheck()
				if !givesCheck {
					s.gs.UnmakeMove(m, undo)
					continue
				}
				score := -s.quiescence(ply+1, -beta, -alpha, nextQDepth)
				s.gs.UnmakeMove(m, undo)
				if s.stopFlag.Load() {
					return 0
				}
				if score >= beta {
					return beta
				}
				if score > alpha {
					alpha = score
				}
				continue
			}
		}

		undo := s.gs.MakeMove(m)
		score := -s.quiescence(ply+1, -beta, -alpha, nextQDepth)
		s.gs.UnmakeMove(m, undo)

		if s.stopFlag.Load() {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// RootCandidate is one scored root move, handed to the root policy layer
// (spec.md §4.7 operates over "scored root candidates").
type RootCandidate struct {
	Move        board.Move
	Score       int
	NextKey     uint64
	GivesCheck  bool
	MateInPlies int // 0 = not mate; >0 = mate in N for the mover; <0 = mover is mated in N
}

// RootCandidates scores every legal root move at depth by searching its
// reply to depth-1 (or quiescence when depth<=1), giving the façade enough
// per-move information to run the root policy layer on top of whichever
// depth the iterative-deepening driver last completed.
func (s *Searcher) RootCandidates(depth int) []RootCandidate {
	moves := board.GenerateLegalMoves(s.gs)
	ctx := s.nodeContext(0, board.NoMove, s.pvHint(0), s.gs.InCheck())
	s.order.Order(moves, ctx)

	out := make([]RootCandidate, 0, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := s.gs.MakeMove(m)

		var score int
		if depth <= 1 {
			score = -s.quiescence(1, -InfScore, InfScore, s.microQDepth)
		} else {
			score = -s.negamax(depth-1, 1, -InfScore, InfScore, false)
		}
		nextKey := s.gs.Hash
		givesCheck := s.gs.InCheck()

		s.gs.UnmakeMove(m, undo)

		mate := 0
		if IsMateScore(score) {
			mate = MatePlies(score)
		}
		out = append(out, RootCandidate{Move: m, Score: score, NextKey: nextKey, GivesCheck: givesCheck, MateInPlies: mate})
	}
	return out
}

// IsMateScore reports whether score represents a forced mate rather than a
// material/positional evaluation.
func IsMateScore(score int) bool {
	return score > MateScore-MaxPly || score < -MateScore+MaxPly
}

// MatePlies returns the number of plies to mate represented by score,
// positive meaning the side to move delivers mate, negative meaning it is
// mated. Only meaningful when IsMateScore(score) is true.
func MatePlies(score int) int {
	if score > 0 {
		return MateScore - score
	}
	return -MateScore - score
}
