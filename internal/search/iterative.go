package search

import (
	"github.com/brainit-consulting/chess-sub002/internal/board"
)

// baseAspirationWindow is the initial half-width of the aspiration window,
// widened on each failed re-search (spec.md §4.6).
const baseAspirationWindow = 25

// DepthResult is reported to an OnDepth callback after each completed depth.
type DepthResult struct {
	Depth int
	Move  board.Move
	Score int
	PV    []board.Move
	Nodes uint64
}

// IterativeDeepen runs depth 1..maxDepth, reporting each completed depth to
// onDepth (may be nil), and returns the last fully completed result. It
// never returns a zero-value Move when legal moves exist at the root
// (spec.md §4.6's "never return without a move" rule): if a depth is
// aborted mid-search the previous depth's result is kept instead.
func (s *Searcher) IterativeDeepen(maxDepth int, tm *TimeManager, onDepth func(DepthResult)) DepthResult {
	s.tt.NewSearch()

	rootMoves := board.GenerateLegalMoves(s.gs)
	var best DepthResult
	if rootMoves.Len() > 0 {
		best = DepthResult{Move: rootMoves.Get(0), Score: 0}
	}

	prevScore := 0
	haveScore := false

	for depth := 1; depth <= maxDepth; depth++ {
		if tm != nil {
			s.hasDeadline = tm.HasDeadline()
			s.deadline = tm.Deadline()
			if tm.Expired() {
				break
			}
			if depth > 1 && !tm.ShouldStartNextDepth(tm.Elapsed()) {
				break
			}
		}
		if s.stopFlag.Load() {
			break
		}

		score, ok := s.searchDepthWithAspiration(depth, prevScore, haveScore)
		if !ok {
			// Aborted mid-depth: the partial result is unreliable, keep the
			// previous depth's move and stop deepening.
			break
		}

		line := s.PV()
		move := best.Move
		if len(line) > 0 {
			move = line[0]
		}
		best = DepthResult{Depth: depth, Move: move, Score: score, PV: line, Nodes: s.nodes}
		prevScore = score
		haveScore = true

		if onDepth != nil {
			onDepth(best)
		}

		s.SetPreviousPV(line)

		if IsMateScore(score) && MatePlies(score) <= depth {
			break
		}
	}

	return best
}

// searchDepthWithAspiration runs one depth with a narrow window around the
// previous depth's score, widening and re-searching on fail-low/fail-high,
// per spec.md §4.6. ok is false if the search was cancelled mid-depth, in
// which case score is not meaningful.
func (s *Searcher) searchDepthWithAspiration(depth, prevScore int, haveScore bool) (score int, ok bool) {
	if depth < 4 || !haveScore {
		score = s.Search(depth, -InfScore, InfScore)
		return score, !s.stopFlag.Load()
	}

	window := baseAspirationWindow
	alpha := prevScore - window
	beta := prevScore + window
	retries := 0

	for {
		score = s.Search(depth, alpha, beta)
		if s.stopFlag.Load() {
			return 0, false
		}

		if score <= alpha {
			retries++
			if retries >= 3 {
				alpha = -InfScore
			} else {
				window *= 2
				alpha = prevScore - window
			}
			continue
		}
		if score >= beta {
			retries++
			if retries >= 3 {
				beta = InfScore
			} else {
				window *= 2
				beta = prevScore + window
			}
			continue
		}
		return score, true
	}
}
