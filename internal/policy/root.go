// Package policy implements the root policy layer of spec.md §4.7: a
// sequence of score adjustments and deterministic tie-breaks applied to the
// scored root candidates before the façade returns a move, in the idiom of
// the search package's small stateful knob structs (Params mirrors
// TimeManager's struct-of-knobs-plus-apply-method shape).
package policy

import (
	"github.com/brainit-consulting/chess-sub002/internal/board"
	"github.com/brainit-consulting/chess-sub002/internal/logging"
)

// Candidate is one scored root move, as produced by the search driver.
type Candidate struct {
	Move        board.Move
	Score       int    // from the mover's perspective
	NextKey     uint64 // position key after playing Move
	GivesCheck  bool
	MateInPlies int // 0 = not a forced mate; >0 = mate in N for the mover; <0 = mover is mated in N
}

// Params assembles the root-policy-layer configuration for one choose_move
// call: difficulty defaults overlaid by caller overrides, per spec.md §6.
type Params struct {
	PlayForWin bool
	Hard       bool // applies HardRepetitionNudgeScale on top of RepetitionPenaltyScale

	RecentPositions map[uint64]bool

	RepetitionPenaltyScale   float64
	HardRepetitionNudgeScale float64
	RepeatBanWindowCP        int
	TwoPlyRepeatPenalty      int
	ContemptCP               int
	DrawHoldThreshold        int
	TopMoveWindow            int
	FairnessWindow           int

	Seed int64
}

const baseRepetitionPenalty = 60

// Select runs the ten-step pipeline over candidates and returns the chosen
// move. candidates must be non-empty; callers handle the no-legal-moves and
// single-legal states before calling Select (spec.md §4.7's root state
// machine).
func Select(gs *board.GameState, candidates []Candidate, params Params) board.Move {
	if len(candidates) == 1 {
		return candidates[0].Move
	}

	scores := make([]int, len(candidates))
	for i, c := range candidates {
		scores[i] = c.Score
	}

	if params.PlayForWin {
		applyRepetitionPenalty(gs, candidates, scores, params)
		applyTwoPlyRepeatPenalty(gs, candidates, scores, params)
		applyDrawishRepeatPenalty(gs, candidates, scores, params)
		applyContempt(gs, candidates, scores, params)
		applyBacktrackPenalty(gs, candidates, scores, params)
		applyThreefoldAvoidance(gs, candidates, scores, params)
		applyRepeatTieBreak(gs, candidates, scores, params)
	}

	pool, topIdx := fairnessWindow(scores, params.FairnessWindow)
	chosen := topMoveVariety(pool, scores, params.Seed)
	chosen = applyMatePreference(candidates, scores, chosen, topIdx)

	logging.Policy().Debugf("root policy selected %s (score %d) from %d candidates", candidates[chosen].Move, scores[chosen], len(candidates))
	return candidates[chosen].Move
}

func isRepeat(c Candidate, params Params) bool {
	return params.RecentPositions != nil && params.RecentPositions[c.NextKey]
}

func reverses(m, prior board.Move) bool {
	return prior != board.NoMove && m.From() == prior.To() && m.To() == prior.From()
}

// applyRepetitionPenalty is step 1: penalize candidates landing on a
// recently visited key, skipped once the mover is clearly losing.
func applyRepetitionPenalty(gs *board.GameState, candidates []Candidate, scores []int, params Params) {
	for i, c := range candidates {
		if scores[i] < params.DrawHoldThreshold {
			continue
		}
		if isRepeat(c, params) {
			scale := params.RepetitionPenaltyScale
			if params.Hard {
				scale *= params.HardRepetitionNudgeScale
			}
			scores[i] -= int(float64(baseRepetitionPenalty) * scale)
		}
	}
}

// applyTwoPlyRepeatPenalty is step 2: A-B-A-B rook-shuffle detection. Only
// the mover's own last-move-by-color is visible here (GameState does not
// retain a deeper move history), so this detects the narrower case of the
// candidate reversing the mover's own previous move while the position also
// already matches a recent key — a deliberate simplification of the full
// four-ply pattern, documented in DESIGN.md.
func applyTwoPlyRepeatPenalty(gs *board.GameState, candidates []Candidate, scores []int, params Params) {
	moverLast := gs.LastMoveByColor[gs.SideToMove]
	for i, c := range candidates {
		if reverses(c.Move, moverLast) && isRepeat(c, params) {
			scores[i] -= params.TwoPlyRepeatPenalty
		}
	}
}

// applyDrawishRepeatPenalty is step 3: in a near-balanced position, penalize
// repeating candidates if a non-repeat, non-check alternative exists.
func applyDrawishRepeatPenalty(gs *board.GameState, candidates []Candidate, scores []int, params Params) {
	const balancedBand = 50
	hasQuietAlternative := false
	for _, c := range candidates {
		if !isRepeat(c, params) && !c.GivesCheck {
			hasQuietAlternative = true
			break
		}
	}
	if !hasQuietAlternative {
		return
	}
	for i, c := range candidates {
		if abs(scores[i]) <= balancedBand && isRepeat(c, params) {
			scores[i] -= params.TwoPlyRepeatPenalty / 2
		}
	}
}

// applyContempt is step 4: when not losing, subtract contempt from
// repeating candidates so the engine avoids draws it could be winning.
func applyContempt(gs *board.GameState, candidates []Candidate, scores []int, params Params) {
	for i, c := range candidates {
		if scores[i] >= params.DrawHoldThreshold && isRepeat(c, params) {
			scores[i] -= params.ContemptCP
		}
	}
}

// applyBacktrackPenalty is step 5: discourage immediately reversing the
// mover's own previous move unless every alternative is far worse.
func applyBacktrackPenalty(gs *board.GameState, candidates []Candidate, scores []int, params Params) {
	moverLast := gs.LastMoveByColor[gs.SideToMove]
	for i, c := range candidates {
		if !reverses(c.Move, moverLast) {
			continue
		}
		hasCloseAlternative := false
		for j := range candidates {
			if j == i {
				continue
			}
			if scores[j] >= scores[i]-300 {
				hasCloseAlternative = true
				break
			}
		}
		if hasCloseAlternative {
			scores[i] -= params.TopMoveWindow * 3
		}
	}
}

// applyThreefoldAvoidance is step 6: penalize a candidate that would produce
// a third occurrence of its key, unless it is clearly the best move.
func applyThreefoldAvoidance(gs *board.GameState, candidates []Candidate, scores []int, params Params) {
	best := scores[0]
	for _, s := range scores {
		if s > best {
			best = s
		}
	}
	for i, c := range candidates {
		if gs.RepetitionCounts[c.NextKey]+1 < 3 {
			continue
		}
		if best-scores[i] >= params.RepeatBanWindowCP {
			continue // already clearly not the best; no need to penalize further
		}
		clearlyBest := true
		for j := range scores {
			if j != i && scores[i]-scores[j] < params.RepeatBanWindowCP {
				clearlyBest = false
				break
			}
		}
		if clearlyBest {
			continue // ahead of every other candidate by at least the window: leave it
		}
		scores[i] -= params.RepeatBanWindowCP
	}
}

// applyRepeatTieBreak is step 7: within the repeat-ban window of the top
// score, prefer a non-repeat candidate over a repeat.
func applyRepeatTieBreak(gs *board.GameState, candidates []Candidate, scores []int, params Params) {
	topIdx := argmax(scores)
	if !isRepeat(candidates[topIdx], params) {
		return
	}
	for i, c := range candidates {
		if i == topIdx || isRepeat(c, params) {
			continue
		}
		if scores[topIdx]-scores[i] <= params.RepeatBanWindowCP {
			scores[i] = scores[topIdx] + 1
			return
		}
	}
}

// fairnessWindow is step 8: collect the indices of every candidate within
// window centipawns of the top score.
func fairnessWindow(scores []int, window int) (pool []int, topIdx int) {
	topIdx = argmax(scores)
	top := scores[topIdx]
	for i, s := range scores {
		if top-s <= window {
			pool = append(pool, i)
		}
	}
	return pool, topIdx
}

// topMoveVariety is step 9: a seeded deterministic tie-break among the
// fairness-window pool.
func topMoveVariety(pool []int, scores []int, seed int64) int {
	if len(pool) == 1 {
		return pool[0]
	}
	rng := NewRNG(seed)
	return pool[rng.Intn(len(pool))]
}

// applyMatePreference is step 10: a forced mate always wins over a
// non-mate; among mates, prefer the shortest; if every candidate loses by
// force, prefer the longest delay.
func applyMatePreference(candidates []Candidate, scores []int, chosen, topIdx int) int {
	bestMateIdx := -1
	for i, c := range candidates {
		if c.MateInPlies <= 0 {
			continue
		}
		if bestMateIdx == -1 || c.MateInPlies < candidates[bestMateIdx].MateInPlies {
			bestMateIdx = i
		}
	}
	if bestMateIdx != -1 {
		return bestMateIdx
	}

	anyNonLosing := false
	for _, c := range candidates {
		if c.MateInPlies >= 0 {
			anyNonLosing = true
			break
		}
	}
	if anyNonLosing {
		return chosen
	}

	worstMateIdx := 0
	for i, c := range candidates {
		if c.MateInPlies < candidates[worstMateIdx].MateInPlies {
			worstMateIdx = i
		}
	}
	return worstMateIdx
}

func argmax(scores []int) int {
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
