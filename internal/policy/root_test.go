package policy

import (
	"testing"

	"github.com/brainit-consulting/chess-sub002/internal/board"
)

func baseParams() Params {
	return Params{
		RepetitionPenaltyScale:   1.0,
		HardRepetitionNudgeScale: 1.5,
		RepeatBanWindowCP:        40,
		TwoPlyRepeatPenalty:      35,
		ContemptCP:               15,
		DrawHoldThreshold:        -150,
		TopMoveWindow:            20,
		FairnessWindow:           12,
		Seed:                     1,
	}
}

func TestSelectSingleCandidateShortCircuits(t *testing.T) {
	gs := board.NewGameState()
	c := Candidate{Move: board.NewMove(board.E2, board.E4), Score: 10}
	got := Select(gs, []Candidate{c}, baseParams())
	if got != c.Move {
		t.Errorf("Select with one candidate = %v, want %v", got, c.Move)
	}
}

func TestSelectPrefersHighestScoreWithoutPlayForWin(t *testing.T) {
	gs := board.NewGameState()
	best := Candidate{Move: board.NewMove(board.E2, board.E4), Score: 100}
	worse := Candidate{Move: board.NewMove(board.D2, board.D4), Score: 20}
	params := baseParams()
	params.PlayForWin = false

	got := Select(gs, []Candidate{worse, best}, params)
	if got != best.Move {
		t.Errorf("Select should prefer the higher-scored candidate, got %v", got)
	}
}

func TestSelectIsDeterministicGivenSameSeed(t *testing.T) {
	gs := board.NewGameState()
	params := baseParams()
	params.PlayForWin = false
	candidates := []Candidate{
		{Move: board.NewMove(board.E2, board.E4), Score: 50},
		{Move: board.NewMove(board.D2, board.D4), Score: 50},
		{Move: board.NewMove(board.G1, board.F3), Score: 50},
	}

	first := Select(gs, append([]Candidate(nil), candidates...), params)
	second := Select(gs, append([]Candidate(nil), candidates...), params)
	if first != second {
		t.Errorf("Select with the same seed and candidates must be deterministic: %v vs %v", first, second)
	}
}

func TestPlayForWinAvoidsRepetitionWhenWinning(t *testing.T) {
	gs := board.NewGameState()
	gs.RepetitionCounts[gs.Hash] = 2 // position has already occurred twice

	repeat := Candidate{Move: board.NewMove(board.G1, board.F3), Score: 100, NextKey: gs.Hash}
	fresh := Candidate{Move: board.NewMove(board.E2, board.E4), Score: 100, NextKey: 0xDEADBEEF}

	params := baseParams()
	params.PlayForWin = true
	params.RecentPositions = map[uint64]bool{gs.Hash: true}

	got := Select(gs, []Candidate{repeat, fresh}, params)
	if got != fresh.Move {
		t.Errorf("when winning, play-for-win should avoid repeating a recent position: got %v, want %v", got, fresh.Move)
	}
}

func TestMatePreferenceOverridesScore(t *testing.T) {
	gs := board.NewGameState()
	highScoreNoMate := Candidate{Move: board.NewMove(board.E2, board.E4), Score: 5000}
	mateInTwo := Candidate{Move: board.NewMove(board.D2, board.D4), Score: 100, MateInPlies: 3}
	mateInOne := Candidate{Move: board.NewMove(board.G1, board.F3), Score: 50, MateInPlies: 1}

	params := baseParams()
	params.PlayForWin = true

	got := Select(gs, []Candidate{highScoreNoMate, mateInTwo, mateInOne}, params)
	if got != mateInOne.Move {
		t.Errorf("the shortest forced mate must always win, got %v", got)
	}
}

func TestMatePreferencePrefersLongestDelayWhenAllLosing(t *testing.T) {
	gs := board.NewGameState()
	mateIn2 := Candidate{Move: board.NewMove(board.E2, board.E4), Score: -500, MateInPlies: -2}
	mateIn6 := Candidate{Move: board.NewMove(board.D2, board.D4), Score: -500, MateInPlies: -6}

	params := baseParams()
	params.PlayForWin = true

	got := Select(gs, []Candidate{mateIn2, mateIn6}, params)
	if got != mateIn6.Move {
		t.Errorf("when every candidate is a forced loss, prefer the longest delay, got %v", got)
	}
}

func TestBacktrackPenaltySkippedWhenNoCloseAlternative(t *testing.T) {
	gs := board.NewGameState()
	priorMove := board.NewMove(board.G1, board.F3)
	gs.LastMoveByColor[gs.SideToMove] = priorMove

	reversal := Candidate{Move: board.NewMove(board.F3, board.G1), Score: 100}
	farWorse := Candidate{Move: board.NewMove(board.E2, board.E4), Score: -500}

	params := baseParams()
	params.PlayForWin = true

	got := Select(gs, []Candidate{reversal, farWorse}, params)
	if got != reversal.Move {
		t.Errorf("with no close alternative, the backtrack penalty must not override the clear best move, got %v", got)
	}
}

func TestRNGIsDeterministic(t *testing.T) {
	a := NewRNG(123)
	b := NewRNG(123)
	for i := 0; i < 20; i++ {
		if a.Intn(50) != b.Intn(50) {
			t.Fatal("two RNGs with the same seed must produce the same sequence")
		}
	}
}
