// Package ai wires the search, evaluator, and root policy layer together
// behind the single choose_move entry point of spec.md §4.8, plus the hint
// and explain request kinds of §5's concurrency model.
package ai

import (
	"time"

	"github.com/brainit-consulting/chess-sub002/internal/board"
	"github.com/brainit-consulting/chess-sub002/internal/config"
	"github.com/brainit-consulting/chess-sub002/internal/eval"
	"github.com/brainit-consulting/chess-sub002/internal/logging"
	"github.com/brainit-consulting/chess-sub002/internal/nnue"
	"github.com/brainit-consulting/chess-sub002/internal/policy"
	"github.com/brainit-consulting/chess-sub002/internal/search"
)

// Difficulty selects a budget preset per spec.md §4.6.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Max    Difficulty = "max"
)

// Options is the configuration envelope of spec.md §6 accepted by ChooseMove.
type Options struct {
	Difficulty      Difficulty
	Seed            int64
	PlayForWin      bool
	RecentPositions []uint64
	DepthOverride   int
	MaxTimeMs       int
	MaxDepth        int
	StopRequested   func() bool
	OnProgress      func(search.DepthResult)

	RepetitionPenaltyScale   float64
	HardRepetitionNudgeScale float64
	RepeatBanWindowCP        int
	TwoPlyRepeatPenalty      int
	ContemptCP               int
	DrawHoldThreshold        int
	TopMoveWindow            int
	FairnessWindow           int
}

// Result is returned by ChooseMove: the selected move plus the diagnostics
// of the deepest completed search depth a host typically wants to display.
type Result struct {
	Move        board.Move
	Depth       int
	Score       int
	Nodes       uint64
	MateInPlies int
}

// Engine owns one choose_move worker's transient search state: a TT,
// ordering state, and searcher. Per spec.md §5, a host wanting concurrent
// move/hint/explain workers constructs one Engine per worker — nothing here
// is safe to share across goroutines.
type Engine struct {
	tt       *search.TranspositionTable
	order    *search.OrderingState
	searcher *search.Searcher
	nnueEval *nnue.Evaluator
	settings config.Settings
}

// NewEngine builds an Engine with a ttSizeMB-sized transposition table,
// optionally overlaying settings from a TOML file at configPath ("" for
// hardcoded defaults only).
func NewEngine(ttSizeMB int, configPath string) *Engine {
	tt := search.NewTranspositionTable(ttSizeMB)
	order := search.NewOrderingState()
	return &Engine{
		tt:       tt,
		order:    order,
		searcher: search.NewSearcher(tt, order),
		settings: config.Load(configPath),
	}
}

// LoadNNUE wires a weights network into the engine, maintained incrementally
// via Apply/Refresh calls the caller must pair with its own MakeMove/
// UnmakeMove calls. Passing nil disables the NNUE mix.
func (e *Engine) LoadNNUE(net *nnue.Network) {
	if net == nil {
		e.nnueEval = nil
		return
	}
	e.nnueEval = nnue.NewEvaluator(net)
}

func (e *Engine) difficultySettings(diff Difficulty) config.DifficultySettings {
	if s, ok := e.settings.Difficulty[string(diff)]; ok {
		return s
	}
	return config.DefaultDifficulties["medium"]
}

func (e *Engine) policyParams(opts Options, diff config.DifficultySettings) policy.Params {
	p := policy.Params{
		PlayForWin:               opts.PlayForWin,
		Hard:                     opts.Difficulty == Hard,
		RepetitionPenaltyScale:   e.settings.Policy.RepetitionPenaltyScale,
		HardRepetitionNudgeScale: e.settings.Policy.HardRepetitionNudgeScale,
		RepeatBanWindowCP:        e.settings.Policy.RepeatBanWindowCP,
		TwoPlyRepeatPenalty:      e.settings.Policy.TwoPlyRepeatPenalty,
		ContemptCP:               e.settings.Policy.ContemptCP,
		DrawHoldThreshold:        e.settings.Policy.DrawHoldThreshold,
		TopMoveWindow:            e.settings.Policy.TopMoveWindow,
		FairnessWindow:           e.settings.Policy.FairnessWindow,
		Seed:                     opts.Seed,
	}
	if opts.RepetitionPenaltyScale != 0 {
		p.RepetitionPenaltyScale = opts.RepetitionPenaltyScale
	}
	if opts.HardRepetitionNudgeScale != 0 {
		p.HardRepetitionNudgeScale = opts.HardRepetitionNudgeScale
	}
	if opts.RepeatBanWindowCP != 0 {
		p.RepeatBanWindowCP = opts.RepeatBanWindowCP
	}
	if opts.TwoPlyRepeatPenalty != 0 {
		p.TwoPlyRepeatPenalty = opts.TwoPlyRepeatPenalty
	}
	if opts.ContemptCP != 0 {
		p.ContemptCP = opts.ContemptCP
	}
	if opts.DrawHoldThreshold != 0 {
		p.DrawHoldThreshold = opts.DrawHoldThreshold
	}
	if opts.TopMoveWindow != 0 {
		p.TopMoveWindow = opts.TopMoveWindow
	}
	if opts.FairnessWindow != 0 {
		p.FairnessWindow = opts.FairnessWindow
	}
	if opts.RecentPositions != nil {
		p.RecentPositions = make(map[uint64]bool, len(opts.RecentPositions))
		for _, k := range opts.RecentPositions {
			p.RecentPositions[k] = true
		}
	}
	return p
}

// ChooseMove is spec.md §4.8's choose_move entry point. ok is false only
// when gs has no legal moves for the side to move.
func (e *Engine) ChooseMove(gs *board.GameState, opts Options) (Result, bool) {
	legal := board.GenerateLegalMoves(gs)
	if legal.Len() == 0 {
		return Result{}, false
	}
	if legal.Len() == 1 {
		return Result{Move: legal.Get(0)}, true
	}

	diff := e.difficultySettings(opts.Difficulty)
	maxDepth := diff.MaxDepth
	if opts.DepthOverride > 0 {
		maxDepth = opts.DepthOverride
	}
	if opts.MaxDepth > 0 {
		maxDepth = opts.MaxDepth
	}
	maxTimeMs := diff.MaxTimeMs
	if opts.MaxTimeMs > 0 {
		maxTimeMs = opts.MaxTimeMs
	}

	microQDepth := 0
	if diff.MicroQuiescence {
		microQDepth = e.settings.Policy.MicroQuiescenceDepth
	}

	evalOpts := eval.Options{
		MaxThinking: opts.Difficulty == Max,
		NNUEMix:     diff.NNUEMixDefault,
	}
	if e.nnueEval != nil && evalOpts.NNUEMix > 0 {
		e.nnueEval.Refresh(gs)
		gs.NNUEAcc = e.nnueEval
	} else {
		gs.NNUEAcc = nil
	}

	var tm *search.TimeManager
	hasDeadline := false
	var deadline time.Time
	if maxTimeMs > 0 {
		tm = search.NewTimeManager()
		budget := search.Budget{
			Optimum: time.Duration(maxTimeMs) * time.Millisecond * 7 / 10,
			Max:     time.Duration(maxTimeMs) * time.Millisecond,
		}
		tm.Init(budget)
		hasDeadline = true
		deadline = tm.Deadline()
	}

	e.order.Clear()
	e.searcher.Configure(gs, evalOpts, microQDepth, opts.StopRequested, deadline, hasDeadline)

	best := e.searcher.IterativeDeepen(maxDepth, tm, opts.OnProgress)
	if best.Depth == 0 {
		logging.Engine().Warning("choose_move: no depth completed, falling back to first legal move")
		return Result{Move: legal.Get(0)}, true
	}

	finalMove := best.Move
	mateInPlies := 0
	if search.IsMateScore(best.Score) {
		mateInPlies = search.MatePlies(best.Score)
	}

	if opts.PlayForWin {
		rootCandidates := e.searcher.RootCandidates(best.Depth)
		if len(rootCandidates) > 0 {
			policyCandidates := make([]policy.Candidate, len(rootCandidates))
			for i, rc := range rootCandidates {
				policyCandidates[i] = policy.Candidate{
					Move:        rc.Move,
					Score:       rc.Score,
					NextKey:     rc.NextKey,
					GivesCheck:  rc.GivesCheck,
					MateInPlies: rc.MateInPlies,
				}
			}
			params := e.policyParams(opts, diff)
			finalMove = policy.Select(gs, policyCandidates, params)
		}
	}

	logging.Engine().Infof("choose_move: depth=%d score=%d nodes=%d move=%s", best.Depth, best.Score, best.Nodes, finalMove)

	return Result{
		Move:        finalMove,
		Depth:       best.Depth,
		Score:       best.Score,
		Nodes:       best.Nodes,
		MateInPlies: mateInPlies,
	}, true
}

// Evaluate implements evaluate_state.
func (e *Engine) Evaluate(gs *board.GameState, perspective board.Color, maxThinking bool, nnueMix float64) int {
	if e.nnueEval != nil && nnueMix > 0 {
		e.nnueEval.Refresh(gs)
		gs.NNUEAcc = e.nnueEval
	} else {
		gs.NNUEAcc = nil
	}
	return eval.Evaluate(gs, perspective, eval.Options{MaxThinking: maxThinking, NNUEMix: nnueMix})
}
