// Package config loads the optional policy/difficulty defaults file and
// applies the three-tier precedence described in the move-selection façade:
// caller options override file settings, which override hardcoded defaults.
package config

import (
	"log"

	"github.com/BurntSushi/toml"

	"github.com/brainit-consulting/chess-sub002/internal/logging"
)

// PolicySettings carries the numeric root-policy-layer defaults from §6 of
// the configuration envelope.
type PolicySettings struct {
	RepetitionPenaltyScale   float64 `toml:"repetition_penalty_scale"`
	HardRepetitionNudgeScale float64 `toml:"hard_repetition_nudge_scale"`
	RepeatBanWindowCP        int     `toml:"repeat_ban_window_cp"`
	TwoPlyRepeatPenalty      int     `toml:"two_ply_repeat_penalty"`
	ContemptCP               int     `toml:"contempt_cp"`
	DrawHoldThreshold        int     `toml:"draw_hold_threshold"`
	TopMoveWindow            int     `toml:"top_move_window"`
	FairnessWindow           int     `toml:"fairness_window"`
	MicroQuiescenceDepth     int     `toml:"micro_quiescence_depth"`
}

// DifficultySettings carries one difficulty tier's search-limit defaults.
type DifficultySettings struct {
	MaxDepth        int  `toml:"max_depth"`
	MaxTimeMs       int  `toml:"max_time_ms"`
	UseTT           bool `toml:"use_tt"`
	MicroQuiescence bool `toml:"micro_quiescence"`
	NNUEMixDefault  float64 `toml:"nnue_mix_default"`
}

// Settings is the full config envelope, optionally overlaid from a TOML
// file on top of DefaultPolicy/DefaultDifficulties.
type Settings struct {
	Policy      PolicySettings                 `toml:"policy"`
	Difficulty  map[string]DifficultySettings  `toml:"difficulty"`
}

// DefaultPolicy mirrors the hardcoded package defaults used when no config
// file is present, or a file omits a field (toml.Decode leaves it zero, so
// Load always starts from this struct and decodes on top of it).
var DefaultPolicy = PolicySettings{
	RepetitionPenaltyScale:   1.0,
	HardRepetitionNudgeScale: 1.5,
	RepeatBanWindowCP:        40,
	TwoPlyRepeatPenalty:      35,
	ContemptCP:               15,
	DrawHoldThreshold:        -150,
	TopMoveWindow:            20,
	FairnessWindow:           12,
	MicroQuiescenceDepth:     1,
}

// DefaultDifficulties mirrors spec.md §4.6's budget presets.
var DefaultDifficulties = map[string]DifficultySettings{
	"easy":   {MaxDepth: 1},
	"medium": {MaxDepth: 2},
	"hard":   {MaxDepth: 3, MaxTimeMs: 3000, UseTT: true, MicroQuiescence: true},
	"max":    {MaxDepth: 7, MaxTimeMs: 10000, UseTT: true, NNUEMixDefault: 0},
}

// Load reads path (a TOML file) on top of the hardcoded defaults. A missing
// file is not an error: it falls through to the defaults, logged at Info, per
// SPEC_FULL.md's ambient-stack error-handling note.
func Load(path string) Settings {
	settings := Settings{
		Policy:     DefaultPolicy,
		Difficulty: cloneDifficulties(DefaultDifficulties),
	}
	if path == "" {
		return settings
	}
	if _, err := toml.DecodeFile(path, &settings); err != nil {
		log.Println("config: no file at", path, "- using defaults:", err)
		logging.Engine().Infof("config: no file at %s, using defaults (%v)", path, err)
		return Settings{Policy: DefaultPolicy, Difficulty: cloneDifficulties(DefaultDifficulties)}
	}
	return settings
}

func cloneDifficulties(src map[string]DifficultySettings) map[string]DifficultySettings {
	out := make(map[string]DifficultySettings, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
