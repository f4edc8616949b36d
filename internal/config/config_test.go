package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	got := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if got.Policy != DefaultPolicy {
		t.Errorf("Load with a missing file should return DefaultPolicy, got %+v", got.Policy)
	}
	if got.Difficulty["hard"] != DefaultDifficulties["hard"] {
		t.Errorf("Load with a missing file should return DefaultDifficulties, got %+v", got.Difficulty["hard"])
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	got := Load("")
	if got.Policy != DefaultPolicy {
		t.Error("Load(\"\") should use hardcoded defaults")
	}
}

func TestLoadOverlaysFileOnTopOfDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[policy]
contempt_cp = 99

[difficulty.hard]
max_depth = 5
max_time_ms = 3000
use_tt = true
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got := Load(path)
	if got.Policy.ContemptCP != 99 {
		t.Errorf("ContemptCP = %d, want 99 from the file", got.Policy.ContemptCP)
	}
	if got.Policy.RepetitionPenaltyScale != DefaultPolicy.RepetitionPenaltyScale {
		t.Errorf("fields absent from the file should keep their decoded default, got %v", got.Policy.RepetitionPenaltyScale)
	}
	if got.Difficulty["hard"].MaxDepth != 5 {
		t.Errorf("Difficulty[hard].MaxDepth = %d, want 5 from the file", got.Difficulty["hard"].MaxDepth)
	}
}

func TestDefaultDifficultiesCoverEveryTier(t *testing.T) {
	for _, name := range []string{"easy", "medium", "hard", "max"} {
		if _, ok := DefaultDifficulties[name]; !ok {
			t.Errorf("DefaultDifficulties is missing tier %q", name)
		}
	}
	if DefaultDifficulties["max"].MaxDepth != 7 {
		t.Errorf("max tier depth cap = %d, want 7", DefaultDifficulties["max"].MaxDepth)
	}
}
