package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chessbot/engine"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
search:
  depth: 6
  hash_mb: 64
eval:
  mobility: 25
log:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.Depth != 6 || cfg.Search.HashMB != 64 {
		t.Fatalf("search: got %+v", cfg.Search)
	}
	if cfg.Search.MoveTimeMs != 1000 || cfg.Search.Threads != 1 {
		t.Fatalf("defaults lost: got %+v", cfg.Search)
	}
	want := engine.DefaultWeights
	want.Mobility = 25
	if cfg.Eval != want {
		t.Fatalf("eval weights: got %+v want %+v", cfg.Eval, want)
	}
	if cfg.Log.Level != "debug" || cfg.File != path {
		t.Fatalf("log/file: got %q %q", cfg.Log.Level, cfg.File)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "search:\n  depth: 6\n")
	t.Setenv("CHESSBOT_SEARCH_DEPTH", "4")
	t.Setenv("CHESSBOT_EVAL_KING_SAFETY", "80")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.Depth != 4 {
		t.Fatalf("depth: got %d want 4", cfg.Search.Depth)
	}
	if cfg.Eval.KingSafety != 80 {
		t.Fatalf("king safety: got %d want 80", cfg.Eval.KingSafety)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("missing explicit config file accepted")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cfg.Search.Depth = 0
	cfg.Search.HashMB = -1
	err := cfg.Validate()
	var invalid *InvalidConfig
	if !errors.As(err, &invalid) {
		t.Fatalf("want InvalidConfig, got %v", err)
	}

	path := writeConfig(t, "search:\n  skill_level: 42\n")
	if _, err := Load(path); !errors.As(err, &invalid) {
		t.Fatalf("skill level 42: want InvalidConfig, got %v", err)
	}
}

func TestMoveTime(t *testing.T) {
	s := SearchConfig{MoveTimeMs: 250}
	if got := s.MoveTime().Milliseconds(); got != 250 {
		t.Fatalf("move time: got %dms want 250ms", got)
	}
}
