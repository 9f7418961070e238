package engine

import (
	"testing"

	"chessbot/board"
)

func TestTransTableStoreProbe(t *testing.T) {
	tt := NewTransTable(1)
	m := board.NewMove(board.E2, board.E4, board.DoublePawnPush, board.NoKind)
	tt.Store(0xABCDEF, 4, 2, m, 35, Exact)

	e, ok := tt.Probe(0xABCDEF)
	if !ok {
		t.Fatalf("stored entry not found")
	}
	if e.Move != m || e.Score != 35 || e.Depth != 4 || e.Bound != Exact {
		t.Fatalf("entry: got %+v", e)
	}
	if _, ok := tt.Probe(0x123456); ok {
		t.Fatalf("probe of unknown key hit")
	}
	if tt.Hashfull() < 0 || tt.Capacity() < clusterSize {
		t.Fatalf("bad sizing: capacity %d", tt.Capacity())
	}
}

func TestTransTableUsable(t *testing.T) {
	tests := []struct {
		name        string
		bound       Bound
		score       int32
		depth       int
		alpha, beta int32
		want        bool
	}{
		{"exact", Exact, 10, 3, -50, 50, true},
		{"too shallow", Exact, 10, 5, -50, 50, false},
		{"lower above beta", LowerBound, 60, 3, -50, 50, true},
		{"lower inside window", LowerBound, 10, 3, -50, 50, false},
		{"upper below alpha", UpperBound, -60, 3, -50, 50, true},
		{"upper inside window", UpperBound, 10, 3, -50, 50, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := TTEntry{Key: 1, Score: tc.score, Depth: 4, Bound: tc.bound}
			score, ok := e.Usable(tc.depth, 0, tc.alpha, tc.beta)
			if ok != tc.want {
				t.Fatalf("usable: got %v want %v", ok, tc.want)
			}
			if ok && score != tc.score {
				t.Fatalf("score: got %d want %d", score, tc.score)
			}
		})
	}
}

func TestTransTableMatePlyAdjust(t *testing.T) {
	tt := NewTransTable(1)
	// Mate found 3 plies below a node sitting at ply 5.
	tt.Store(42, 6, 5, board.NoMove, MateScore-8, Exact)
	e, _ := tt.Probe(42)
	if e.Score != MateScore-3 {
		t.Fatalf("stored score: got %d want %d", e.Score, MateScore-3)
	}
	// Reached again at ply 1 the mate is 4 plies from the root.
	score, ok := e.Usable(6, 1, -Infinity, Infinity)
	if !ok || score != MateScore-4 {
		t.Fatalf("probe score: got %d want %d", score, MateScore-4)
	}
}

func TestTransTableReplacement(t *testing.T) {
	tt := NewTransTable(0) // a single cluster
	if tt.Capacity() != clusterSize {
		t.Fatalf("capacity: got %d want %d", tt.Capacity(), clusterSize)
	}
	depths := []int{5, 3, 7, 4}
	for i, d := range depths {
		tt.Store(uint64(100+i), d, 0, board.NoMove, 0, Exact)
	}
	// Same key overwrites in place, even with a shallower depth.
	tt.Store(100, 1, 0, board.NoMove, 9, LowerBound)
	if e, ok := tt.Probe(100); !ok || e.Depth != 1 || e.Score != 9 {
		t.Fatalf("same-key replace: got %+v %v", e, ok)
	}
	// A new key evicts the shallowest entry (key 100, now depth 1).
	tt.Store(200, 2, 0, board.NoMove, 0, Exact)
	if _, ok := tt.Probe(100); ok {
		t.Fatalf("shallowest entry was not evicted")
	}
	for _, k := range []uint64{101, 102, 103, 200} {
		if _, ok := tt.Probe(k); !ok {
			t.Fatalf("key %d missing after replacement", k)
		}
	}
	if tt.Hashfull() != 1000 {
		t.Fatalf("hashfull: got %d want 1000", tt.Hashfull())
	}
	tt.Clear()
	if _, ok := tt.Probe(200); ok || tt.Hashfull() != 0 {
		t.Fatalf("clear left entries behind")
	}
}

func TestTransTableKeepsMoveOnFailLow(t *testing.T) {
	tt := NewTransTable(1)
	m := board.NewMove(board.G1, board.F3, board.Normal, board.NoKind)
	tt.Store(7, 2, 0, m, 20, Exact)
	tt.Store(7, 3, 0, board.NoMove, -5, UpperBound)
	if e, _ := tt.Probe(7); e.Move != m {
		t.Fatalf("best move lost: got %s want %s", e.Move, m)
	}
}
