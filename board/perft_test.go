package board

import (
	"testing"

	goose "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
)

var perftCases = []struct {
	name  string
	fen   string
	nodes []uint64 // by depth, starting at 1
}{
	{"start", StartFEN, []uint64{20, 400, 8902}},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []uint64{48, 2039}},
	{"en passant", "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", []uint64{5, 19}},
	{"promotion", "1n5k/P7/8/8/8/8/8/7K w - - 0 1", []uint64{11}},
	{"position 3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []uint64{14, 191, 2812}},
	{"position 4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []uint64{6, 264}},
	{"position 5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", []uint64{44, 1486}},
}

func TestPerft(t *testing.T) {
	for _, tc := range perftCases {
		t.Run(tc.name, func(t *testing.T) {
			p := mustFEN(t, tc.fen)
			for i, want := range tc.nodes {
				if got := Perft(p, i+1); got != want {
					t.Fatalf("depth %d: got %d want %d", i+1, got, want)
				}
			}
			if p.FEN() != tc.fen {
				t.Fatalf("perft mutated position: %s", p.FEN())
			}
		})
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	p := mustFEN(t, perftCases[1].fen)
	var sum uint64
	for _, n := range PerftDivide(p, 2) {
		sum += n
	}
	if sum != 2039 {
		t.Fatalf("divide sum: got %d want 2039", sum)
	}
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, m := range moves {
		undo := b.Apply(m)
		n += dragontoothPerft(b, depth-1)
		undo()
	}
	return n
}

// The root move lists and the depth-2 counts must match an independent generator.
func TestAgreesWithDragontooth(t *testing.T) {
	for _, tc := range perftCases {
		t.Run(tc.name, func(t *testing.T) {
			p := mustFEN(t, tc.fen)
			ref := dragontoothmg.ParseFen(tc.fen)

			want := map[string]bool{}
			for _, m := range ref.GenerateLegalMoves() {
				want[m.String()] = true
			}
			got := Legal(p)
			if len(got) != len(want) {
				t.Fatalf("root moves: got %v want %d moves", moveStrings(got), len(want))
			}
			for _, m := range got {
				if !want[m.String()] {
					t.Fatalf("move %s not generated by reference", m)
				}
			}
			if g, w := Perft(p, 2), dragontoothPerft(&ref, 2); g != w {
				t.Fatalf("perft 2: got %d want %d", g, w)
			}
		})
	}
}

// The per-move depth-2 counts must also match the bitboard generator.
func TestAgreesWithGoose(t *testing.T) {
	for _, tc := range perftCases {
		t.Run(tc.name, func(t *testing.T) {
			ref, err := goose.ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("reference ParseFEN: %v", err)
			}
			want := map[string]uint64{}
			for m, n := range goose.PerftDivide(ref, 2) {
				want[m.String()] = n
			}
			got := PerftDivide(mustFEN(t, tc.fen), 2)
			if len(got) != len(want) {
				t.Fatalf("root moves: got %d want %d", len(got), len(want))
			}
			for m, n := range got {
				if w, ok := want[m.String()]; !ok || w != n {
					t.Fatalf("%s: got %d want %d (found %v)", m, n, w, ok)
				}
			}
		})
	}
}

func BenchmarkPerftStart3(b *testing.B) {
	p := NewPosition()
	for i := 0; i < b.N; i++ {
		Perft(p, 3)
	}
}

func BenchmarkLegalKiwipete(b *testing.B) {
	p := mustFEN(b, perftCases[1].fen)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Legal(p)
	}
}
