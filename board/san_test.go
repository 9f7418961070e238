package board

import "testing"

func TestSAN(t *testing.T) {
	tests := []struct {
		fen  string
		move string
		want string
	}{
		{StartFEN, "e2e4", "e4"},
		{StartFEN, "g1f3", "Nf3"},
		{"r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 3", "h5f7", "Qxf7#"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8", "O-O-O"},
		{"4k3/8/8/8/8/8/4K3/R6R w - - 0 1", "a1d1", "Rad1"},
		{"4k3/8/8/8/8/R7/8/R3K3 w - - 0 1", "a1a2", "R1a2"},
		{"1n5k/P7/8/8/8/8/8/7K w - - 0 1", "a7b8q", "axb8=Q+"},
		{"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3", "e5f6", "exf6"},
		{"4k3/8/8/8/8/8/8/4K2R w K - 0 1", "h1h8", "Rh8+"},
	}
	for _, tc := range tests {
		p := mustFEN(t, tc.fen)
		m, err := FindMove(p, tc.move)
		if err != nil {
			t.Fatalf("%s %s: %v", tc.fen, tc.move, err)
		}
		if got := SAN(p, m); got != tc.want {
			t.Fatalf("%s %s: got %s want %s", tc.fen, tc.move, got, tc.want)
		}
		if !MatchSAN(p, m, tc.want) || !MatchSAN(p, m, tc.move) {
			t.Fatalf("%s: MatchSAN rejected %s", tc.fen, tc.want)
		}
	}
}

func TestSANQueenDisambiguation(t *testing.T) {
	// Queens on a1, a3 and c1 all reach b2.
	p := mustFEN(t, "4k3/8/8/8/8/Q7/8/Q1Q1K3 w - - 0 1")
	m, err := FindMove(p, "a1b2")
	if err != nil {
		t.Fatal(err)
	}
	if got := SAN(p, m); got != "Qa1b2" {
		t.Fatalf("got %s want Qa1b2", got)
	}
	if MatchSAN(p, m, "Qb2") {
		t.Fatalf("ambiguous text matched")
	}
}
