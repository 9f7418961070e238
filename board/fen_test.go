package board

import (
	"errors"
	"testing"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
		"8/8/8/8/8/8/8/K6k b - - 37 88",
		"r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w Kq - 4 3",
	}
	for _, fen := range fens {
		p, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := p.FEN(); got != fen {
			t.Fatalf("round trip: got %q want %q", got, fen)
		}
	}
}

func TestParseFENFourFields(t *testing.T) {
	p, err := ParseFEN("8/8/8/8/8/8/8/K6k w - -")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if p.HalfmoveClock() != 0 || p.FullmoveNumber() != 1 {
		t.Fatalf("clocks: got %d %d want 0 1", p.HalfmoveClock(), p.FullmoveNumber())
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/7/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e3 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/8/8/PPPPPPPP/RNBQKBNR b KQkq e6 0 1",
		"8/8/8/8/8/8/8/7K w - - 0 1",
		"4k3/8/8/8/8/8/8/8 b - - 0 1",
		"4k3/8/8/8/8/8/8/K6K w - - 0 1",
		"4k2k/8/8/8/8/8/8/4K3 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 x",
	}
	for _, fen := range bad {
		_, err := ParseFEN(fen)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("ParseFEN(%q): got %v want *ParseError", fen, err)
		}
	}
}

func TestFENFields(t *testing.T) {
	p, err := ParseFEN("r3k2r/8/8/3pP3/8/8/8/R3K2R w Kq d6 3 17")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if p.SideToMove() != White {
		t.Fatalf("side: got %v want white", p.SideToMove())
	}
	if p.Castling() != WhiteKingside|BlackQueenside {
		t.Fatalf("castling: got %s want Kq", p.Castling())
	}
	if p.EnPassant() != D6 {
		t.Fatalf("ep: got %s want d6", p.EnPassant())
	}
	if p.HalfmoveClock() != 3 || p.FullmoveNumber() != 17 {
		t.Fatalf("clocks: got %d %d want 3 17", p.HalfmoveClock(), p.FullmoveNumber())
	}
	if p.PieceAt(E5) != WhitePawn || p.PieceAt(D5) != BlackPawn || p.PieceAt(A8) != BlackRook {
		t.Fatalf("placement mismatch:\n%s", p)
	}
	if p.Hash() != p.ComputeHash() {
		t.Fatalf("hash not initialized")
	}
}
