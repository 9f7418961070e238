package epd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"chessbot/board"
)

const suite = `# two tactics
2rr3k/pp3pp1/1nnqbN1p/3pN3/2pP4/2P3Q1/PPB4P/R4RK1 w - - bm Qg6; id "WAC.001";
r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 3

8/8/8/8/8/8/8/K6k w - - am Kb1 Kb2; id "quiet";
`

func TestParse(t *testing.T) {
	rec, err := Parse(`2rr3k/pp3pp1/1nnqbN1p/3pN3/2pP4/2P3Q1/PPB4P/R4RK1 w - - bm Qg6; id "WAC.001";`)
	if err != nil {
		t.Fatal(err)
	}
	if rec.FEN != "2rr3k/pp3pp1/1nnqbN1p/3pN3/2pP4/2P3Q1/PPB4P/R4RK1 w - - 0 1" {
		t.Fatalf("fen: got %q", rec.FEN)
	}
	if rec.ID != "WAC.001" || len(rec.BestMoves) != 1 || rec.BestMoves[0] != "Qg6" {
		t.Fatalf("ops: got id %q bm %v", rec.ID, rec.BestMoves)
	}

	rec, err = Parse("r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(rec.FEN, " 4 3") {
		t.Fatalf("clocks lost: %q", rec.FEN)
	}

	var pe *board.ParseError
	if _, err := Parse("not a position"); !errors.As(err, &pe) {
		t.Fatalf("want ParseError, got %v", err)
	}
}

func TestReadAll(t *testing.T) {
	recs, err := ReadAll(strings.NewReader(suite))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("records: got %d want 3", len(recs))
	}
	if recs[2].Line != 5 || len(recs[2].AvoidMoves) != 2 {
		t.Fatalf("third record: got %+v", recs[2])
	}
	if _, err := ReadAll(strings.NewReader("8/8/8 w - -\n")); err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("want error naming line 1, got %v", err)
	}
}

func TestLoadCompressed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suite.epd.zst")
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, enc.EncodeAll([]byte(suite), nil), 0o644); err != nil {
		t.Fatal(err)
	}
	enc.Close()

	for _, p := range []string{path, filepath.Join(dir, "suite.epd")} {
		if p != path {
			if err := os.WriteFile(p, []byte(suite), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		recs, err := Load(p)
		if err != nil || len(recs) != 3 {
			t.Fatalf("%s: got %d records, err %v", p, len(recs), err)
		}
	}
}
