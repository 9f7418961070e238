package engine

import (
	"context"
	"testing"
	"time"

	"chessbot/board"
)

const scholarsMate = "r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 3"

func TestFindsScholarsMate(t *testing.T) {
	p := mustFEN(t, scholarsMate)
	s := NewSearcher(p, Options{HashMB: 4})
	res := s.FindBestMove(context.Background(), Limits{Depth: 3})
	if res.Move.String() != "h5f7" {
		t.Fatalf("best move: got %s want h5f7", res.Move)
	}
	if !IsMateScore(res.Score) || res.Score <= 0 {
		t.Fatalf("score: got %d want a mate score for White", res.Score)
	}
	if got := ScoreString(res.Score); got != "mate 1" {
		t.Fatalf("score string: got %q want %q", got, "mate 1")
	}
	if p.FEN() != scholarsMate {
		t.Fatalf("searcher mutated the caller's position")
	}
}

func TestRootCheckmateAndStalemate(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		status board.Status
		score  int32
	}{
		{"checkmate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", board.Checkmate, -MateScore},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", board.Stalemate, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSearcher(mustFEN(t, tc.fen), Options{HashMB: 1})
			res := s.FindBestMove(context.Background(), Limits{Depth: 4})
			if res.Move != board.NoMove {
				t.Fatalf("move: got %s want none", res.Move)
			}
			if res.Status != tc.status || res.Score != tc.score {
				t.Fatalf("result: got %s/%d want %s/%d", res.Status, res.Score, tc.status, tc.score)
			}
			if m, score := s.Search(context.Background(), 2); m != board.NoMove || int32(score) != tc.score {
				t.Fatalf("Search: got %s/%d want none/%d", m, score, tc.score)
			}
		})
	}
}

func TestWinsHangingQueen(t *testing.T) {
	p := mustFEN(t, "4k3/8/8/3q4/8/8/8/3QK3 w - - 0 1")
	res := NewSearcher(p, Options{HashMB: 1}).FindBestMove(context.Background(), Limits{Depth: 2})
	if res.Move.String() != "d1d5" {
		t.Fatalf("best move: got %s want d1d5", res.Move)
	}
}

func TestWarmTableGivesSameResult(t *testing.T) {
	fens := []string{board.StartFEN, scholarsMate, "4k3/8/8/3q4/8/8/8/3QK3 w - - 0 1"}
	for _, fen := range fens {
		s := NewSearcher(mustFEN(t, fen), Options{HashMB: 8})
		cold := s.FindBestMove(context.Background(), Limits{Depth: 3})
		warm := s.FindBestMove(context.Background(), Limits{Depth: 3})
		if cold.Move != warm.Move || cold.Score != warm.Score {
			t.Fatalf("%s: cold %s/%d warm %s/%d", fen, cold.Move, cold.Score, warm.Move, warm.Score)
		}
	}
}

// A shallower search on a table filled by a deeper one reports the deeper result.
func TestWarmTableShallowerSearch(t *testing.T) {
	tests := []struct {
		name       string
		fen        string
		cold, warm int
	}{
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3, 2},
		{"position 3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3, 2},
		{"start", board.StartFEN, 4, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSearcher(mustFEN(t, tc.fen), Options{HashMB: 16})
			cold := s.FindBestMove(context.Background(), Limits{Depth: tc.cold})
			warm := s.FindBestMove(context.Background(), Limits{Depth: tc.warm})
			if cold.Move != warm.Move || cold.Score != warm.Score {
				t.Fatalf("cold d%d %s/%d warm d%d %s/%d", tc.cold, cold.Move, cold.Score, tc.warm, warm.Move, warm.Score)
			}
		})
	}
}

func TestCancelledSearchStillReturnsMove(t *testing.T) {
	p := board.NewPosition()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := NewSearcher(p, Options{HashMB: 1}).FindBestMove(ctx, Limits{Depth: 8})
	if res.Depth != 1 {
		t.Fatalf("depth: got %d want 1", res.Depth)
	}
	legal := map[board.Move]bool{}
	for _, m := range board.Legal(p) {
		legal[m] = true
	}
	if !legal[res.Move] {
		t.Fatalf("returned move %s is not legal", res.Move)
	}
}

func TestMoveTimeLimit(t *testing.T) {
	p := mustFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	start := time.Now()
	res := NewSearcher(p, Options{HashMB: 4}).FindBestMove(context.Background(), Limits{Depth: 40, MoveTime: 200 * time.Millisecond})
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("search ignored its time limit: %s", elapsed)
	}
	if res.Move == board.NoMove || res.Depth < 1 {
		t.Fatalf("no move after timed search: %+v", res)
	}
}

func TestInfoReportedPerDepth(t *testing.T) {
	var depths []int
	s := NewSearcher(board.NewPosition(), Options{
		HashMB: 1,
		Info:   func(i Info) { depths = append(depths, i.Depth) },
	})
	s.FindBestMove(context.Background(), Limits{Depth: 3})
	if len(depths) != 3 || depths[0] != 1 || depths[2] != 3 {
		t.Fatalf("info depths: got %v want [1 2 3]", depths)
	}
	if s.Stats().Nodes == 0 {
		t.Fatalf("node counter not updated")
	}
}

func TestRepetitionIsDraw(t *testing.T) {
	st := newStateStack([]uint64{1, 2}, 1, 2)
	st.push(2, 3)
	if st.isDraw() {
		t.Fatalf("second occurrence of a pre-root position is not yet a draw")
	}
	st.push(1, 4)
	if !st.isDraw() {
		t.Fatalf("third occurrence should be a draw")
	}
	st.pop()
	st.pop()
	st.push(9, 0)
	st.push(10, 1)
	st.push(9, 2)
	if !st.isDraw() {
		t.Fatalf("repetition inside the search should be a draw")
	}

	fifty := newStateStack(nil, 5, 99)
	fifty.push(6, 100)
	if !fifty.isDraw() {
		t.Fatalf("fifty-move rule not applied")
	}
}

func TestOrderRootMoves(t *testing.T) {
	p := mustFEN(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	ordered := orderRootMoves(p, board.Legal(p))
	want := []string{"a7b8q", "a7b8r", "a7b8b", "a7b8n", "a7a8q", "a7a8r", "a7a8b", "a7a8n"}
	for i, w := range want {
		if ordered[i].String() != w {
			t.Fatalf("position %d: got %s want %s (%v)", i, ordered[i], w, ordered)
		}
	}
}

func TestScoreString(t *testing.T) {
	tests := []struct {
		score int32
		want  string
	}{
		{35, "cp 35"},
		{-120, "cp -120"},
		{MateScore - 1, "mate 1"},
		{MateScore - 3, "mate 2"},
		{-MateScore + 2, "mate -1"},
	}
	for _, tc := range tests {
		if got := ScoreString(tc.score); got != tc.want {
			t.Fatalf("ScoreString(%d): got %q want %q", tc.score, got, tc.want)
		}
	}
}

func BenchmarkSearchDepth3(b *testing.B) {
	p := mustFEN(b, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	for i := 0; i < b.N; i++ {
		NewSearcher(p, Options{HashMB: 8}).FindBestMove(context.Background(), Limits{Depth: 3})
	}
}
