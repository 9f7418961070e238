package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	eng "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"

	"chessbot/board"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	verify := flag.Bool("verify", false, "Cross-check every root move against a reference generator")
	oracle := flag.String("oracle", "dragontooth", "Reference generator for -verify: dragontooth or goose")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *verify {
		ref, ok := oracles[*oracle]
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown oracle %q (want dragontooth or goose)\n", *oracle)
			os.Exit(2)
		}
		want, err := ref(*fen, *depth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", *oracle, err)
			os.Exit(2)
		}
		if !verifyDivide(pos, want, *depth) {
			os.Exit(1)
		}
		return
	}

	if *divide {
		div := board.PerftDivide(pos, *depth)
		var sum uint64
		for _, m := range sortedMoves(div) {
			fmt.Printf("%s: %d\n", m, div[m])
			sum += div[m]
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += board.Perft(pos, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)
}

func sortedMoves(div map[board.Move]uint64) []board.Move {
	moves := make([]board.Move, 0, len(div))
	for m := range div {
		moves = append(moves, m)
	}
	sort.Slice(moves, func(i, j int) bool { return moves[i].String() < moves[j].String() })
	return moves
}

// divideFunc returns per-root-move perft counts keyed by coordinate move text.
type divideFunc func(fen string, depth int) (map[string]uint64, error)

var oracles = map[string]divideFunc{
	"dragontooth": dragontoothDivide,
	"goose":       gooseDivide,
}

func dragontoothDivide(fen string, depth int) (map[string]uint64, error) {
	ref := dragontoothmg.ParseFen(fen)
	out := map[string]uint64{}
	for _, m := range ref.GenerateLegalMoves() {
		undo := ref.Apply(m)
		out[m.String()] = referencePerft(&ref, depth-1)
		undo()
	}
	return out, nil
}

func gooseDivide(fen string, depth int) (map[string]uint64, error) {
	b, err := eng.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	out := map[string]uint64{}
	for m, n := range eng.PerftDivide(b, depth) {
		out[m.String()] = n
	}
	return out, nil
}

// verifyDivide compares per-root-move counts with the reference counts and
// prints every disagreement. It reports whether both generators agree.
func verifyDivide(pos *board.Position, want map[string]uint64, depth int) bool {
	var sum, refSum uint64
	for _, n := range want {
		refSum += n
	}

	ok := true
	div := board.PerftDivide(pos, depth)
	for _, m := range sortedMoves(div) {
		got := div[m]
		sum += got
		w, found := want[m.String()]
		delete(want, m.String())
		switch {
		case !found:
			fmt.Printf("%s: %d (not generated by reference)\n", m, got)
			ok = false
		case w != got:
			fmt.Printf("%s: %d want %d\n", m, got, w)
			ok = false
		}
	}
	for m, w := range want {
		fmt.Printf("%s: missing (reference %d)\n", m, w)
		ok = false
	}
	fmt.Printf("Total: %d reference %d\n", sum, refSum)
	return ok
}

func referencePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, m := range moves {
		undo := b.Apply(m)
		n += referencePerft(b, depth-1)
		undo()
	}
	return n
}
