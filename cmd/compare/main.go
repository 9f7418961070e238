// Command compare searches suite positions with chessbot and with an
// external reference engine and reports where the chosen moves differ.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/freeeve/uci"
	"github.com/rs/zerolog"

	"chessbot/board"
	"chessbot/config"
	"chessbot/engine"
	"chessbot/internal/epd"
	"chessbot/internal/logx"
)

func main() {
	var (
		enginePath = flag.String("engine", "stockfish", "Reference engine binary")
		suitePath  = flag.String("suite", "", "EPD/FEN suite file, optionally .zst compressed")
		fen        = flag.String("fen", "", "Single FEN when no suite is given")
		depth      = flag.Int("depth", 5, "chessbot search depth")
		refDepth   = flag.Int("ref-depth", 12, "Reference engine search depth")
		hashMB     = flag.Int("hash", 64, "Reference engine hash size in MB")
		cfgPath    = flag.String("config", "", "chessbot config file")
		logLevel   = flag.String("log-level", "info", "Log level")
	)
	flag.Parse()

	log, err := logx.NewLogger(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	recs, err := positions(*suitePath, *fen)
	if err != nil {
		log.Fatal().Err(err).Msg("load positions")
	}

	ref, err := uci.NewEngine(*enginePath)
	if err != nil {
		log.Fatal().Err(err).Str("engine", *enginePath).Msg("create engine")
	}
	defer ref.Close()
	if err := ref.SetOptions(uci.Options{Hash: *hashMB, Threads: 1, MultiPV: 1}); err != nil {
		log.Fatal().Err(err).Msg("set options")
	}

	ev := engine.NewEvaluator(cfg.Eval)
	agree := 0
	for i, rec := range recs {
		pos, err := board.ParseFEN(rec.FEN)
		if err != nil {
			log.Error().Err(err).Int("line", rec.Line).Msg("skipping position")
			continue
		}
		ours := engine.NewSearcher(pos, engine.Options{HashMB: cfg.Search.HashMB, Evaluator: ev}).
			FindBestMove(context.Background(), engine.Limits{Depth: *depth})

		theirs, score, err := reference(ref, rec.FEN, *refDepth, log)
		if err != nil {
			log.Error().Err(err).Str("fen", rec.FEN).Msg("reference search failed")
			continue
		}

		mark := "differs"
		if ours.Move.String() == theirs {
			agree++
			mark = "same"
		}
		fmt.Printf("%3d %-7s ours %-6s %-9s ref %-6s %-9s %s\n",
			i+1, mark, ours.Move, engine.ScoreString(ours.Score), theirs, score, rec.FEN)
	}
	fmt.Printf("agreement %d/%d\n", agree, len(recs))
}

func positions(suite, fen string) ([]epd.Record, error) {
	if suite == "" {
		if fen == "" {
			fen = board.StartFEN
		}
		rec, err := epd.Parse(fen)
		if err != nil {
			return nil, err
		}
		return []epd.Record{rec}, nil
	}
	return epd.Load(suite)
}

// reference returns the reference engine's move and its score from the side
// to move's view.
func reference(e *uci.Engine, fen string, depth int, log zerolog.Logger) (string, string, error) {
	if err := e.SetFEN(fen); err != nil {
		return "", "", fmt.Errorf("set FEN: %w", err)
	}
	results, err := e.GoDepth(depth, uci.HighestDepthOnly)
	if err != nil {
		return "", "", fmt.Errorf("go depth %d: %w", depth, err)
	}
	if len(results.Results) == 0 {
		return strings.TrimSpace(results.BestMove), "", nil
	}
	best := results.Results[0]
	for _, r := range results.Results {
		if r.Depth > best.Depth {
			best = r
		}
	}
	score := fmt.Sprintf("cp %d", best.Score)
	if best.Mate {
		score = fmt.Sprintf("mate %d", best.Score)
	}
	log.Debug().Str("fen", fen).Int("depth", best.Depth).Str("score", score).
		Str("bestmove", results.BestMove).Msg("reference result")
	return strings.TrimSpace(results.BestMove), score, nil
}
