package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"chessbot/board"
	"chessbot/config"
	"chessbot/engine"
	"chessbot/internal/epd"
	"chessbot/internal/logx"
)

func main() {
	depthFlag := flag.Int("depth", 6, "search depth in plies")
	moveTime := flag.Duration("movetime", 0, "time limit per position (0 = depth only)")
	suiteFlag := flag.String("suite", "", "EPD/FEN suite file, optionally .zst compressed")
	fenFlag := flag.String("fen", "", "single FEN to search when no suite is given (empty = startpos)")
	repeatFlag := flag.Int("repeat", 1, "number of passes over the positions")
	cfgPath := flag.String("config", "", "config file for hash size and evaluation weights")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	logger, _ := logx.NewLogger("info")
	if *depthFlag <= 0 {
		logger.Fatal().Int("depth", *depthFlag).Msg("depth must be positive")
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	recs, err := loadPositions(*suiteFlag, *fenFlag)
	if err != nil {
		logger.Fatal().Err(err).Str("suite", *suiteFlag).Msg("load positions")
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			logger.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			logger.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fmt.Printf("searchbench: positions=%d depth=%d movetime=%s repeat=%d\n", len(recs), *depthFlag, *moveTime, *repeatFlag)

	ev := engine.NewEvaluator(cfg.Eval)
	var totalNodes uint64
	solved, graded := 0, 0
	startAll := time.Now()
	for pass := 0; pass < *repeatFlag; pass++ {
		for i, rec := range recs {
			pos, err := board.ParseFEN(rec.FEN)
			if err != nil {
				logger.Error().Err(err).Int("line", rec.Line).Msg("skipping position")
				continue
			}
			s := engine.NewSearcher(pos, engine.Options{HashMB: cfg.Search.HashMB, Evaluator: ev})
			iterStart := time.Now()
			res := s.FindBestMove(context.Background(), engine.Limits{Depth: *depthFlag, MoveTime: *moveTime})
			elapsed := time.Since(iterStart)
			totalNodes += res.Nodes

			verdict := ""
			if pass == 0 && (len(rec.BestMoves) > 0 || len(rec.AvoidMoves) > 0) {
				graded++
				if grade(pos, res.Move, rec) {
					solved++
					verdict = "ok"
				} else {
					verdict = "miss"
				}
			}
			fmt.Printf("%3d %-12s bestmove %-6s %-9s depth %2d nodes %9d time %8s %s\n",
				i+1, rec.ID, res.Move, engine.ScoreString(res.Score), res.Depth, res.Nodes,
				elapsed.Round(time.Millisecond), verdict)
		}
	}
	totalElapsed := time.Since(startAll)
	nps := float64(totalNodes) / totalElapsed.Seconds()
	fmt.Printf("total nodes %d time %v nps %.0f\n", totalNodes, totalElapsed, nps)
	if graded > 0 {
		fmt.Printf("solved %d/%d\n", solved, graded)
	}

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			logger.Fatal().Err(err).Msg("could not create memory profile")
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			logger.Fatal().Err(err).Msg("could not write memory profile")
		}
	}
}

func loadPositions(suite, fen string) ([]epd.Record, error) {
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

// grade checks the chosen move against the bm and am operations.
func grade(pos *board.Position, m board.Move, rec epd.Record) bool {
	if m == board.NoMove {
		return false
	}
	for _, am := range rec.AvoidMoves {
		if board.MatchSAN(pos, m, am) {
			return false
		}
	}
	if len(rec.BestMoves) == 0 {
		return true
	}
	for _, bm := range rec.BestMoves {
		if board.MatchSAN(pos, m, bm) {
			return true
		}
	}
	return false
}
