// cmd/texel/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/viper"

	"chessbot/config"
	"chessbot/internal/logx"
	"chessbot/tuner"
)

var (
	dataPath = flag.String("data", "", "Labelled positions: \"fen [result]\", TSV or CSV, optionally .zst")
	outPath  = flag.String("out", "tuned.yaml", "Where to write the tuned eval section")
	cfgPath  = flag.String("config", "", "Config file with starting weights")
	epochs   = flag.Int("epochs", 200, "Training epochs")
	lr       = flag.Float64("lr", 1.0, "Adam learning rate, in weight percent")
	kScale   = flag.Float64("k", 0.004, "Logistic scale k for centipawns")
	autoK    = flag.Bool("autok", false, "Re-fit k before training")
	freeMat  = flag.Bool("free-material", false, "Tune the material weight too")
	maxRows  = flag.Int("max_rows", 0, "Optional cap on rows loaded (0=all)")
	logLevel = flag.String("log-level", "info", "Log level")
)

func main() {
	flag.Parse()
	if *dataPath == "" {
		fmt.Println("Usage:")
		flag.PrintDefaults()
		os.Exit(2)
	}
	log, err := logx.NewLogger(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	samples, skipped, err := tuner.LoadDataset(*dataPath, *maxRows)
	if err != nil {
		log.Fatal().Err(err).Str("path", *dataPath).Msg("load dataset")
	}
	log.Info().Int("samples", len(samples)).Int("skipped", skipped).Msg("dataset loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w, rep := tuner.Train(ctx, samples, cfg.Eval, tuner.TrainConfig{
		Epochs:       *epochs,
		LR:           *lr,
		K:            *kScale,
		AutoK:        *autoK,
		FreeMaterial: *freeMat,
		Logger:       log,
	})
	log.Info().Float64("start_loss", rep.StartLoss).Float64("final_loss", rep.FinalLoss).
		Float64("k", rep.K).Int("epochs", rep.Epochs).Msg("training done")

	v := viper.New()
	v.Set("eval.material", w.Material)
	v.Set("eval.placement", w.Placement)
	v.Set("eval.mobility", w.Mobility)
	v.Set("eval.king_safety", w.KingSafety)
	v.Set("eval.pawn_structure", w.PawnStructure)
	if err := v.WriteConfigAs(*outPath); err != nil {
		log.Fatal().Err(err).Str("path", *outPath).Msg("write weights")
	}
	fmt.Printf("material %d placement %d mobility %d king_safety %d pawn_structure %d\n",
		w.Material, w.Placement, w.Mobility, w.KingSafety, w.PawnStructure)
	fmt.Printf("Saved tuned weights to %s\n", *outPath)
}
