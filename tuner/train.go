package tuner

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"chessbot/engine"
)

type TrainConfig struct {
	Epochs int
	LR     float64
	K      float64
	AutoK  bool
	// FreeMaterial lets the material weight move too. By default it stays
	// fixed so the other weights are tuned relative to it.
	FreeMaterial bool
	Logger       zerolog.Logger
}

// Report summarises a training run.
type Report struct {
	StartLoss float64
	FinalLoss float64
	K         float64
	Epochs    int
}

func toParams(w engine.Weights) []float64 {
	return []float64{
		float64(w.Material),
		float64(w.Placement),
		float64(w.Mobility),
		float64(w.KingSafety),
		float64(w.PawnStructure),
	}
}

func fromParams(p []float64) engine.Weights {
	round := func(x float64) int { return engine.Max(0, int(math.Round(x))) }
	return engine.Weights{
		Material:      round(p[0]),
		Placement:     round(p[1]),
		Mobility:      round(p[2]),
		KingSafety:    round(p[3]),
		PawnStructure: round(p[4]),
	}
}

// Train fits the evaluation weights to the game results with full-batch
// Adam. It stops early when ctx is cancelled and returns the best weights
// seen.
func Train(ctx context.Context, data []Sample, start engine.Weights, cfg TrainConfig) (engine.Weights, Report) {
	if cfg.K <= 0 {
		cfg.K = 0.004
	}
	if cfg.LR <= 0 {
		cfg.LR = 1
	}
	params := toParams(start)
	opt := NewAdam(len(params), cfg.LR)
	opt.Frozen[0] = !cfg.FreeMaterial

	k := cfg.K
	if cfg.AutoK {
		k = refitK(data, params, k)
	}
	rep := Report{StartLoss: Loss(data, params, k), K: k}
	best := append([]float64(nil), params...)
	bestLoss := rep.StartLoss

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		if ctx.Err() != nil {
			break
		}
		opt.Step(params, gradient(data, params, k))
		for i := range params {
			params[i] = math.Max(0, params[i])
		}
		loss := Loss(data, params, k)
		rep.Epochs = epoch
		if loss < bestLoss {
			bestLoss = loss
			copy(best, params)
		}
		if epoch%10 == 0 || epoch == cfg.Epochs {
			cfg.Logger.Info().Int("epoch", epoch).Float64("loss", loss).
				Interface("weights", fromParams(params)).Msg("epoch done")
		}
	}
	rep.FinalLoss = bestLoss
	return fromParams(best), rep
}
