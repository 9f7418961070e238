package tuner

import "math"

// logistic probability p = 1/(1+exp(-k*E))
func prob(k, eval float64) float64 {
	z := k * eval
	if z > 40 {
		return 1
	}
	if z < -40 {
		return 0
	}
	return 1.0 / (1.0 + math.Exp(-z))
}

// evalOf mirrors Evaluator.Evaluate without the integer rounding.
func evalOf(s *Sample, params []float64) float64 {
	e := 0.0
	for i, t := range s.Terms {
		e += params[i] * t / 100
	}
	return e
}

// Loss is the mean squared error between predicted and actual results.
func Loss(data []Sample, params []float64, k float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for i := range data {
		d := prob(k, evalOf(&data[i], params)) - data[i].Label
		sum += d * d
	}
	return sum / float64(len(data))
}

// gradient of Loss with respect to params.
func gradient(data []Sample, params []float64, k float64) []float64 {
	grads := make([]float64, len(params))
	if len(data) == 0 {
		return grads
	}
	for i := range data {
		s := &data[i]
		p := prob(k, evalOf(s, params))
		g := 2 * (p - s.Label) * p * (1 - p) * k
		for j, t := range s.Terms {
			grads[j] += g * t / 100
		}
	}
	for j := range grads {
		grads[j] /= float64(len(data))
	}
	return grads
}

// one-dimensional refit for k
func refitK(data []Sample, params []float64, k0 float64) float64 {
	bestK, bestLoss := k0, math.MaxFloat64
	cands := []float64{k0 * 0.5, k0 * 0.67, k0 * 0.8, k0 * 0.9, k0, k0 * 1.1, k0 * 1.25, k0 * 1.5}
	for _, k := range cands {
		if l := Loss(data, params, k); l < bestLoss {
			bestLoss, bestK = l, k
		}
	}
	return bestK
}
