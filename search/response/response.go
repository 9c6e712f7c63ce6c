// Package response provides synthetic response functions used to drive and
// evaluate threshold searches: a psychometric curve with a tunable slope, a
// deterministic step, and an answer-flipping error injector.
package response

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Function maps an input value to the probability of a positive answer.
type Function interface {
	Probability(s float64) float64
}

// Psychometric rises through MuStar at SStar. Within Delta of SStar the
// probability moves away from MuStar as distance^Alpha; beyond it the curve is
// flat. Output is clamped to [0.01, 0.99].
type Psychometric struct {
	MuStar float64
	SStar  float64
	Delta  float64
	Alpha  float64
}

// DefaultPsychometric returns the curve used by the reference experiments:
// alpha = 0.5, delta = 0.1, crossing at 0.5.
func DefaultPsychometric(muStar float64) Psychometric {
	return Psychometric{MuStar: muStar, SStar: 0.5, Delta: 0.1, Alpha: 0.5}
}

// Validate returns an error if the curve parameters are out of range.
func (p Psychometric) Validate() error {
	if p.MuStar <= 0 || p.MuStar >= 1 || math.IsNaN(p.MuStar) {
		return fmt.Errorf("MuStar must be in (0, 1), got %v", p.MuStar)
	}
	if p.Delta <= 0 || math.IsNaN(p.Delta) || math.IsInf(p.Delta, 0) {
		return fmt.Errorf("Delta must be a finite positive number, got %v", p.Delta)
	}
	if p.Alpha <= 0 || math.IsNaN(p.Alpha) || math.IsInf(p.Alpha, 0) {
		return fmt.Errorf("Alpha must be a finite positive number, got %v", p.Alpha)
	}
	return nil
}

// Probability implements Function.
func (p Psychometric) Probability(s float64) float64 {
	var prob float64
	if s > p.SStar {
		prob = p.MuStar + math.Pow(math.Min(s-p.SStar, p.Delta), p.Alpha)
	} else {
		prob = p.MuStar - math.Pow(math.Min(p.SStar-s, p.Delta), p.Alpha)
	}
	return math.Min(math.Max(prob, 0.01), 0.99)
}

// Step answers Low below or at Threshold and High above it.
type Step struct {
	Threshold float64
	Low       float64
	High      float64
}

// NewStep returns a deterministic step: always no at or below threshold,
// always yes above it.
func NewStep(threshold float64) Step {
	return Step{Threshold: threshold, Low: 0, High: 1}
}

// Probability implements Function.
func (s Step) Probability(x float64) float64 {
	if x > s.Threshold {
		return s.High
	}
	return s.Low
}

// Crossing scans (0, 1) in increments of precision and returns the input
// whose response is closest to muStar.
func Crossing(f Function, muStar, precision float64) float64 {
	n := int(math.Round(1/precision)) - 1
	if n < 2 {
		n = 2
	}
	xs := floats.Span(make([]float64, n), precision, float64(n)*precision)
	gaps := make([]float64, n)
	for i, x := range xs {
		gaps[i] = math.Abs(muStar - f.Probability(x))
	}
	return xs[floats.MinIdx(gaps)]
}

// Sampler draws Bernoulli answers from a response function.
type Sampler struct {
	Func Function
	RNG  *rand.Rand
}

// Sample returns true with probability Func.Probability(s).
func (sp Sampler) Sample(s float64) bool {
	return sp.RNG.Float64() < sp.Func.Probability(s)
}

// FlipEvery inverts every N-th answer, starting with step 0. N <= 0 disables
// flipping.
type FlipEvery struct {
	N int
}

// Apply returns the possibly flipped answer for the given step and whether
// it was flipped.
func (fe FlipEvery) Apply(step int, answer bool) (bool, bool) {
	if fe.N <= 0 || step%fe.N != 0 {
		return answer, false
	}
	return !answer, true
}
