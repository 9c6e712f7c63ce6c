// Package experiment runs repeated threshold searches against a synthetic
// psychometric response and reports the regret of the final estimates.
package experiment

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/inference-sim/zoom/search"
	"github.com/inference-sim/zoom/search/response"
)

// Crossing points are redrawn uniformly from this range when
// RandomizeCrossing is set.
const (
	crossingLow  = 0.15
	crossingHigh = 0.85
)

// Estimator names the controller recommendation a repeat is scored on.
type Estimator string

const (
	// EstimatorFinal scores Controller.FinalRecommendation. It is the default.
	EstimatorFinal Estimator = "final"
	// EstimatorPromising scores Controller.PromisingRecommendation.
	EstimatorPromising Estimator = "promising"
)

// IsValidEstimator reports whether name is a recognized estimator.
func IsValidEstimator(name string) bool {
	switch Estimator(name) {
	case EstimatorFinal, EstimatorPromising:
		return true
	}
	return false
}

// Spec describes one experiment: a search configuration, the response curve
// it is run against and how many independent repeats to run.
type Spec struct {
	Search            search.Config
	Policy            search.BoundPolicy // zero value means search.DefaultBoundPolicy
	Estimator         Estimator          // empty means EstimatorFinal
	Curve             response.Psychometric
	Repeats           int
	RandomizeCrossing bool  // redraw the crossing once, before the first repeat
	FlipEvery         int   // invert every N-th answer; 0 disables
	Seed              int64 // master seed for all RNG subsystems
}

// Validate returns an error if the experiment cannot be run.
func (s Spec) Validate() error {
	if err := search.ValidateConfig(s.Search); err != nil {
		return fmt.Errorf("search config: %w", err)
	}
	if s.Search.MinInterval < 0 || s.Search.MaxInterval > 1 {
		return fmt.Errorf("search range [%v, %v) must lie within the response domain [0, 1]",
			s.Search.MinInterval, s.Search.MaxInterval)
	}
	if s.Policy != (search.BoundPolicy{}) {
		if err := s.Policy.Validate(); err != nil {
			return fmt.Errorf("bound policy: %w", err)
		}
	}
	if s.Estimator != "" && !IsValidEstimator(string(s.Estimator)) {
		return fmt.Errorf("unknown estimator %q; valid: %s, %s", s.Estimator, EstimatorFinal, EstimatorPromising)
	}
	if err := s.Curve.Validate(); err != nil {
		return fmt.Errorf("response curve: %w", err)
	}
	if s.Curve.MuStar != s.Search.MuStar {
		return fmt.Errorf("curve MuStar %v differs from search MuStar %v", s.Curve.MuStar, s.Search.MuStar)
	}
	if s.Repeats < 1 {
		return fmt.Errorf("Repeats must be >= 1, got %d", s.Repeats)
	}
	if s.FlipEvery < 0 {
		return fmt.Errorf("FlipEvery must be non-negative, got %d", s.FlipEvery)
	}
	return nil
}

// Result holds per-repeat outcomes and their summary.
type Result struct {
	Crossing  float64   // input value where the curve is closest to MuStar
	Estimates []float64 // final recommendation of each repeat
	Regrets   []float64 // |curve(estimate) - MuStar| of each repeat
	Summary   Summary
}

// Summary aggregates the regrets of an experiment.
type Summary struct {
	MeanRegret   float64
	StdDevRegret float64
	MedianRegret float64
	MaxRegret    float64
}

// Run executes spec.Repeats independent searches of spec.Search.Budget probes each.
func Run(spec Spec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	rng := NewPartitionedRNG(spec.Seed)

	curve := spec.Curve
	if spec.RandomizeCrossing {
		r := rng.ForSubsystem(SubsystemCrossing)
		curve.SStar = crossingLow + r.Float64()*(crossingHigh-crossingLow)
	}

	result := &Result{
		Crossing:  response.Crossing(curve, curve.MuStar, 1e-3),
		Estimates: make([]float64, 0, spec.Repeats),
		Regrets:   make([]float64, 0, spec.Repeats),
	}
	logrus.Debugf("experiment: seed=%d crossing=%.4f repeats=%d budget=%d",
		rng.Seed(), result.Crossing, spec.Repeats, spec.Search.Budget)

	flip := response.FlipEvery{N: spec.FlipEvery}
	for rep := 0; rep < spec.Repeats; rep++ {
		ctrl, err := spec.newController()
		if err != nil {
			return nil, err
		}
		sampler := response.Sampler{Func: curve, RNG: rng.ForSubsystem(SubsystemRepeat(rep))}
		for step := 0; step < ctrl.Budget(); step++ {
			s := ctrl.ChooseCandidate()
			answer, _ := flip.Apply(step, sampler.Sample(s))
			if err := ctrl.RecordFeedback(answer); err != nil {
				return nil, fmt.Errorf("repeat %d step %d: %w", rep, step, err)
			}
		}
		estimate := spec.estimate(ctrl)
		regret := math.Abs(curve.Probability(estimate) - curve.MuStar)
		result.Estimates = append(result.Estimates, estimate)
		result.Regrets = append(result.Regrets, regret)
		logrus.Tracef("experiment: repeat %d estimate=%.6f regret=%.6f nodes=%d", rep, estimate, regret, ctrl.Tree().Len())
	}

	result.Summary = Summarize(result.Regrets)
	return result, nil
}

// newController builds a fresh search for one repeat.
func (s Spec) newController() (*search.Controller, error) {
	var opts []search.Option
	if s.Policy != (search.BoundPolicy{}) {
		opts = append(opts, search.WithBoundPolicy(s.Policy))
	}
	return search.NewController(s.Search, opts...)
}

// estimate returns the recommendation selected by s.Estimator.
func (s Spec) estimate(ctrl *search.Controller) float64 {
	if s.Estimator == EstimatorPromising {
		return ctrl.PromisingRecommendation()
	}
	return ctrl.FinalRecommendation()
}

// Summarize computes mean, population standard deviation, median and maximum
// of regrets. Safe for empty input (returns zero-value fields).
func Summarize(regrets []float64) Summary {
	var s Summary
	if len(regrets) == 0 {
		return s
	}
	s.MeanRegret, s.StdDevRegret = stat.PopMeanStdDev(regrets, nil)
	sorted := append([]float64(nil), regrets...)
	sort.Float64s(sorted)
	s.MedianRegret = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.MaxRegret = sorted[len(sorted)-1]
	return s
}
