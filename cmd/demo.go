package cmd

import (
	"fmt"

	"github.com/inference-sim/zoom/search"
	"github.com/inference-sim/zoom/search/response"
)

// Probe records one candidate and the answer fed back for it.
type Probe struct {
	Step    int
	Value   float64
	Answer  bool
	Flipped bool
}

// DemoReport is the outcome of runDemo.
type DemoReport struct {
	Probes    []Probe
	Final     float64
	Promising float64
}

// runDemo spends the controller's whole budget against a deterministic step
// at threshold, inverting every flipEvery-th answer.
func runDemo(ctrl *search.Controller, threshold float64, flipEvery int) (DemoReport, error) {
	step := response.NewStep(threshold)
	flip := response.FlipEvery{N: flipEvery}
	report := DemoReport{Probes: make([]Probe, 0, ctrl.Budget())}

	for i := 0; i < ctrl.Budget(); i++ {
		value := ctrl.ChooseCandidate()
		answer, flipped := flip.Apply(i, step.Probability(value) > 0.5)
		if err := ctrl.RecordFeedback(answer); err != nil {
			return report, fmt.Errorf("probe %d: %w", i+1, err)
		}
		report.Probes = append(report.Probes, Probe{Step: i, Value: value, Answer: answer, Flipped: flipped})
	}

	report.Final = ctrl.FinalRecommendation()
	report.Promising = ctrl.PromisingRecommendation()
	return report, nil
}
