// Package search estimates the input value at which a noisy, Bernoulli-observed
// response crosses a target rate muStar, within a fixed budget of probes.
//
// # Reading Guide
//
//   - bounds.go: KL divergence, Hoeffding radius, KL threshold, grid sizing
//   - relation.go: relation codes (<<, <, >, >>) and the optimistic/pessimistic readings
//   - grid.go: GridNode, one K+1 point grid with its sample-or-zoom rule
//   - tree.go: append-only arena of grids addressed by NodeID
//   - controller.go: Controller, which walks the tree for each candidate
//
// # Algorithm
//
// Every GridNode tracks, per arm, the number of positive answers and pulls and
// two relation codes: one from a Hoeffding confidence interval, one from a KL
// divergence test. A node keeps a focus arm; from the focus estimate it infers
// the pair of neighbouring arms straddling the crossing. When the lower arm is
// confidently below muStar and the upper one confidently above, the node zooms
// into that cell, creating (once) a child grid covering exactly the cell.
// Otherwise it samples whichever neighbour needs evidence.
//
// The controller alternates readings after every answer: pessimistic
// decisions consume Hoeffding codes, optimistic ones KL codes (see
// BoundPolicy). The final recommendation descends with optimistic readings
// only and reports the most pulled arm of the deepest grid reached.
//
// # Usage
//
//	ctrl, err := search.NewController(search.DefaultConfig(0.5, 200))
//	if err != nil {
//		return err
//	}
//	for i := 0; i < ctrl.Budget(); i++ {
//		s := ctrl.ChooseCandidate()
//		if err := ctrl.RecordFeedback(probe(s)); err != nil {
//			return err
//		}
//	}
//	estimate := ctrl.FinalRecommendation()
package search
