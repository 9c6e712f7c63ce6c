package search

import (
	"fmt"
	"strings"
)

// Arm holds the pull statistics of one grid point.
type Arm struct {
	Positive int      // answers that exceeded the latent threshold
	Pulls    int      // total answers recorded
	ByCI     Relation // Hoeffding relation to muStar
	ByKL     Relation // KL relation to muStar
}

// Mean returns the empirical success rate, or 0 for an unpulled arm.
func (a Arm) Mean() float64 {
	if a.Pulls == 0 {
		return 0
	}
	return float64(a.Positive) / float64(a.Pulls)
}

// relation returns the code stored for the given bound family.
func (a Arm) relation(f BoundFamily) Relation {
	if f == BoundKL {
		return a.ByKL
	}
	return a.ByCI
}

// Action is the outcome of a grid decision.
type Action int

const (
	// ActionSample spends one unit of budget at Decision.Index.
	ActionSample Action = iota
	// ActionZoom refines the cell [Index, Index+1] with a child grid.
	ActionZoom
)

func (a Action) String() string {
	if a == ActionZoom {
		return "zoom"
	}
	return "sample"
}

// Decision pairs an action with the arm (sample) or cell (zoom) it targets.
type Decision struct {
	Action Action
	Index  int
}

// GridNode discretizes [minInterval, maxInterval) into K+1 evenly spaced arms
// and decides, from its own statistics, whether to keep sampling or to zoom.
//
// Arm 0 is pinned to (<<, <<) and arm K to (>>, >>); neither is ever sampled.
type GridNode struct {
	muStar      float64
	minInterval float64
	maxInterval float64
	budget      int
	k           int
	coefCI      float64

	arms  []Arm
	focus int
}

// NewGridNode creates a node with an empty arm table focused on its midpoint.
// k must be even and at least 4; use NormalizeGridSize for caller input.
func NewGridNode(muStar, minInterval, maxInterval float64, budget, k int, coefCI float64) *GridNode {
	if k < minGridSize || k%2 != 0 {
		invariant("NewGridNode", "grid size %d must be even and >= %d", k, minGridSize)
	}
	arms := make([]Arm, k+1)
	arms[0] = Arm{ByCI: RelationFarBelow, ByKL: RelationFarBelow}
	arms[k] = Arm{ByCI: RelationFarAbove, ByKL: RelationFarAbove}
	return &GridNode{
		muStar:      muStar,
		minInterval: minInterval,
		maxInterval: maxInterval,
		budget:      budget,
		k:           k,
		coefCI:      coefCI,
		arms:        arms,
		focus:       k / 2,
	}
}

// Value maps arm index i to its input value.
func (g *GridNode) Value(i int) float64 {
	return g.minInterval + float64(i)*g.cellSize()
}

func (g *GridNode) cellSize() float64 {
	return (g.maxInterval - g.minInterval) / float64(g.k)
}

// Bounds returns the half-open interval covered by the node.
func (g *GridNode) Bounds() (lo, hi float64) {
	return g.minInterval, g.maxInterval
}

// GridSize returns K.
func (g *GridNode) GridSize() int { return g.k }

// FocusIndex returns the arm currently being refined.
func (g *GridNode) FocusIndex() int { return g.focus }

// Arms returns a copy of the arm table.
func (g *GridNode) Arms() []Arm {
	out := make([]Arm, len(g.arms))
	copy(out, g.arms)
	return out
}

// Zoom returns a new node spanning exactly grid cell [cell, cell+1] of g,
// subdivided into its own K+1 arms. Both child bounds are computed with Value
// so the child edges coincide bit-for-bit with the parent's grid points.
func (g *GridNode) Zoom(cell int) *GridNode {
	if cell < 0 || cell >= g.k {
		invariant("GridNode.Zoom", "cell %d outside [0, %d)", cell, g.k)
	}
	return NewGridNode(g.muStar, g.Value(cell), g.Value(cell+1), g.budget, g.k, g.coefCI)
}

// Relation computes both relation codes of interior arm i from its current
// statistics. It panics when i is a sentinel or has never been pulled.
func (g *GridNode) Relation(i int) (ci, kl Relation) {
	if i <= 0 || i >= g.k {
		invariant("GridNode.Relation", "arm %d is not interior to grid of size %d", i, g.k)
	}
	arm := g.arms[i]
	if arm.Pulls == 0 {
		invariant("GridNode.Relation", "arm %d has no recorded pulls", i)
	}
	p := arm.Mean()
	ci = ClassifyHoeffding(p, HoeffdingRadius(g.coefCI, g.budget, arm.Pulls), g.muStar)
	kl = ClassifyKL(p, g.muStar, KLThreshold(g.budget, arm.Pulls))
	return ci, kl
}

// Decide applies the sample-or-zoom rule to the node's statistics under the
// given reading. It does not mutate the node; callers acting on an
// ActionSample decision move the focus with Focus.
func (g *GridNode) Decide(r Reading, policy BoundPolicy) Decision {
	focus := g.focus
	p0, t0 := g.arms[focus].Positive, g.arms[focus].Pulls
	if t0 == 0 {
		return Decision{Action: ActionSample, Index: focus}
	}

	high := focus + 1
	if float64(p0)/float64(t0) > g.muStar {
		high = focus
	}
	low := high - 1

	family := policy.family(r)
	rLow := g.arms[low].relation(family)
	rHigh := g.arms[high].relation(family)
	t1 := g.arms[high].Pulls

	if rLow == RelationFarBelow {
		if rHigh == RelationFarAbove {
			return Decision{Action: ActionZoom, Index: low}
		}
		return Decision{Action: ActionSample, Index: high}
	}

	switch {
	case rHigh == RelationFarAbove:
		return Decision{Action: ActionSample, Index: low}
	case t1 == 0:
		return Decision{Action: ActionSample, Index: high}
	case t0 < t1:
		return Decision{Action: ActionSample, Index: low}
	default:
		return Decision{Action: ActionSample, Index: high}
	}
}

// Focus moves the node's attention to interior arm i, the target of the next
// RecordAnswer.
func (g *GridNode) Focus(i int) {
	if i <= 0 || i >= g.k {
		invariant("GridNode.Focus", "arm %d is not interior to grid of size %d", i, g.k)
	}
	g.focus = i
}

// RecordAnswer adds one observation to the focus arm and refreshes both of
// its relation codes. It returns the updated arm.
func (g *GridNode) RecordAnswer(success bool) Arm {
	i := g.focus
	g.arms[i].Pulls++
	if success {
		g.arms[i].Positive++
	}
	g.arms[i].ByCI, g.arms[i].ByKL = g.Relation(i)
	return g.arms[i]
}

// MostPulledArm returns the value and pull count of the arm with strictly the
// most pulls; the lowest index wins ties. With no pulls at all it reports the
// focus arm.
func (g *GridNode) MostPulledArm() (value float64, pulls int) {
	best := g.focus
	for i, arm := range g.arms {
		if arm.Pulls > pulls {
			pulls = arm.Pulls
			best = i
		}
	}
	return g.Value(best), pulls
}

// String dumps the arm table as "i: [positive pulls ci kl]" entries.
func (g *GridNode) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%g, %g) focus=%d", g.minInterval, g.maxInterval, g.focus)
	for i, arm := range g.arms {
		fmt.Fprintf(&sb, " %d:[%d %d %s %s]", i, arm.Positive, arm.Pulls, arm.ByCI, arm.ByKL)
	}
	return sb.String()
}
