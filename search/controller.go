package search

import (
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/zoom/search/trace"
)

// Controller runs a threshold search over a lazily grown tree of grids.
//
// Each ChooseCandidate must be answered by exactly one RecordFeedback before
// the next candidate is requested. The reading used by decisions flips after
// every recorded answer, starting pessimistic.
//
// Thread-safety: NOT thread-safe. Callers sharing a Controller must guard the
// whole instance with a single lock.
type Controller struct {
	cfg    Config
	tree   *Tree
	policy BoundPolicy
	log    logrus.FieldLogger
	trace  *trace.SearchTrace

	reading Reading
	samples int

	pending    bool
	pendingID  NodeID
	pendingArm int
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger routes decision and arm-table trace lines to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = l }
}

// WithTrace records every decision and answer into st.
func WithTrace(st *trace.SearchTrace) Option {
	return func(c *Controller) { c.trace = st }
}

// WithBoundPolicy overrides which relation family each reading consumes.
func WithBoundPolicy(p BoundPolicy) Option {
	return func(c *Controller) { c.policy = p }
}

// NewController validates cfg and builds the root grid spanning
// [cfg.MinInterval, cfg.MaxInterval).
func NewController(cfg Config, opts ...Option) (*Controller, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	cfg.GridSize = NormalizeGridSize(cfg.GridSize, cfg.Budget)
	if cfg.CoefCI == 0 {
		cfg.CoefCI = DefaultCoefCI
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Controller{
		cfg:     cfg,
		policy:  DefaultBoundPolicy(),
		log:     discard,
		reading: Pessimistic,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.policy.Validate(); err != nil {
		return nil, err
	}

	root := NewGridNode(cfg.MuStar, cfg.MinInterval, cfg.MaxInterval, cfg.Budget, cfg.GridSize, cfg.CoefCI)
	c.tree = NewTree(root)
	c.log.WithFields(logrus.Fields{"K": cfg.GridSize, "T": cfg.Budget, "muStar": cfg.MuStar}).
		Debug("search initialized")
	return c, nil
}

// Config returns the effective configuration, with GridSize and CoefCI resolved.
func (c *Controller) Config() Config { return c.cfg }

// GridSize returns the resolved K shared by every node.
func (c *Controller) GridSize() int { return c.cfg.GridSize }

// Budget returns T.
func (c *Controller) Budget() int { return c.cfg.Budget }

// Samples returns the number of answers recorded so far.
func (c *Controller) Samples() int { return c.samples }

// Reading returns the reading the next decision will use.
func (c *Controller) Reading() Reading { return c.reading }

// BoundPolicy returns the reading-to-bound pairing in effect.
func (c *Controller) BoundPolicy() BoundPolicy { return c.policy }

// Tree exposes the grid arena for inspection.
func (c *Controller) Tree() *Tree { return c.tree }

// Pending returns the node and arm awaiting feedback, if any.
func (c *Controller) Pending() (NodeID, int, bool) {
	return c.pendingID, c.pendingArm, c.pending
}

// ChooseCandidate descends from the root through zoom decisions until a node
// decides to sample, and returns the input value of the chosen arm.
// Calling it again before RecordFeedback replaces the pending candidate.
func (c *Controller) ChooseCandidate() float64 {
	id := RootID
	for {
		node := c.tree.Node(id)
		d := node.Decide(c.reading, c.policy)
		c.recordDecision(id, node, d)
		if d.Action == ActionSample {
			node.Focus(d.Index)
			c.pending, c.pendingID, c.pendingArm = true, id, d.Index
			return node.Value(d.Index)
		}
		id = c.tree.ZoomInto(id, d.Index)
	}
}

// RecordFeedback stores the answer for the pending candidate and flips the
// reading for the next decision.
func (c *Controller) RecordFeedback(success bool) error {
	if !c.pending {
		return ErrNoPendingCandidate
	}
	id := c.pendingID
	node := c.tree.Node(id)
	arm := node.RecordAnswer(success)
	c.pending = false
	c.samples++
	c.reading = c.reading.Flip()

	c.log.WithFields(logrus.Fields{
		"node":  id,
		"depth": c.tree.Depth(id),
		"arm":   c.pendingArm,
	}).Debugf("answer=%t A[%d %d %s %s]", success, arm.Positive, arm.Pulls, arm.ByCI, arm.ByKL)
	c.log.WithField("node", id).Trace(node.String())

	if c.trace != nil {
		c.trace.RecordFeedback(trace.FeedbackRecord{
			Step:     c.samples - 1,
			Node:     int(id),
			Depth:    c.tree.Depth(id),
			Arm:      c.pendingArm,
			Value:    node.Value(c.pendingArm),
			Success:  success,
			Positive: arm.Positive,
			Pulls:    arm.Pulls,
			ByCI:     int(arm.ByCI),
			ByKL:     int(arm.ByKL),
		})
	}
	return nil
}

// FinalRecommendation descends with optimistic readings, following zooms only
// into children that already exist, and returns the most pulled arm of the
// deepest node reached. It never mutates the search.
func (c *Controller) FinalRecommendation() float64 {
	path := c.optimisticPath()
	id := path[len(path)-1]
	value, pulls := c.tree.Node(id).MostPulledArm()
	c.log.WithFields(logrus.Fields{"node": id, "pulls": pulls}).Debugf("final recommendation %g", value)
	return value
}

// PromisingRecommendation walks the same path as FinalRecommendation but
// prefers, among nodes whose most pulled arm was pulled more than
// N* = T / (ln T * ln ln T) times, the arm with the most pulls. It falls back
// to FinalRecommendation when no node on the path qualifies.
func (c *Controller) PromisingRecommendation() float64 {
	nStar := c.promisingThreshold()
	bestPulls := 0
	best := math.NaN()
	for _, id := range c.optimisticPath() {
		value, pulls := c.tree.Node(id).MostPulledArm()
		if float64(pulls) > nStar && pulls > bestPulls {
			best, bestPulls = value, pulls
		}
	}
	if math.IsNaN(best) {
		return c.FinalRecommendation()
	}
	return best
}

func (c *Controller) promisingThreshold() float64 {
	t := float64(c.cfg.Budget)
	n := t / (math.Log(t) * math.Log(math.Log(t)))
	if math.IsNaN(n) || n < 0 {
		return math.Inf(1)
	}
	return n
}

// optimisticPath returns the node handles visited by an optimistic descent,
// root first.
func (c *Controller) optimisticPath() []NodeID {
	path := []NodeID{RootID}
	id := RootID
	for {
		d := c.tree.Node(id).Decide(Optimistic, c.policy)
		if d.Action == ActionSample {
			return path
		}
		child, ok := c.tree.Child(id, d.Index)
		if !ok {
			return path
		}
		id = child
		path = append(path, id)
	}
}

func (c *Controller) recordDecision(id NodeID, node *GridNode, d Decision) {
	c.log.WithFields(logrus.Fields{
		"node":    id,
		"depth":   c.tree.Depth(id),
		"reading": c.reading,
	}).Debugf("%s %d (value=%g)", d.Action, d.Index, node.Value(d.Index))

	if c.trace == nil {
		return
	}
	parent := -1
	if p, ok := c.tree.Parent(id); ok {
		parent = int(p)
	}
	c.trace.RecordDecision(trace.DecisionRecord{
		Step:    c.samples,
		Node:    int(id),
		Parent:  parent,
		Depth:   c.tree.Depth(id),
		Action:  d.Action.String(),
		Arm:     d.Index,
		Value:   node.Value(d.Index),
		Reading: c.reading.String(),
	})
}
