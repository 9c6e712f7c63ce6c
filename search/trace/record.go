// Package trace provides decision-trace recording for threshold searches.
// This package has no dependencies on search/. It stores pure data types.
package trace

// DecisionRecord captures one grid decision taken while descending the tree.
// A single ChooseCandidate call emits zero or more zoom records followed by
// exactly one sample record.
type DecisionRecord struct {
	Step    int     // number of answers recorded before this decision
	Node    int     // arena handle of the deciding node
	Parent  int     // arena handle of the node's parent, -1 for the root
	Depth   int     // zooms between the root and the node
	Action  string  // "sample" or "zoom"
	Arm     int     // sampled arm, or refined cell for zooms
	Value   float64 // input value of Arm
	Reading string  // "optimistic" or "pessimistic"
}

// FeedbackRecord captures one recorded answer and the arm state it produced.
type FeedbackRecord struct {
	Step     int
	Node     int
	Depth    int
	Arm      int
	Value    float64
	Success  bool
	Positive int
	Pulls    int
	ByCI     int
	ByKL     int
}
