package trace

// TraceSummary aggregates statistics from a SearchTrace.
type TraceSummary struct {
	Samples         int
	Zooms           int
	Successes       int
	MaxDepth        int
	NodesVisited    int
	ArmDistribution map[float64]int // sampled value → number of answers recorded there
}

// Summarize computes aggregate statistics from a SearchTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SearchTrace) *TraceSummary {
	summary := &TraceSummary{
		ArmDistribution: make(map[float64]int),
	}
	if st == nil {
		return summary
	}

	nodes := make(map[int]bool)
	for _, d := range st.Decisions {
		nodes[d.Node] = true
		if d.Action == "zoom" {
			summary.Zooms++
		}
		if d.Depth > summary.MaxDepth {
			summary.MaxDepth = d.Depth
		}
	}

	summary.Samples = len(st.Feedback)
	for _, f := range st.Feedback {
		nodes[f.Node] = true
		summary.ArmDistribution[f.Value]++
		if f.Success {
			summary.Successes++
		}
		if f.Depth > summary.MaxDepth {
			summary.MaxDepth = f.Depth
		}
	}

	summary.NodesVisited = len(nodes)

	return summary
}
