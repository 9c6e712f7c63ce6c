package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_NilTrace_ReturnsZeroSummary(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, 0, summary.Samples)
	assert.Equal(t, 0, summary.NodesVisited)
	assert.NotNil(t, summary.ArmDistribution)
}

func TestSummarize_CountsSamplesZoomsAndDepth(t *testing.T) {
	// GIVEN a trace of two candidates, the second one after a zoom
	st := NewSearchTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordDecision(DecisionRecord{Step: 0, Node: 0, Action: "sample", Arm: 2, Value: 0.5})
	st.RecordFeedback(FeedbackRecord{Step: 0, Node: 0, Arm: 2, Value: 0.5, Success: true})
	st.RecordDecision(DecisionRecord{Step: 1, Node: 0, Action: "zoom", Arm: 1, Value: 0.25})
	st.RecordDecision(DecisionRecord{Step: 1, Node: 1, Depth: 1, Action: "sample", Arm: 2, Value: 0.375})
	st.RecordFeedback(FeedbackRecord{Step: 1, Node: 1, Depth: 1, Arm: 2, Value: 0.375, Success: false})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts reflect both answers and the single zoom
	assert.Equal(t, 2, summary.Samples)
	assert.Equal(t, 1, summary.Zooms)
	assert.Equal(t, 1, summary.Successes)
	assert.Equal(t, 1, summary.MaxDepth)
	assert.Equal(t, 2, summary.NodesVisited)
	assert.Equal(t, map[float64]int{0.5: 1, 0.375: 1}, summary.ArmDistribution)
}
