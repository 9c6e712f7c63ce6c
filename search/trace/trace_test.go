package trace

import (
	"testing"
)

func TestSearchTrace_RecordDecision_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSearchTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a decision record is recorded
	st.RecordDecision(DecisionRecord{
		Step:    0,
		Node:    0,
		Depth:   0,
		Action:  "sample",
		Arm:     2,
		Value:   0.5,
		Reading: "pessimistic",
	})

	// THEN the trace contains one decision record with correct data
	if len(st.Decisions) != 1 {
		t.Fatalf("expected 1 decision, got %d", len(st.Decisions))
	}
	if st.Decisions[0].Arm != 2 || st.Decisions[0].Value != 0.5 {
		t.Errorf("unexpected decision record %+v", st.Decisions[0])
	}
}

func TestSearchTrace_RecordFeedback_AppendsRecord(t *testing.T) {
	// GIVEN a trace
	st := NewSearchTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a feedback record is recorded
	st.RecordFeedback(FeedbackRecord{Step: 0, Node: 0, Arm: 2, Value: 0.5, Success: true, Positive: 1, Pulls: 1, ByCI: 1, ByKL: 1})

	// THEN the trace contains one feedback record with correct data
	if len(st.Feedback) != 1 {
		t.Fatalf("expected 1 feedback record, got %d", len(st.Feedback))
	}
	if !st.Feedback[0].Success {
		t.Error("expected success=true")
	}
}

func TestSearchTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	st := NewSearchTrace(TraceConfig{Level: TraceLevelDecisions})

	st.RecordDecision(DecisionRecord{Step: 0, Action: "sample", Arm: 2})
	st.RecordDecision(DecisionRecord{Step: 1, Action: "zoom", Arm: 1})
	st.RecordDecision(DecisionRecord{Step: 1, Node: 1, Depth: 1, Action: "sample", Arm: 2})

	if len(st.Decisions) != 3 {
		t.Fatalf("expected 3 decisions, got %d", len(st.Decisions))
	}
	if st.Decisions[1].Action != "zoom" || st.Decisions[2].Node != 1 {
		t.Error("decision order not preserved")
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true},
		{"all", false},
		{"DECISIONS", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
		}
	}
}

func TestTraceConfig_Enabled(t *testing.T) {
	if (TraceConfig{Level: TraceLevelNone}).Enabled() {
		t.Error("none must not be enabled")
	}
	if (TraceConfig{}).Enabled() {
		t.Error("empty level must not be enabled")
	}
	if !(TraceConfig{Level: TraceLevelDecisions}).Enabled() {
		t.Error("decisions must be enabled")
	}
}
