package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every sample/zoom decision and every answer.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelDecisions
}

// SearchTrace collects decision and feedback records during a search.
type SearchTrace struct {
	Config    TraceConfig
	Decisions []DecisionRecord
	Feedback  []FeedbackRecord
}

// NewSearchTrace creates a SearchTrace ready for recording.
func NewSearchTrace(config TraceConfig) *SearchTrace {
	return &SearchTrace{
		Config:    config,
		Decisions: make([]DecisionRecord, 0),
		Feedback:  make([]FeedbackRecord, 0),
	}
}

// RecordDecision appends a decision record.
func (st *SearchTrace) RecordDecision(record DecisionRecord) {
	st.Decisions = append(st.Decisions, record)
}

// RecordFeedback appends a feedback record.
func (st *SearchTrace) RecordFeedback(record FeedbackRecord) {
	st.Feedback = append(st.Feedback, record)
}
