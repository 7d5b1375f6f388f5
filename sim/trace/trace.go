package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every bid decision and market resolution.
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

// DecisionTrace collects decision records during a training run.
type DecisionTrace struct {
	Config  TraceConfig
	Bids    []BidRecord
	Markets []MarketRecord
}

// NewDecisionTrace creates a DecisionTrace ready for recording.
func NewDecisionTrace(config TraceConfig) *DecisionTrace {
	return &DecisionTrace{
		Config:  config,
		Bids:    make([]BidRecord, 0),
		Markets: make([]MarketRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe on a nil trace.
func (dt *DecisionTrace) Enabled() bool {
	return dt != nil && dt.Config.Level == TraceLevelDecisions
}

// RecordBid appends a bid decision record.
func (dt *DecisionTrace) RecordBid(record BidRecord) {
	dt.Bids = append(dt.Bids, record)
}

// RecordMarket appends a market resolution record.
func (dt *DecisionTrace) RecordMarket(record MarketRecord) {
	dt.Markets = append(dt.Markets, record)
}

// Window returns a trace holding only the records for seasons in [from, to].
func (dt *DecisionTrace) Window(from, to int) *DecisionTrace {
	out := NewDecisionTrace(dt.Config)
	for _, b := range dt.Bids {
		if b.Season >= from && b.Season <= to {
			out.Bids = append(out.Bids, b)
		}
	}
	for _, m := range dt.Markets {
		if m.Season >= from && m.Season <= to {
			out.Markets = append(out.Markets, m)
		}
	}
	return out
}
