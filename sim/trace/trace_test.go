package trace

import (
	"testing"
)

func TestDecisionTrace_RecordBid_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	dt := NewDecisionTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a bid record is recorded
	dt.RecordBid(BidRecord{
		Season:    1,
		Team:      "Team A",
		Strategy:  "sarsa",
		RecruitID: "r1",
		Ask:       20,
		Bid:       30,
		Signed:    true,
		Phase:     PhaseDecision,
	})

	// THEN the trace contains one bid record with correct data
	if len(dt.Bids) != 1 {
		t.Fatalf("expected 1 bid, got %d", len(dt.Bids))
	}
	if dt.Bids[0].Team != "Team A" {
		t.Errorf("expected team Team A, got %s", dt.Bids[0].Team)
	}
	if !dt.Bids[0].Signed {
		t.Error("expected signed=true")
	}
}

func TestDecisionTrace_RecordMarket_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	dt := NewDecisionTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a market record is recorded
	dt.RecordMarket(MarketRecord{Season: 2, RecruitID: "r9", Offers: 3, Winner: "Team C", Bid: 40, Signed: true})

	// THEN the trace contains it
	if len(dt.Markets) != 1 {
		t.Fatalf("expected 1 market record, got %d", len(dt.Markets))
	}
	if dt.Markets[0].Winner != "Team C" {
		t.Errorf("expected Team C, got %s", dt.Markets[0].Winner)
	}
}

func TestDecisionTrace_Window_FiltersBySeason(t *testing.T) {
	// GIVEN records across three seasons
	dt := NewDecisionTrace(TraceConfig{Level: TraceLevelDecisions})
	for season := 1; season <= 3; season++ {
		dt.RecordBid(BidRecord{Season: season, Team: "Team A", Phase: PhaseDecision})
		dt.RecordMarket(MarketRecord{Season: season})
	}

	// WHEN the middle season is windowed
	w := dt.Window(2, 2)

	// THEN only its records remain
	if len(w.Bids) != 1 || w.Bids[0].Season != 2 {
		t.Errorf("expected only season 2 bids, got %+v", w.Bids)
	}
	if len(w.Markets) != 1 || w.Markets[0].Season != 2 {
		t.Errorf("expected only season 2 market records, got %+v", w.Markets)
	}
}

func TestDecisionTrace_Enabled(t *testing.T) {
	var nilTrace *DecisionTrace
	if nilTrace.Enabled() {
		t.Error("nil trace must not be enabled")
	}
	if NewDecisionTrace(TraceConfig{Level: TraceLevelNone}).Enabled() {
		t.Error("level none must not be enabled")
	}
	if !NewDecisionTrace(TraceConfig{Level: TraceLevelDecisions}).Enabled() {
		t.Error("level decisions must be enabled")
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true},
		{"verbose", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
		}
	}
}
