package trace

import "gonum.org/v1/gonum/stat"

// TeamDecisions aggregates one team's decision-phase bids.
type TeamDecisions struct {
	Decisions int
	ZeroBids  int
	Signed    int
}

// ZeroBidFraction is the share of decisions that offered nothing.
func (td TeamDecisions) ZeroBidFraction() float64 {
	if td.Decisions == 0 {
		return 0
	}
	return float64(td.ZeroBids) / float64(td.Decisions)
}

// TraceSummary aggregates statistics from a DecisionTrace.
type TraceSummary struct {
	TotalDecisions  int
	ZeroBids        int
	SignedBids      int
	ExploredBids    int
	MeanReward      float64
	MarketSignings  int
	MarketOverrides int
	PerTeam         map[string]TeamDecisions
}

// ZeroBidFraction is the share of all decisions that offered nothing.
func (ts *TraceSummary) ZeroBidFraction() float64 {
	if ts.TotalDecisions == 0 {
		return 0
	}
	return float64(ts.ZeroBids) / float64(ts.TotalDecisions)
}

// Summarize computes aggregate statistics from a DecisionTrace.
// Only decision-phase bid records count as decisions; season-end replays
// contribute to MeanReward alone.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(dt *DecisionTrace) *TraceSummary {
	summary := &TraceSummary{
		PerTeam: make(map[string]TeamDecisions),
	}
	if dt == nil {
		return summary
	}

	rewards := make([]float64, 0, len(dt.Bids))
	for _, b := range dt.Bids {
		rewards = append(rewards, b.Reward)
		if b.Phase == PhaseSeasonEnd {
			continue
		}
		td := summary.PerTeam[b.Team]
		td.Decisions++
		summary.TotalDecisions++
		if b.Bid == 0 {
			td.ZeroBids++
			summary.ZeroBids++
		}
		if b.Signed {
			td.Signed++
			summary.SignedBids++
		}
		if b.Explored {
			summary.ExploredBids++
		}
		summary.PerTeam[b.Team] = td
	}
	if len(rewards) > 0 {
		summary.MeanReward = stat.Mean(rewards, nil)
	}

	for _, m := range dt.Markets {
		if m.Signed {
			summary.MarketSignings++
		}
		if m.Overridden {
			summary.MarketOverrides++
		}
	}
	return summary
}
