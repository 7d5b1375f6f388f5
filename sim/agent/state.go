package agent

import "github.com/recruit-sim/recruit-sim/sim"

// StateKey is the discretized view a bidding policy sees when a team
// considers one recruit. Every dimension is a small capped tier so the key
// can index a map directly.
type StateKey struct {
	BudgetTier      uint8 // min(budget/10, 10)
	AskTier         uint8 // min(ask/10, 5)
	PopularityTier  uint8 // clamp(popularity/10, 0, 10)
	FitTier         uint8 // clamp(fit+5, 0, 10)
	RosterTier      uint8 // min(roster/2, 10)
	PerformanceTier uint8 // min(last meet score/100, 10); 0 before the first meet
	ScoringEvents   uint8 // recruit disciplines with a projected placement
	StrengthTier    uint8 // min(Σ roster contribution/50, 20)
	Years           uint8 // recruit eligibility, capped at 4
}

const (
	maxBudgetTier      = 10
	maxAskTier         = 5
	maxPopularityTier  = 10
	maxFitTier         = 10
	maxRosterTier      = 10
	maxPerformanceTier = 10
	maxStrengthTier    = 20
)

// NewStateKey discretizes team t considering recruit s.
func NewStateKey(t *sim.Team, s *sim.Swimmer, opts sim.ScoringOptions) StateKey {
	perf := 0
	if last, ok := t.LastScore(); ok {
		perf = last / 100
	}
	return StateKey{
		BudgetTier:      tier(t.Budget/10, maxBudgetTier),
		AskTier:         tier(s.Scholarship/10, maxAskTier),
		PopularityTier:  tier(int(t.Popularity/10), maxPopularityTier),
		FitTier:         tier(s.TeamFit+5, maxFitTier),
		RosterTier:      tier(len(t.Roster)/2, maxRosterTier),
		PerformanceTier: tier(perf, maxPerformanceTier),
		ScoringEvents:   tier(s.ScoringEvents(), sim.MaxEventsPerSwimmer),
		StrengthTier:    tier(int(t.ProjectedScore(opts)/50), maxStrengthTier),
		Years:           tier(s.YearsRemaining, sim.MaxYears),
	}
}

// tier clamps v into [0, limit].
func tier(v, limit int) uint8 {
	if v < 0 {
		return 0
	}
	if v > limit {
		return uint8(limit)
	}
	return uint8(v)
}
