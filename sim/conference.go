package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Conference owns the season state shared by every component: the teams,
// the recruit pool and the market and meet simulators, all drawing from one
// PartitionedRNG.
type Conference struct {
	Teams   []*Team
	Pool    *RecruitPool
	Market  *Market
	Meet    *Meet
	RNG     *PartitionedRNG
	Scoring ScoringOptions

	Season int // completed seasons

	poolSize          int
	annualBudgetDelta int
}

// NewConference validates cfg and builds a conference ready for its first season.
func NewConference(cfg Config) (*Conference, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var ranges map[Discipline]TimeRange
	if cfg.BenchmarksFile != "" {
		loaded, err := LoadBenchmarks(cfg.BenchmarksFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		ranges = loaded
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	scoring := cfg.Scoring.Options()

	teams := make([]*Team, len(cfg.Teams))
	for i, tc := range cfg.Teams {
		teams[i] = NewTeam(tc.Name, tc.Budget, tc.Popularity, tc.Strategy)
	}

	gen := NewRecruitGenerator(rng.ForSubsystem(SubsystemPool), ranges, cfg.PlacementProbability)
	c := &Conference{
		Teams:             teams,
		Pool:              NewRecruitPool(gen, cfg.PoolSize),
		Market:            NewMarket(rng.ForSubsystem(SubsystemMarket), cfg.Market, scoring, len(teams)),
		Meet:              NewMeet(rng.ForSubsystem(SubsystemMeet), cfg.Meet),
		RNG:               rng,
		Scoring:           scoring,
		poolSize:          cfg.PoolSize,
		annualBudgetDelta: cfg.AnnualBudgetDelta,
	}
	return c, nil
}

// Team returns the named team, or nil.
func (c *Conference) Team(name string) *Team {
	for _, t := range c.Teams {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// TeamsWithStrategy returns the teams using strategy, in conference order.
func (c *Conference) TeamsWithStrategy(strategy string) []*Team {
	var out []*Team
	for _, t := range c.Teams {
		if t.Strategy == strategy {
			out = append(out, t)
		}
	}
	return out
}

// RunMeet holds the conference championship.
func (c *Conference) RunMeet() *MeetResult {
	return c.Meet.Run(c.Teams)
}

// AdvanceYear ages every roster, applies the yearly budget adjustment and
// replaces the recruit pool. Returns the number of graduates.
func (c *Conference) AdvanceYear() int {
	graduates := 0
	for _, t := range c.Teams {
		gone := t.AdvanceYear()
		graduates += len(gone)
		t.ApplyBudgetDelta(c.annualBudgetDelta)
		logrus.Debugf("season %d: %s graduated %d, budget %d, roster %d", c.Season+1, t.Name, len(gone), t.Budget, len(t.Roster))
	}
	c.Pool.Replenish(c.poolSize)
	c.Season++
	return graduates
}
