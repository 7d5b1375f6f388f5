package sim

// MaxRosterSize bounds how many swimmers a team carries.
const MaxRosterSize = 20

// Team strategies. Exactly one policy is learned; every other strategy is a
// fixed heuristic.
const (
	StrategySARSA     = "sarsa"
	StrategyMaxBid    = "max-bid"
	StrategyRandomBid = "random-bid"
	StrategyMarket    = "market"
)

// RosterEntry pairs a swimmer with the scholarship committed to them.
type RosterEntry struct {
	Swimmer   *Swimmer
	Committed int
}

// Team is a conference program competing for recruits.
type Team struct {
	Name       string
	Budget     int     // cost units; never negative
	Popularity float64 // clamped to [0,100]
	Strategy   string
	Roster     []RosterEntry

	// ConferenceScores is append-only: one total per meet.
	ConferenceScores []int

	// LastStanding is the 1-based finish at the most recent meet, 0 before any meet.
	LastStanding int
}

// NewTeam creates a team with an empty roster.
func NewTeam(name string, budget int, popularity float64, strategy string) *Team {
	t := &Team{
		Name:     name,
		Budget:   budget,
		Strategy: strategy,
		Roster:   make([]RosterEntry, 0, MaxRosterSize),
	}
	t.SetPopularity(popularity)
	return t
}

// SetPopularity assigns popularity clamped to [0,100].
func (t *Team) SetPopularity(p float64) {
	t.Popularity = clampPopularity(p)
}

// AdjustPopularity adds delta to popularity, clamped to [0,100].
func (t *Team) AdjustPopularity(delta float64) {
	t.Popularity = clampPopularity(t.Popularity + delta)
}

func clampPopularity(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// HasRoom reports whether another swimmer fits on the roster.
func (t *Team) HasRoom() bool {
	return len(t.Roster) < MaxRosterSize
}

// CanAfford reports whether the team could meet the swimmer's requested scholarship.
func (t *Team) CanAfford(s *Swimmer) bool {
	return t.Budget >= s.Scholarship
}

// MakeBid offers amount to s. The bid succeeds only when it meets the ask,
// fits the budget, the roster has room and s is not already on it. On success the swimmer joins the
// roster, the budget drops by amount and popularity rises by the swimmer's fit.
// A failed bid leaves the team untouched.
func (t *Team) MakeBid(s *Swimmer, amount int) bool {
	if amount < 0 || amount > t.Budget || amount < s.Scholarship || !t.HasRoom() || t.Has(s) {
		return false
	}
	t.Budget -= amount
	t.Roster = append(t.Roster, RosterEntry{Swimmer: s, Committed: amount})
	t.AdjustPopularity(float64(s.TeamFit))
	return true
}

// Has reports whether s is on the roster.
func (t *Team) Has(s *Swimmer) bool {
	for _, e := range t.Roster {
		if e.Swimmer == s {
			return true
		}
	}
	return false
}

// AdvanceYear ages the roster by one season. Returning swimmers improve their
// times; swimmers out of eligibility graduate, returning their committed
// scholarship to the budget and taking their fit off popularity.
func (t *Team) AdvanceYear() []*Swimmer {
	var graduated []*Swimmer
	kept := t.Roster[:0]
	for _, e := range t.Roster {
		if e.Swimmer.DecrementYear() {
			e.Swimmer.Improve()
			kept = append(kept, e)
			continue
		}
		graduated = append(graduated, e.Swimmer)
		t.Budget += e.Committed
		t.AdjustPopularity(-float64(e.Swimmer.TeamFit))
	}
	// Clear the tail so graduated swimmers are not retained by the backing array.
	for i := len(kept); i < len(t.Roster); i++ {
		t.Roster[i] = RosterEntry{}
	}
	t.Roster = kept
	return graduated
}

// ApplyBudgetDelta adds an exogenous yearly adjustment, flooring the budget at zero.
func (t *Team) ApplyBudgetDelta(delta int) {
	t.Budget += delta
	if t.Budget < 0 {
		t.Budget = 0
	}
}

// CoveredEvents returns the set of disciplines somebody on the roster contests.
func (t *Team) CoveredEvents() map[Discipline]bool {
	covered := make(map[Discipline]bool)
	for _, e := range t.Roster {
		for _, d := range e.Swimmer.Events {
			covered[d] = true
		}
	}
	return covered
}

// UncoveredEvents counts how many of s's disciplines nobody on the roster swims.
func (t *Team) UncoveredEvents(s *Swimmer) int {
	covered := t.CoveredEvents()
	n := 0
	for _, d := range s.Events {
		if !covered[d] {
			n++
		}
	}
	return n
}

// ClassCounts tallies roster swimmers by years remaining; index 0 is unused
// and years above MaxYears land in the MaxYears slot.
func (t *Team) ClassCounts() [MaxYears + 1]int {
	var counts [MaxYears + 1]int
	for _, e := range t.Roster {
		y := e.Swimmer.YearsRemaining
		if y > MaxYears {
			y = MaxYears
		}
		if y < 1 {
			continue
		}
		counts[y]++
	}
	return counts
}

// ProjectedScore sums the roster's projected contributions.
func (t *Team) ProjectedScore(opts ScoringOptions) float64 {
	total := 0.0
	for _, e := range t.Roster {
		total += e.Swimmer.ScoreContributionWith(opts)
	}
	return total
}

// CommittedTotal sums scholarships committed to the current roster.
func (t *Team) CommittedTotal() int {
	total := 0
	for _, e := range t.Roster {
		total += e.Committed
	}
	return total
}

// LastScore returns the most recent meet total and whether one exists.
func (t *Team) LastScore() (int, bool) {
	if len(t.ConferenceScores) == 0 {
		return 0, false
	}
	return t.ConferenceScores[len(t.ConferenceScores)-1], true
}
