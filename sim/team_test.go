package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTeam_ClampsPopularity(t *testing.T) {
	assert.Equal(t, 100.0, NewTeam("A", 10, 150, StrategyMarket).Popularity)
	assert.Equal(t, 0.0, NewTeam("A", 10, -3, StrategyMarket).Popularity)
}

func TestTeam_MakeBid(t *testing.T) {
	tests := []struct {
		name    string
		budget  int
		ask     int
		amount  int
		full    bool
		success bool
	}{
		{"meets ask", 100, 20, 30, false, true},
		{"exactly the budget", 30, 20, 30, false, true},
		{"below ask", 100, 40, 30, false, false},
		{"over budget", 25, 20, 30, false, false},
		{"negative amount", 100, 0, -10, false, false},
		{"roster full", 100, 0, 10, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN a team and a recruit asking tt.ask
			team := NewTeam("A", tt.budget, 50, StrategyMarket)
			if tt.full {
				for i := 0; i < MaxRosterSize; i++ {
					team.Roster = append(team.Roster, RosterEntry{Swimmer: testSwimmer("x", "50 FR", 20, 0)})
				}
			}
			s := testSwimmer("s", "200 FR", 100, 5)
			s.Scholarship = tt.ask
			s.TeamFit = 3
			rosterBefore := len(team.Roster)

			// WHEN the team bids
			ok := team.MakeBid(s, tt.amount)

			// THEN success moves the budget, roster and popularity together
			assert.Equal(t, tt.success, ok)
			if ok {
				assert.Equal(t, tt.budget-tt.amount, team.Budget)
				assert.True(t, team.Has(s))
				assert.Equal(t, tt.amount, team.Roster[len(team.Roster)-1].Committed)
				assert.Equal(t, 53.0, team.Popularity)
			} else {
				assert.Equal(t, tt.budget, team.Budget)
				assert.Len(t, team.Roster, rosterBefore)
				assert.Equal(t, 50.0, team.Popularity)
			}
			assert.GreaterOrEqual(t, team.Budget, 0)
		})
	}
}

func TestTeam_AdvanceYear_GraduatesAndRefunds(t *testing.T) {
	// GIVEN a senior on 40 and a sophomore on 20
	team := NewTeam("A", 100, 50, StrategyMarket)
	senior := testSwimmer("senior", "200 FR", 100, 0)
	senior.YearsRemaining = 1
	senior.TeamFit = 4
	soph := testSwimmer("soph", "100 FL", 50, 0)
	soph.YearsRemaining = 3
	team.Roster = append(team.Roster,
		RosterEntry{Swimmer: senior, Committed: 40},
		RosterEntry{Swimmer: soph, Committed: 20})

	// WHEN the year advances
	graduates := team.AdvanceYear()

	// THEN the senior leaves with the committed scholarship refunded
	require.Equal(t, []*Swimmer{senior}, graduates)
	assert.False(t, team.Has(senior))
	assert.Equal(t, 140, team.Budget)
	assert.Equal(t, 46.0, team.Popularity, "graduate's fit comes off popularity")
	assert.Equal(t, 0, senior.YearsRemaining)

	// THEN the returner ages and improves
	assert.True(t, team.Has(soph))
	assert.Equal(t, 2, soph.YearsRemaining)
	assert.Less(t, soph.Times["100 FL"], 50.0)
	assert.Equal(t, 20, team.CommittedTotal())
}

func TestTeam_AdvanceYear_NoSwimmerWithZeroYearsRemains(t *testing.T) {
	team := NewTeam("A", 0, 50, StrategyMarket)
	for y := 1; y <= MaxYears; y++ {
		s := testSwimmer("s", "200 FR", 100, 0)
		s.YearsRemaining = y
		team.Roster = append(team.Roster, RosterEntry{Swimmer: s, Committed: 10})
	}
	for year := 0; year < MaxYears; year++ {
		team.AdvanceYear()
		for _, e := range team.Roster {
			assert.Positive(t, e.Swimmer.YearsRemaining)
		}
	}
	assert.Empty(t, team.Roster)
	assert.Equal(t, 40, team.Budget)
}

func TestTeam_ApplyBudgetDelta_FloorsAtZero(t *testing.T) {
	team := NewTeam("A", 30, 50, StrategyMarket)
	team.ApplyBudgetDelta(-50)
	assert.Equal(t, 0, team.Budget)
	team.ApplyBudgetDelta(25)
	assert.Equal(t, 25, team.Budget)
}

func TestTeam_EventCoverage(t *testing.T) {
	team := rosterOf("A", 50, testSwimmer("a", "50 FR", 20, 0), testSwimmer("b", "100 BA", 50, 0))
	assert.Equal(t, map[Discipline]bool{"50 FR": true, "100 BA": true}, team.CoveredEvents())

	s := testSwimmer("s", "50 FR", 21, 0)
	s.Events = append(s.Events, "200 IM", "400 IM")
	assert.Equal(t, 2, team.UncoveredEvents(s))
}

func TestTeam_ClassCounts(t *testing.T) {
	var swimmers []*Swimmer
	for _, y := range []int{1, 1, 2, 4, 4, 4} {
		s := testSwimmer("s", "200 FR", 100, 0)
		s.YearsRemaining = y
		swimmers = append(swimmers, s)
	}
	team := rosterOf("A", 50, swimmers...)
	assert.Equal(t, [MaxYears + 1]int{0, 2, 1, 0, 3}, team.ClassCounts())
}

func TestTeam_ProjectedScoreAndLastScore(t *testing.T) {
	team := rosterOf("A", 50, testSwimmer("a", "200 FR", 100, 1), testSwimmer("b", "200 FR", 101, 6))
	assert.InDelta(t, 19+6, team.ProjectedScore(DefaultScoringOptions), 1e-9)

	_, ok := team.LastScore()
	assert.False(t, ok)
	team.ConferenceScores = append(team.ConferenceScores, 120, 95)
	last, ok := team.LastScore()
	assert.True(t, ok)
	assert.Equal(t, 95, last)
}

func TestTeam_MakeBid_SameSwimmerTwiceFails(t *testing.T) {
	// GIVEN a swimmer already signed
	team := NewTeam("A", 100, 50, StrategyMarket)
	s := testSwimmer("s", "200 FR", 100, 5)
	require.True(t, team.MakeBid(s, 20))

	// WHEN the team bids for them again
	ok := team.MakeBid(s, 20)

	// THEN the second bid fails and nothing changes
	assert.False(t, ok)
	assert.Len(t, team.Roster, 1)
	assert.Equal(t, 80, team.Budget)
	assert.Equal(t, 20, team.CommittedTotal())
}
