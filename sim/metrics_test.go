package sim

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary(season int, scores map[string]int) SeasonSummary {
	a := NewTeam("A", 100, 50, StrategySARSA)
	b := NewTeam("B", 80, 50, StrategyMarket)
	result := &MeetResult{
		Totals:    scores,
		Standings: []Standing{{Team: a, Score: scores["A"]}, {Team: b, Score: scores["B"]}},
	}
	if scores["B"] > scores["A"] {
		result.Standings[0], result.Standings[1] = result.Standings[1], result.Standings[0]
	}
	return NewSeasonSummary(season, []*Team{a, b}, result, map[string]int{"A": 2}, 0.19, 0.29)
}

func TestNewSeasonSummary_Snapshot(t *testing.T) {
	s := sampleSummary(3, map[string]int{"A": 120, "B": 90})

	assert.Equal(t, 3, s.Season)
	assert.Equal(t, map[string]int{"A": 120, "B": 90}, s.Scores)
	assert.Equal(t, map[string]int{"A": 100, "B": 80}, s.Budgets)
	assert.Equal(t, map[string]int{"A": 0, "B": 0}, s.RosterSizes)
	assert.Equal(t, map[string]int{"A": 2, "B": 0}, s.Signings)
	assert.Equal(t, []string{"A", "B"}, s.Standings)
	assert.Equal(t, 0.19, s.Alpha)
	assert.Equal(t, 0.29, s.Epsilon)
}

func TestNewSeasonSummary_NilResult(t *testing.T) {
	s := NewSeasonSummary(1, []*Team{NewTeam("A", 10, 50, StrategyMarket)}, nil, nil, 0.2, 0.3)
	assert.Empty(t, s.Standings)
	assert.Empty(t, s.Scores)
	assert.Equal(t, 10, s.Budgets["A"])
}

func TestSeasonSummary_Print(t *testing.T) {
	var buf bytes.Buffer
	sampleSummary(7, map[string]int{"A": 120, "B": 90}).Print(&buf, 200)

	out := buf.String()
	assert.Contains(t, out, "Season 7/200")
	assert.Contains(t, out, "A:120 B:90")
	assert.Contains(t, out, "ε: 0.290 α: 0.190")
}

func TestHistory_RecordAndAggregate(t *testing.T) {
	// GIVEN three recorded seasons
	h := NewHistory([]string{"A", "B"})
	h.Record(sampleSummary(1, map[string]int{"A": 100, "B": 50}))
	h.Record(sampleSummary(2, map[string]int{"A": 80, "B": 90}))
	h.Record(sampleSummary(3, map[string]int{"A": 60, "B": 130}))

	// THEN series line up per team
	require.Equal(t, 3, h.Len())
	assert.Equal(t, []int{1, 2, 3}, h.Seasons)
	assert.Equal(t, []int{100, 80, 60}, h.Scores["A"])
	assert.Equal(t, []int{100, 100, 100}, h.Budgets["A"])
	assert.Equal(t, []int{0, 0, 0}, h.Rosters["B"])

	// THEN means respect the window
	assert.InDelta(t, 80.0, h.MeanScore("A", 0), 1e-9)
	assert.InDelta(t, 70.0, h.MeanScore("A", 2), 1e-9)
	assert.InDelta(t, 90.0, h.MeanScore("B", 99), 1e-9)
	assert.Equal(t, 0.0, h.MeanScore("nobody", 0))

	// THEN the winner is judged on the final season
	winner, score := h.Winner()
	assert.Equal(t, "B", winner)
	assert.Equal(t, 130, score)
}

func TestHistory_EmptyWinner(t *testing.T) {
	winner, score := NewHistory([]string{"A"}).Winner()
	assert.Equal(t, "", winner)
	assert.Equal(t, -1, score)
}
