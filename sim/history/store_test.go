package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recruit-sim/recruit-sim/sim"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func season(n int, winner string) sim.SeasonSummary {
	loser := "Team B"
	if winner == "Team B" {
		loser = "Team A"
	}
	return sim.SeasonSummary{
		Season:      n,
		Scores:      map[string]int{winner: 300 + n, loser: 200},
		Budgets:     map[string]int{"Team A": 500 - n, "Team B": 480},
		RosterSizes: map[string]int{"Team A": 10 + n, "Team B": 8},
		Signings:    map[string]int{"Team A": 3},
		Standings:   []string{winner, loser},
		Alpha:       0.2,
		Epsilon:     0.3,
	}
}

func TestStore_SaveAndReadSeries(t *testing.T) {
	// GIVEN a run with three seasons
	ctx := context.Background()
	s := openTestStore(t)
	runID, err := s.BeginRun(ctx, 42, 3)
	require.NoError(t, err)
	require.NoError(t, s.SaveSeasons(ctx, runID, []sim.SeasonSummary{
		season(1, "Team A"), season(2, "Team B"), season(3, "Team A"),
	}))

	// WHEN a team's series is read back
	rows, err := s.TeamSeries(ctx, runID, "Team A")
	require.NoError(t, err)

	// THEN every season is present in order with its values
	require.Len(t, rows, 3)
	assert.Equal(t, TeamSeason{Season: 1, Team: "Team A", Standing: 1, Score: 301, Budget: 499, RosterSize: 11, Signings: 3}, rows[0])
	assert.Equal(t, 2, rows[1].Standing)
	assert.Equal(t, 200, rows[1].Score)
	assert.Equal(t, 3, rows[2].Season)

	titles, err := s.Champions(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Team A": 2, "Team B": 1}, titles)
}

func TestStore_SaveSeason_ReplacesDuplicates(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	runID, err := s.BeginRun(ctx, 1, 1)
	require.NoError(t, err)

	require.NoError(t, s.SaveSeason(ctx, runID, season(1, "Team A")))
	require.NoError(t, s.SaveSeason(ctx, runID, season(1, "Team B")))

	rows, err := s.TeamSeries(ctx, runID, "Team B")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Standing)
}

func TestStore_RunsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	first, err := s.BeginRun(ctx, 1, 1)
	require.NoError(t, err)
	second, err := s.BeginRun(ctx, 2, 5)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	require.NoError(t, s.SaveSeason(ctx, first, season(1, "Team A")))

	rows, err := s.TeamSeries(ctx, second, "Team A")
	require.NoError(t, err)
	assert.Empty(t, rows)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, int64(1), runs[0].Seed)
	assert.Equal(t, 5, runs[1].Seasons)
	assert.NotEmpty(t, runs[0].StartedAt)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(path)
	require.NoError(t, err)
	runID, err := s.BeginRun(ctx, 7, 1)
	require.NoError(t, err)
	require.NoError(t, s.SaveSeason(ctx, runID, season(1, "Team A")))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	rows, err := reopened.TeamSeries(ctx, runID, "Team A")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestStore_CancelledContext(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.BeginRun(ctx, 1, 1)
	assert.Error(t, err)
}
