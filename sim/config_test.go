package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 200, cfg.Seasons)
	assert.Len(t, cfg.Teams, 5)
	for _, tc := range cfg.Teams {
		assert.Equal(t, 500, tc.Budget)
	}
	assert.Equal(t, 0.2, cfg.Agent.Alpha)
	assert.Equal(t, 0.95, cfg.Agent.Gamma)
	assert.Equal(t, 0.3, cfg.Agent.Epsilon)
}

func TestConfig_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero seasons", func(c *Config) { c.Seasons = 0 }},
		{"zero pool", func(c *Config) { c.PoolSize = 0 }},
		{"placement probability above one", func(c *Config) { c.PlacementProbability = 1.5 }},
		{"no teams", func(c *Config) { c.Teams = nil }},
		{"empty team name", func(c *Config) { c.Teams[0].Name = "" }},
		{"duplicate team", func(c *Config) { c.Teams[1].Name = c.Teams[0].Name }},
		{"negative budget", func(c *Config) { c.Teams[0].Budget = -1 }},
		{"popularity out of range", func(c *Config) { c.Teams[0].Popularity = 101 }},
		{"unknown strategy", func(c *Config) { c.Teams[0].Strategy = "moneyball" }},
		{"alpha zero", func(c *Config) { c.Agent.Alpha = 0 }},
		{"gamma above one", func(c *Config) { c.Agent.Gamma = 1.1 }},
		{"epsilon negative", func(c *Config) { c.Agent.Epsilon = -0.1 }},
		{"decay zero", func(c *Config) { c.Agent.EpsilonDecay = 0 }},
		{"negative floor", func(c *Config) { c.Agent.DecayFloor = -1 }},
		{"batch above capacity", func(c *Config) { c.Agent.BatchSize = c.Agent.ReplayCapacity + 1 }},
		{"negative budget floor", func(c *Config) { c.Market.MinBudgetFloor = -1 }},
		{"override probability", func(c *Config) { c.Market.OverrideProbability = 2 }},
		{"no finalists", func(c *Config) { c.Market.Finalists = 0 }},
		{"negative tie jitter", func(c *Config) { c.Meet.TieJitter = -1 }},
		{"variability one", func(c *Config) { c.Meet.Variability = 1 }},
		{"relay multiplier below one", func(c *Config) { c.Scoring.RelayMultiplier = 0.5 }},
		{"reward buckets not increasing", func(c *Config) { c.Telemetry.RewardBuckets = []float64{0, 10, 10} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestTeamsFromLists(t *testing.T) {
	// GIVEN matching names and budgets without strategies
	teams, err := TeamsFromLists([]string{"X", "Y"}, []int{100, 200}, nil)
	require.NoError(t, err)

	// THEN every team bids through the market at default popularity
	assert.Equal(t, []TeamConfig{
		{Name: "X", Budget: 100, Popularity: 50, Strategy: StrategyMarket},
		{Name: "Y", Budget: 200, Popularity: 50, Strategy: StrategyMarket},
	}, teams)

	teams, err = TeamsFromLists([]string{"X", "Y"}, []int{100, 200}, []string{StrategySARSA, StrategyMaxBid})
	require.NoError(t, err)
	assert.Equal(t, StrategyMaxBid, teams[1].Strategy)
}

func TestTeamsFromLists_LengthMismatch(t *testing.T) {
	_, err := TeamsFromLists([]string{"X", "Y"}, []int{100}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = TeamsFromLists([]string{"X"}, []int{100}, []string{StrategySARSA, StrategyMarket})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
