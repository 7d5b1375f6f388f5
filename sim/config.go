package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// TeamConfig describes one conference program at the start of a run.
type TeamConfig struct {
	Name       string  `yaml:"name" koanf:"name"`
	Budget     int     `yaml:"budget" koanf:"budget"`
	Popularity float64 `yaml:"popularity" koanf:"popularity"`
	Strategy   string  `yaml:"strategy" koanf:"strategy"`
}

// AgentConfig groups the SARSA learner's hyperparameters.
type AgentConfig struct {
	Alpha          float64 `yaml:"alpha" koanf:"alpha"`                     // initial learning rate
	Gamma          float64 `yaml:"gamma" koanf:"gamma"`                     // discount factor
	Epsilon        float64 `yaml:"epsilon" koanf:"epsilon"`                 // initial exploration rate
	EpsilonDecay   float64 `yaml:"epsilon_decay" koanf:"epsilon_decay"`     // ε ← ε₀·decay^year
	AlphaDecay     float64 `yaml:"alpha_decay" koanf:"alpha_decay"`         // α ← α₀·decay^year
	DecayFloor     float64 `yaml:"decay_floor" koanf:"decay_floor"`         // lower bound for both
	ReplayCapacity int     `yaml:"replay_capacity" koanf:"replay_capacity"` // ring size
	BatchSize      int     `yaml:"batch_size" koanf:"batch_size"`           // transitions per update
}

// ScoringConfig tunes recruit valuation.
type ScoringConfig struct {
	RelayMultiplier float64 `yaml:"relay_multiplier" koanf:"relay_multiplier"`
}

// Options converts the config into ScoringOptions.
func (c ScoringConfig) Options() ScoringOptions {
	return ScoringOptions{RelayMultiplier: c.RelayMultiplier}
}

// TelemetryConfig names the exported metrics. Empty values keep the
// recorder's defaults.
type TelemetryConfig struct {
	Namespace     string    `yaml:"namespace" koanf:"namespace"`
	Subsystem     string    `yaml:"subsystem" koanf:"subsystem"`
	RewardBuckets []float64 `yaml:"reward_buckets,omitempty" koanf:"reward_buckets"`
}

// Config is the complete description of a training run.
type Config struct {
	Seed                 int64           `yaml:"seed" koanf:"seed"`
	Seasons              int             `yaml:"seasons" koanf:"seasons"`
	PoolSize             int             `yaml:"pool_size" koanf:"pool_size"`
	PlacementProbability float64         `yaml:"placement_probability" koanf:"placement_probability"`
	AnnualBudgetDelta    int             `yaml:"annual_budget_delta" koanf:"annual_budget_delta"`
	BenchmarksFile       string          `yaml:"benchmarks_file,omitempty" koanf:"benchmarks_file"`
	Teams                []TeamConfig    `yaml:"teams" koanf:"teams"`
	Agent                AgentConfig     `yaml:"agent" koanf:"agent"`
	Market               MarketConfig    `yaml:"market" koanf:"market"`
	Meet                 MeetConfig      `yaml:"meet" koanf:"meet"`
	Scoring              ScoringConfig   `yaml:"scoring" koanf:"scoring"`
	Telemetry            TelemetryConfig `yaml:"telemetry" koanf:"telemetry"`
}

// DefaultAgentConfig returns the standard SARSA hyperparameters.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		Alpha:          0.2,
		Gamma:          0.95,
		Epsilon:        0.3,
		EpsilonDecay:   0.99,
		AlphaDecay:     0.995,
		DecayFloor:     1e-3,
		ReplayCapacity: 1000,
		BatchSize:      32,
	}
}

// DefaultTeams is the five-program conference: two learners sharing one
// policy, one market bidder and two fixed-strategy benchmarks.
func DefaultTeams() []TeamConfig {
	return []TeamConfig{
		{Name: "Team A", Budget: 500, Popularity: 50, Strategy: StrategySARSA},
		{Name: "Team B", Budget: 500, Popularity: 50, Strategy: StrategySARSA},
		{Name: "Team C", Budget: 500, Popularity: 50, Strategy: StrategyMarket},
		{Name: "Max Team", Budget: 500, Popularity: 50, Strategy: StrategyMaxBid},
		{Name: "Random Team", Budget: 500, Popularity: 50, Strategy: StrategyRandomBid},
	}
}

// DefaultConfig returns a complete, valid configuration.
func DefaultConfig() Config {
	return Config{
		Seed:                 42,
		Seasons:              200,
		PoolSize:             100,
		PlacementProbability: DefaultPlacementProbability,
		AnnualBudgetDelta:    0,
		Teams:                DefaultTeams(),
		Agent:                DefaultAgentConfig(),
		Market:               DefaultMarketConfig(),
		Meet:                 DefaultMeetConfig(),
		Scoring:              ScoringConfig{RelayMultiplier: 1.0},
		Telemetry:            TelemetryConfig{Namespace: "recruitsim", Subsystem: "training"},
	}
}

// ValidStrategies is the set of recognized team strategies.
var ValidStrategies = map[string]bool{
	StrategySARSA:     true,
	StrategyMaxBid:    true,
	StrategyRandomBid: true,
	StrategyMarket:    true,
}

// TeamsFromLists zips parallel name/budget/strategy lists into team configs.
// strategies may be empty (every team uses the market) or match names in length.
func TeamsFromLists(names []string, budgets []int, strategies []string) ([]TeamConfig, error) {
	if len(names) != len(budgets) {
		return nil, fmt.Errorf("%w: %d team names but %d budgets", ErrInvalidConfig, len(names), len(budgets))
	}
	if len(strategies) != 0 && len(strategies) != len(names) {
		return nil, fmt.Errorf("%w: %d team names but %d strategies", ErrInvalidConfig, len(names), len(strategies))
	}
	teams := make([]TeamConfig, len(names))
	for i, name := range names {
		strategy := StrategyMarket
		if len(strategies) != 0 {
			strategy = strategies[i]
		}
		teams[i] = TeamConfig{Name: name, Budget: budgets[i], Popularity: 50, Strategy: strategy}
	}
	return teams, nil
}

// Validate checks team definitions and parameter ranges.
func (c *Config) Validate() error {
	if c.Seasons <= 0 {
		return fmt.Errorf("%w: seasons must be positive, got %d", ErrInvalidConfig, c.Seasons)
	}
	if c.PoolSize <= 0 {
		return fmt.Errorf("%w: pool_size must be positive, got %d", ErrInvalidConfig, c.PoolSize)
	}
	if c.PlacementProbability < 0 || c.PlacementProbability > 1 {
		return fmt.Errorf("%w: placement_probability must be in [0,1], got %f", ErrInvalidConfig, c.PlacementProbability)
	}
	if len(c.Teams) == 0 {
		return fmt.Errorf("%w: at least one team is required", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Teams))
	for _, t := range c.Teams {
		if t.Name == "" {
			return fmt.Errorf("%w: team name must not be empty", ErrInvalidConfig)
		}
		if seen[t.Name] {
			return fmt.Errorf("%w: duplicate team name %q", ErrInvalidConfig, t.Name)
		}
		seen[t.Name] = true
		if t.Budget < 0 {
			return fmt.Errorf("%w: team %q budget must be non-negative, got %d", ErrInvalidConfig, t.Name, t.Budget)
		}
		if t.Popularity < 0 || t.Popularity > 100 {
			return fmt.Errorf("%w: team %q popularity must be in [0,100], got %f", ErrInvalidConfig, t.Name, t.Popularity)
		}
		if !ValidStrategies[t.Strategy] {
			return fmt.Errorf("%w: team %q has unknown strategy %q", ErrInvalidConfig, t.Name, t.Strategy)
		}
	}
	if err := c.Agent.validate(); err != nil {
		return err
	}
	if c.Market.MinBudgetFloor < 0 {
		return fmt.Errorf("%w: market.min_budget_floor must be non-negative, got %d", ErrInvalidConfig, c.Market.MinBudgetFloor)
	}
	if c.Market.OverrideProbability < 0 || c.Market.OverrideProbability > 1 {
		return fmt.Errorf("%w: market.override_probability must be in [0,1], got %f", ErrInvalidConfig, c.Market.OverrideProbability)
	}
	if c.Market.Finalists <= 0 {
		return fmt.Errorf("%w: market.finalists must be positive, got %d", ErrInvalidConfig, c.Market.Finalists)
	}
	if c.Meet.TieTolerance < 0 || c.Meet.TieJitter < 0 {
		return fmt.Errorf("%w: meet tie tolerance and jitter must be non-negative", ErrInvalidConfig)
	}
	if c.Meet.Variability < 0 || c.Meet.Variability >= 1 {
		return fmt.Errorf("%w: meet.variability must be in [0,1), got %f", ErrInvalidConfig, c.Meet.Variability)
	}
	for i := 1; i < len(c.Telemetry.RewardBuckets); i++ {
		if c.Telemetry.RewardBuckets[i] <= c.Telemetry.RewardBuckets[i-1] {
			return fmt.Errorf("%w: telemetry.reward_buckets must be strictly increasing", ErrInvalidConfig)
		}
	}
	if c.Scoring.RelayMultiplier < 1 {
		return fmt.Errorf("%w: scoring.relay_multiplier must be at least 1, got %f", ErrInvalidConfig, c.Scoring.RelayMultiplier)
	}
	return nil
}

func (a AgentConfig) validate() error {
	if a.Alpha <= 0 || a.Alpha > 1 {
		return fmt.Errorf("%w: agent.alpha must be in (0,1], got %f", ErrInvalidConfig, a.Alpha)
	}
	if a.Gamma < 0 || a.Gamma > 1 {
		return fmt.Errorf("%w: agent.gamma must be in [0,1], got %f", ErrInvalidConfig, a.Gamma)
	}
	if a.Epsilon < 0 || a.Epsilon > 1 {
		return fmt.Errorf("%w: agent.epsilon must be in [0,1], got %f", ErrInvalidConfig, a.Epsilon)
	}
	if a.EpsilonDecay <= 0 || a.EpsilonDecay > 1 || a.AlphaDecay <= 0 || a.AlphaDecay > 1 {
		return fmt.Errorf("%w: agent decay rates must be in (0,1]", ErrInvalidConfig)
	}
	if a.DecayFloor < 0 {
		return fmt.Errorf("%w: agent.decay_floor must be non-negative, got %f", ErrInvalidConfig, a.DecayFloor)
	}
	if a.ReplayCapacity <= 0 || a.BatchSize <= 0 || a.BatchSize > a.ReplayCapacity {
		return fmt.Errorf("%w: agent batch_size must be in [1, replay_capacity], got %d/%d", ErrInvalidConfig, a.BatchSize, a.ReplayCapacity)
	}
	return nil
}
