// Package telemetry exports training progress as Prometheus metrics.
//
// A Recorder owns its own registry, so several runs in one process never
// collide, and it can write the registry to a node-exporter textfile once a
// run finishes.
package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/recruit-sim/recruit-sim/sim"
)

const (
	defaultNamespace = "recruitsim"
	defaultSubsystem = "training"
)

// Bid outcome label values.
const (
	OutcomeSigned = "signed"
	OutcomeFailed = "failed"
	OutcomePassed = "passed"
)

// defaultRewardBuckets cover the usual reward spread: penalized bids near
// -100 through well-placed recruits with a standing bonus.
var defaultRewardBuckets = []float64{-100, -50, -20, -10, 0, 10, 20, 50, 100, 200}

// Recorder implements the trainer's observer hooks with Prometheus collectors.
type Recorder struct {
	namespace     string
	subsystem     string
	rewardBuckets []float64
	registry      *prometheus.Registry

	seasons    prometheus.Counter
	teamScore  *prometheus.GaugeVec
	teamBudget *prometheus.GaugeVec
	teamRoster *prometheus.GaugeVec
	signings   *prometheus.CounterVec
	bids       *prometheus.CounterVec
	reward     prometheus.Histogram
	epsilon    prometheus.Gauge
	alpha      prometheus.Gauge
	states     prometheus.Gauge
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithNamespace overrides the metric namespace.
func WithNamespace(ns string) Option {
	return func(r *Recorder) { r.namespace = ns }
}

// WithSubsystem overrides the metric subsystem.
func WithSubsystem(sub string) Option {
	return func(r *Recorder) { r.subsystem = sub }
}

// WithRewardBuckets overrides the reward histogram buckets.
func WithRewardBuckets(buckets []float64) Option {
	return func(r *Recorder) { r.rewardBuckets = buckets }
}

// OptionsFrom turns the run's telemetry settings into recorder options,
// skipping empty fields.
func OptionsFrom(cfg sim.TelemetryConfig) []Option {
	var opts []Option
	if cfg.Namespace != "" {
		opts = append(opts, WithNamespace(cfg.Namespace))
	}
	if cfg.Subsystem != "" {
		opts = append(opts, WithSubsystem(cfg.Subsystem))
	}
	if len(cfg.RewardBuckets) > 0 {
		opts = append(opts, WithRewardBuckets(cfg.RewardBuckets))
	}
	return opts
}

// NewRecorder creates a recorder with every collector registered.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		namespace:     defaultNamespace,
		subsystem:     defaultSubsystem,
		rewardBuckets: defaultRewardBuckets,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.registry = prometheus.NewRegistry()

	auto := promauto.With(r.registry)
	r.seasons = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "seasons_completed_total",
		Help:      "Seasons completed in this run",
	})
	r.teamScore = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "team_score",
		Help:      "Most recent conference meet score per team",
	}, []string{"team"})
	r.teamBudget = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "team_budget",
		Help:      "Scholarship budget per team at season end",
	}, []string{"team"})
	r.teamRoster = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "team_roster_size",
		Help:      "Roster size per team at season end",
	}, []string{"team"})
	r.signings = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "signings_total",
		Help:      "Recruits signed per team",
	}, []string{"team"})
	r.bids = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "bids_total",
		Help:      "Bid decisions per team by outcome",
	}, []string{"team", "outcome"})
	r.reward = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "bid_reward",
		Help:      "Immediate reward of learner bids",
		Buckets:   r.rewardBuckets,
	})
	r.epsilon = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "epsilon",
		Help:      "Current exploration rate",
	})
	r.alpha = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "alpha",
		Help:      "Current learning rate",
	})
	r.states = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "value_table_states",
		Help:      "States materialized in the value table",
	})
	return r
}

// Registry returns the registry the collectors live on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveBid counts one bid decision. Rewards are only observed for bids
// that carry a learning signal (non-zero).
func (r *Recorder) ObserveBid(team string, bid int, signed bool, reward float64) {
	outcome := OutcomeFailed
	switch {
	case signed:
		outcome = OutcomeSigned
	case bid == 0:
		outcome = OutcomePassed
	}
	r.bids.WithLabelValues(team, outcome).Inc()
	if reward != 0 {
		r.reward.Observe(reward)
	}
}

// ObserveSeason updates every per-team gauge from s.
func (r *Recorder) ObserveSeason(s sim.SeasonSummary, tableSize int) {
	r.seasons.Inc()
	for team, score := range s.Scores {
		r.teamScore.WithLabelValues(team).Set(float64(score))
	}
	for team, budget := range s.Budgets {
		r.teamBudget.WithLabelValues(team).Set(float64(budget))
	}
	for team, size := range s.RosterSizes {
		r.teamRoster.WithLabelValues(team).Set(float64(size))
	}
	for team, n := range s.Signings {
		r.signings.WithLabelValues(team).Add(float64(n))
	}
	r.epsilon.Set(s.Epsilon)
	r.alpha.Set(s.Alpha)
	r.states.Set(float64(tableSize))
}

// WriteTextfile writes the registry in the Prometheus text format to path.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
