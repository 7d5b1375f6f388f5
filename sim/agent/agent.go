// Package agent implements the SARSA bidding learner and the training loop
// that drives a sim.Conference season by season.
//
// The value table and replay buffer belong to one Agent and are guarded by a
// single mutex, so read-only inspection (TableSize, Values, Epsilon) is safe
// from goroutines other than the one running Train.
package agent

import (
	"math"
	"math/rand"
	"sync"

	erand "golang.org/x/exp/rand"

	"github.com/recruit-sim/recruit-sim/sim"
)

// Agent is a SARSA learner with experience replay over StateKey.
// It implements BidPolicy with an ε-greedy choice among affordable actions.
type Agent struct {
	mu     sync.Mutex
	table  *ValueTable
	replay *ReplayBuffer

	cfg     sim.AgentConfig
	alpha   float64
	epsilon float64
	year    int // completed decay steps

	rng *rand.Rand
	src erand.Source
}

// New creates an agent with an empty value table. rng drives exploration,
// tie-breaking and replay sampling.
func New(cfg sim.AgentConfig, rng *rand.Rand) *Agent {
	return &Agent{
		table:   NewValueTable(),
		replay:  NewReplayBuffer(cfg.ReplayCapacity),
		cfg:     cfg,
		alpha:   cfg.Alpha,
		epsilon: cfg.Epsilon,
		rng:     rng,
		src:     sim.SourceOf(rng),
	}
}

// Choose picks an affordable action for t: uniformly at random with
// probability ε, otherwise the highest-valued action with ties broken
// uniformly.
func (a *Agent) Choose(state StateKey, t *sim.Team, _ *sim.Swimmer) Decision {
	acts := affordable(t.Budget)
	if len(acts) == 0 {
		return Decision{}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.rng.Float64() < a.epsilon {
		return Decision{Action: acts[a.rng.Intn(len(acts))], Explored: true}
	}

	values := a.table.Get(state)
	best := math.Inf(-1)
	var ties []int
	for _, act := range acts {
		switch v := values[act]; {
		case v > best:
			best = v
			ties = append(ties[:0], act)
		case v == best:
			ties = append(ties, act)
		}
	}
	return Decision{Action: ties[a.rng.Intn(len(ties))]}
}

// Update records tr in the replay buffer and, once a full batch is held,
// replays a uniformly sampled batch through the value table.
func (a *Agent) Update(tr Transition) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.replay.Push(tr)
	if a.replay.Len() < a.cfg.BatchSize {
		return
	}
	for _, sample := range a.replay.Sample(a.cfg.BatchSize, a.src) {
		a.table.Update(sample, a.alpha, a.cfg.Gamma)
	}
}

// Decay advances one training year: ε = max(floor, ε₀·decay^year) and
// likewise for α.
func (a *Agent) Decay() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.year++
	a.epsilon = math.Max(a.cfg.DecayFloor, a.cfg.Epsilon*math.Pow(a.cfg.EpsilonDecay, float64(a.year)))
	a.alpha = math.Max(a.cfg.DecayFloor, a.cfg.Alpha*math.Pow(a.cfg.AlphaDecay, float64(a.year)))
}

// Epsilon returns the current exploration rate.
func (a *Agent) Epsilon() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.epsilon
}

// Alpha returns the current learning rate.
func (a *Agent) Alpha() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.alpha
}

// TableSize returns the number of states the value table has materialized.
func (a *Agent) TableSize() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.table.Len()
}

// Values returns a copy of the action values for state.
func (a *Agent) Values(state StateKey) ActionValues {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.table.Get(state)
}

// ReplayLen returns the number of buffered transitions.
func (a *Agent) ReplayLen() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.replay.Len()
}
