package agent

import (
	"fmt"
	"math/rand"

	"github.com/recruit-sim/recruit-sim/sim"
)

// Decision is a policy's answer for one (team, recruit) pair.
type Decision struct {
	Action   int // index into sim.ScholarshipLevels
	Explored bool
}

// Bid returns the scholarship amount the decision offers.
func (d Decision) Bid() int {
	return ActionBid(d.Action)
}

// BidPolicy picks a bid action for a team considering a recruit.
// Implementations only choose actions the team can afford.
type BidPolicy interface {
	Choose(state StateKey, t *sim.Team, s *sim.Swimmer) Decision
}

// affordable returns the action indices whose bid fits budget, ascending.
// Action 0 always qualifies for a non-negative budget.
func affordable(budget int) []int {
	out := make([]int, 0, NumActions)
	for a := 0; a < NumActions; a++ {
		if ActionBid(a) <= budget {
			out = append(out, a)
		}
	}
	return out
}

// MaxBid always offers the largest affordable scholarship.
type MaxBid struct{}

func (MaxBid) Choose(_ StateKey, t *sim.Team, _ *sim.Swimmer) Decision {
	acts := affordable(t.Budget)
	if len(acts) == 0 {
		return Decision{}
	}
	return Decision{Action: acts[len(acts)-1]}
}

// RandomBid offers a uniformly random affordable scholarship.
type RandomBid struct {
	rng *rand.Rand
}

// NewRandomBid creates a RandomBid drawing from rng.
func NewRandomBid(rng *rand.Rand) *RandomBid {
	return &RandomBid{rng: rng}
}

func (r *RandomBid) Choose(_ StateKey, t *sim.Team, _ *sim.Swimmer) Decision {
	acts := affordable(t.Budget)
	if len(acts) == 0 {
		return Decision{}
	}
	return Decision{Action: acts[r.rng.Intn(len(acts))]}
}

// ValidBidPolicies is the set of strategies that decide through a BidPolicy.
// Market teams bid through sim.Market instead.
var ValidBidPolicies = map[string]bool{
	sim.StrategySARSA:     true,
	sim.StrategyMaxBid:    true,
	sim.StrategyRandomBid: true,
}

// IsPolicyStrategy reports whether strategy is driven by a BidPolicy.
func IsPolicyStrategy(strategy string) bool {
	return ValidBidPolicies[strategy]
}

// NewBidPolicy creates the policy for strategy. The sarsa strategy shares
// learner; heuristic strategies draw from rng.
// Panics on strategies outside ValidBidPolicies.
func NewBidPolicy(strategy string, learner *Agent, rng *rand.Rand) BidPolicy {
	if !IsPolicyStrategy(strategy) {
		panic(fmt.Sprintf("no bid policy for strategy %q", strategy))
	}
	switch strategy {
	case sim.StrategySARSA:
		return learner
	case sim.StrategyMaxBid:
		return MaxBid{}
	case sim.StrategyRandomBid:
		return NewRandomBid(rng)
	default:
		panic(fmt.Sprintf("unhandled bid policy %q", strategy))
	}
}
