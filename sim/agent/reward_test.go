package agent

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recruit-sim/recruit-sim/sim"
)

func TestReward_NoBidIsZero(t *testing.T) {
	in := RewardInput{Bid: 0, Budget: 100, Contribution: 50, Fit: 5, Years: 1, Standing: 0, Teams: 5}
	assert.Equal(t, 0.0, Reward(in))
}

func TestReward_Components(t *testing.T) {
	// GIVEN a projected winner in 100 FR (contribution (16×1.1+3)×1.0 = 20.6)
	// on an empty roster with budget 100
	team := sim.NewTeam("A", 100, 50, sim.StrategySARSA)
	s := placedSwimmer(1, 0, 2, 10)

	in := NewRewardInput(team, s, 20, sim.DefaultScoringOptions)

	// THEN reward = 2×20.6 − 20×20/101 − 0 + class balance (0→1 against target 0 = −1)×4 + 0
	want := 2*20.6 - 20.0*20/101 - 4
	assert.InDelta(t, want, Reward(in), 1e-9)
}

func TestReward_ReservePenalty(t *testing.T) {
	// GIVEN a bid of the whole budget
	base := RewardInput{Bid: 50, Budget: 50, Contribution: 10, Years: 1, RosterSize: 4,
		Classes: [sim.MaxYears + 1]int{0, 0, 1, 1, 2}, Standing: NoStanding}

	// THEN the penalty is (50 − 35)×0.8 = 12 and class balance (0→1 against target 1) = +4
	want := 20 - 20.0*50/51 - 12 + 4
	assert.InDelta(t, want, Reward(base), 1e-9)
}

func TestReward_StandingBonusOnlyWithResults(t *testing.T) {
	in := RewardInput{Bid: 10, Budget: 200, Contribution: 5, Years: 1, Standing: NoStanding}
	before := Reward(in)

	// WHEN the team won a five-team meet (rank 0)
	after := Reward(in.WithStanding(0, 5))

	// THEN the bonus is 10 × (5 − 0)
	assert.InDelta(t, 50.0, after-before, 1e-9)

	// AND a last-place finish still earns 10 × (5 − 4)
	assert.InDelta(t, 10.0, Reward(in.WithStanding(4, 5))-before, 1e-9)
}

func TestReward_ZeroBudgetIsFinite(t *testing.T) {
	// Budget floors at zero; the +1 denominator keeps the penalty finite.
	in := RewardInput{Bid: 10, Budget: -5, Contribution: 5, Years: 1, Standing: NoStanding}
	r := Reward(in)
	assert.False(t, math.IsNaN(r))
	assert.InDelta(t, 10-200.0-8-4, r, 1e-9)
}

func TestReward_MonotoneInContribution(t *testing.T) {
	// GIVEN identical bids differing only in projected A-final placement
	team := sim.NewTeam("A", 300, 50, sim.StrategySARSA)
	prev := math.Inf(-1)
	for place := 8; place >= 1; place-- {
		s := placedSwimmer(place, 1, 3, 20)
		r := Reward(NewRewardInput(team, s, 30, sim.DefaultScoringOptions))

		// THEN reward strictly increases with contribution
		assert.Greater(t, r, prev, "place %d", place)
		prev = r
	}

	// AND directly on the input, holding everything else fixed
	in := RewardInput{Bid: 30, Budget: 300, Fit: 1, Years: 3, Standing: NoStanding}
	for c := 0.0; c < 50; c += 5 {
		lo, hi := in, in
		lo.Contribution, hi.Contribution = c, c+0.5
		assert.Greater(t, Reward(hi), Reward(lo))
	}
}

func TestClassBalanceGain(t *testing.T) {
	tests := []struct {
		name    string
		classes [sim.MaxYears + 1]int
		roster  int
		years   int
		want    float64
	}{
		{"empty roster", [sim.MaxYears + 1]int{}, 0, 1, -1},
		{"under-filled class", [sim.MaxYears + 1]int{0, 0, 4, 4, 4}, 12, 1, 1},
		{"over-filled class", [sim.MaxYears + 1]int{0, 8, 0, 0, 0}, 8, 1, -1},
		{"years clamp high", [sim.MaxYears + 1]int{0, 2, 2, 2, 0}, 6, 9, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, classBalanceGain(tt.classes, tt.roster, tt.years), 1e-9)
		})
	}
}
