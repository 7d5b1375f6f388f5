package agent

import (
	"math"

	"github.com/recruit-sim/recruit-sim/sim"
)

// Reward shaping weights.
const (
	contributionWeight   = 2.0
	costPenaltyWeight    = 20.0
	reserveFraction      = 0.7
	reservePenaltyWeight = 0.8
	classBalanceWeight   = 4.0
	fitBonusWeight       = 2.0
	standingBonusWeight  = 10.0
)

// NoStanding marks a reward computed before the season's meet.
const NoStanding = -1

// RewardInput is everything the reward depends on, captured from a team
// considering one recruit.
type RewardInput struct {
	Bid          int
	Budget       int // budget the bid is measured against
	Contribution float64
	Fit          int
	Years        int
	Classes      [sim.MaxYears + 1]int
	RosterSize   int

	// Standing is the team's 0-based finish at this season's meet, or NoStanding.
	Standing int
	Teams    int
}

// NewRewardInput captures t's current state for a bid of amount on s.
func NewRewardInput(t *sim.Team, s *sim.Swimmer, bid int, opts sim.ScoringOptions) RewardInput {
	return RewardInput{
		Bid:          bid,
		Budget:       t.Budget,
		Contribution: s.ScoreContributionWith(opts),
		Fit:          s.TeamFit,
		Years:        s.YearsRemaining,
		Classes:      t.ClassCounts(),
		RosterSize:   len(t.Roster),
		Standing:     NoStanding,
	}
}

// WithStanding returns a copy carrying a meet result.
func (in RewardInput) WithStanding(rank, teams int) RewardInput {
	in.Standing = rank
	in.Teams = teams
	return in
}

// Reward scores one bid decision. Passing (bid 0) earns exactly 0. A bid
// earns twice the recruit's contribution, loses a cost penalty relative to
// the budget and a penalty for spending into the reserve, gains the marginal
// improvement in class balance and a fit bonus, and, once the meet has run,
// a bonus for the team's standing.
func Reward(in RewardInput) float64 {
	if in.Bid == 0 {
		return 0
	}
	budget := float64(max(in.Budget, 0))
	bid := float64(in.Bid)

	r := contributionWeight * in.Contribution
	r -= costPenaltyWeight * bid / (budget + 1)
	r -= math.Max(0, (bid-reserveFraction*budget)*reservePenaltyWeight)
	r += classBalanceWeight * classBalanceGain(in.Classes, in.RosterSize, in.Years)
	r += fitBonusWeight * float64(in.Fit)
	if in.Standing >= 0 {
		r += standingBonusWeight * float64(max(0, in.Teams-in.Standing))
	}
	return r
}

// classBalanceGain is how much adding one swimmer with the given years
// reduces that class's deviation from an even split of the roster.
func classBalanceGain(classes [sim.MaxYears + 1]int, rosterSize, years int) float64 {
	y := min(max(years, 1), sim.MaxYears)
	target := float64(rosterSize) / sim.MaxYears
	count := float64(classes[y])
	return math.Abs(count-target) - math.Abs(count+1-target)
}
