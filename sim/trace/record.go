// Package trace provides decision-trace recording for bidding policy analysis.
// It has no dependencies on sim/ or sim/agent/ and stores plain data types.
package trace

// Bid phases. Every policy decision is recorded once at decision time; a
// learner's successful bids are recorded again when the season-end reward
// is replayed.
const (
	PhaseDecision  = "decision"
	PhaseSeasonEnd = "season-end"
)

// BidRecord captures a single bidding decision by a policy-driven team.
type BidRecord struct {
	Season    int
	Team      string
	Strategy  string
	RecruitID string
	Ask       int
	Bid       int
	Explored  bool    // chosen by ε-exploration rather than greedily
	Signed    bool    // the bid won the recruit
	Reward    float64 // learner reward; 0 for teams that do not learn
	Phase     string
}

// MarketRecord captures how the heuristic market resolved one recruit.
type MarketRecord struct {
	Season     int
	RecruitID  string
	Offers     int
	Winner     string // empty when nobody bid
	Bid        int
	Signed     bool
	Overridden bool // the recruit overrode the weighted lottery
}
