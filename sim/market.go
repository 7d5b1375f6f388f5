package sim

import (
	"math"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// MarketConfig tunes the heuristic recruiting market.
type MarketConfig struct {
	// MinBudgetFloor is the smallest budget at which a team shows interest at all.
	MinBudgetFloor int `yaml:"min_budget_floor" koanf:"min_budget_floor"`
	// QualityOrder processes recruits best-first (with jitter) instead of shuffled.
	QualityOrder bool `yaml:"quality_order" koanf:"quality_order"`
	// OverrideProbability is the chance the recruit ignores the lottery and
	// picks uniformly among the finalists.
	OverrideProbability float64 `yaml:"override_probability" koanf:"override_probability"`
	// Finalists is how many top offers enter the lottery.
	Finalists int `yaml:"finalists" koanf:"finalists"`
}

// DefaultMarketConfig returns the standard market knobs.
func DefaultMarketConfig() MarketConfig {
	return MarketConfig{
		MinBudgetFloor:      10,
		QualityOrder:        false,
		OverrideProbability: 0.2,
		Finalists:           3,
	}
}

const (
	standingPreferenceWeight = 2.0
	needPreferencePerEvent   = 3.0
	qualityOrderJitter       = 2.0
	maxSlackAdjustment       = 10.0
	needAdjustmentPerEvent   = 3.0
	popularityAdjustment     = 5.0
	signingPopularityBonus   = 2.0
)

// Offer is one team's bid for a recruit.
type Offer struct {
	Team       *Team
	Bid        int
	Preference float64
}

// MarketOutcome records how a recruit was resolved.
type MarketOutcome struct {
	Recruit    *Swimmer
	Offers     []Offer // ranked best first
	Winner     *Team   // nil when nobody was interested or the bid failed
	Bid        int
	Signed     bool
	Overridden bool
}

// Market resolves competing scholarship offers for heuristic teams.
type Market struct {
	rng            *rand.Rand
	cfg            MarketConfig
	scoring        ScoringOptions
	conferenceSize int
}

// NewMarket creates a market. conferenceSize is the number of teams that
// contest the meet; it scales the standing-based preference.
func NewMarket(rng *rand.Rand, cfg MarketConfig, scoring ScoringOptions, conferenceSize int) *Market {
	if cfg.Finalists <= 0 {
		cfg.Finalists = 3
	}
	return &Market{rng: rng, cfg: cfg, scoring: scoring, conferenceSize: conferenceSize}
}

// ProcessingOrder returns the order recruits are offered to the conference.
// By default it is a shuffle; with QualityOrder it is projected contribution
// descending after adding uniform jitter in [-2,2].
func (m *Market) ProcessingOrder(recruits []*Swimmer) []*Swimmer {
	order := make([]*Swimmer, len(recruits))
	copy(order, recruits)
	if !m.cfg.QualityOrder {
		m.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		return order
	}
	keys := make(map[*Swimmer]float64, len(order))
	for _, s := range order {
		keys[s] = s.ScoreContributionWith(m.scoring) + (m.rng.Float64()*2-1)*qualityOrderJitter
	}
	sort.SliceStable(order, func(i, j int) bool { return keys[order[i]] > keys[order[j]] })
	return order
}

// Interested reports whether t would consider s at all.
func (m *Market) Interested(t *Team, s *Swimmer) bool {
	return t.CanAfford(s) && t.Budget >= m.cfg.MinBudgetFloor && t.HasRoom()
}

// Preference scores how much t wants s: a bonus for a strong recent finish
// plus a bonus for every discipline of s the roster does not cover yet.
func (m *Market) Preference(t *Team, s *Swimmer) float64 {
	pref := 0.0
	if t.LastStanding > 0 {
		pref += standingPreferenceWeight * float64(max(0, m.conferenceSize-t.LastStanding))
	}
	pref += needPreferencePerEvent * float64(t.UncoveredEvents(s))
	return pref
}

// bidFor computes t's offer: the ask plus randomized adjustments for budget
// slack, unmet need and popularity, clipped to [ask, budget].
func (m *Market) bidFor(t *Team, s *Swimmer) int {
	ask := s.Scholarship
	slack := math.Min(maxSlackAdjustment, 0.1*float64(t.Budget-ask))
	need := float64(t.UncoveredEvents(s))
	raw := float64(ask) +
		m.rng.Float64()*slack +
		m.rng.Float64()*needAdjustmentPerEvent*need +
		m.rng.Float64()*popularityAdjustment*t.Popularity/100
	bid := int(math.Round(raw))
	if bid < ask {
		bid = ask
	}
	if bid > t.Budget {
		bid = t.Budget
	}
	return bid
}

// Offers collects ranked offers from every interested team:
// bid desc, then preference desc, then popularity desc.
func (m *Market) Offers(s *Swimmer, teams []*Team) []Offer {
	offers := make([]Offer, 0, len(teams))
	for _, t := range teams {
		if !m.Interested(t, s) {
			continue
		}
		offers = append(offers, Offer{Team: t, Bid: m.bidFor(t, s), Preference: m.Preference(t, s)})
	}
	sort.SliceStable(offers, func(i, j int) bool {
		a, b := offers[i], offers[j]
		if a.Bid != b.Bid {
			return a.Bid > b.Bid
		}
		if a.Preference != b.Preference {
			return a.Preference > b.Preference
		}
		return a.Team.Popularity > b.Team.Popularity
	})
	return offers
}

// Resolve runs the market for one recruit among teams. The finalists enter a
// lottery weighted by bid+preference, which the recruit overrides with a
// uniform pick with OverrideProbability. On a successful bid the recruit
// leaves the pool and the winner gains popularity. A recruit already gone
// from pool is not offered again.
func (m *Market) Resolve(s *Swimmer, teams []*Team, pool *RecruitPool) MarketOutcome {
	out := MarketOutcome{Recruit: s}
	if pool != nil && !pool.Contains(s) {
		return out
	}
	out.Offers = m.Offers(s, teams)
	if len(out.Offers) == 0 {
		return out
	}

	finalists := out.Offers
	if len(finalists) > m.cfg.Finalists {
		finalists = finalists[:m.cfg.Finalists]
	}
	pick := m.lottery(finalists)
	if m.rng.Float64() < m.cfg.OverrideProbability {
		pick = m.rng.Intn(len(finalists))
		out.Overridden = true
	}

	winner := finalists[pick]
	out.Winner = winner.Team
	out.Bid = winner.Bid
	if !winner.Team.MakeBid(s, winner.Bid) {
		logrus.Debugf("market: %s bid %d for %s failed", winner.Team.Name, winner.Bid, s.Name)
		return out
	}
	winner.Team.AdjustPopularity(m.rng.Float64() * signingPopularityBonus)
	if pool != nil {
		pool.Remove(s)
	}
	out.Signed = true
	return out
}

func (m *Market) lottery(finalists []Offer) int {
	weights := make([]float64, len(finalists))
	total := 0.0
	for i, o := range finalists {
		w := float64(o.Bid) + o.Preference
		if w < 0 {
			w = 0
		}
		weights[i] = w
		total += w
	}
	if total == 0 {
		return m.rng.Intn(len(finalists))
	}
	idx, ok := sampleuv.NewWeighted(weights, SourceOf(m.rng)).Take()
	if !ok {
		return 0
	}
	return idx
}

// RunRound resolves every recruit in the pool, in processing order, among
// teams. claim, when non-nil, sees each recruit first; a recruit it claims
// skips the market. Recruits nobody is interested in produce an outcome with
// no winner; with no teams the market is skipped entirely.
func (m *Market) RunRound(pool *RecruitPool, teams []*Team, claim func(*Swimmer) bool) []MarketOutcome {
	order := m.ProcessingOrder(pool.Recruits())
	outcomes := make([]MarketOutcome, 0, len(order))
	for _, s := range order {
		if claim != nil && claim(s) {
			continue
		}
		if len(teams) == 0 {
			continue
		}
		outcomes = append(outcomes, m.Resolve(s, teams, pool))
	}
	return outcomes
}
