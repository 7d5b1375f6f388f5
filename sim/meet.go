package sim

import (
	"math"
	"math/rand"
	"sort"
)

// MeetConfig tunes the conference championship simulation.
type MeetConfig struct {
	// TieTolerance is the time gap, in seconds, within which neighbours are tied.
	TieTolerance float64 `yaml:"tie_tolerance" koanf:"tie_tolerance"`
	// TieJitter is the half-width of the uniform noise added to each side's popularity.
	TieJitter float64 `yaml:"tie_jitter" koanf:"tie_jitter"`
	// Variability is the half-width of the multiplicative meet-day noise on team totals.
	Variability float64 `yaml:"variability" koanf:"variability"`
	// PopularityLadder is the popularity change by final standing. Standings
	// past the end of the ladder take its last rung.
	PopularityLadder []float64 `yaml:"popularity_ladder" koanf:"popularity_ladder"`
}

// DefaultMeetConfig returns the standard meet knobs.
func DefaultMeetConfig() MeetConfig {
	return MeetConfig{
		TieTolerance:     0.5,
		TieJitter:        10,
		Variability:      0.1,
		PopularityLadder: []float64{10, 5, -5, -10},
	}
}

// Placing is one entrant's finish in one discipline.
type Placing struct {
	Swimmer *Swimmer
	Team    *Team
	Time    float64
	Place   int
	Points  int
}

// Standing is a team's final position at a meet.
type Standing struct {
	Team  *Team
	Score int
}

// MeetResult holds everything one meet produced.
type MeetResult struct {
	Events    map[Discipline][]Placing
	RawTotals map[string]int // summed event points before meet-day variability
	Totals    map[string]int // final scores
	Standings []Standing     // best first
}

// RankOf returns the 0-based standing of the named team, or len(Standings) when absent.
func (r *MeetResult) RankOf(name string) int {
	if r == nil {
		return 0
	}
	for i, st := range r.Standings {
		if st.Team.Name == name {
			return i
		}
	}
	return len(r.Standings)
}

// EventPoints returns the points each team earned in d.
func (r *MeetResult) EventPoints(d Discipline) map[string]int {
	points := make(map[string]int)
	for _, p := range r.Events[d] {
		points[p.Team.Name] += p.Points
	}
	return points
}

// Meet simulates the season-ending conference championship.
type Meet struct {
	rng *rand.Rand
	cfg MeetConfig
}

// NewMeet creates a meet simulator.
func NewMeet(rng *rand.Rand, cfg MeetConfig) *Meet {
	if len(cfg.PopularityLadder) == 0 {
		cfg.PopularityLadder = DefaultMeetConfig().PopularityLadder
	}
	return &Meet{rng: rng, cfg: cfg}
}

// Entrant is a swimmer racing for a team.
type Entrant struct {
	Swimmer *Swimmer
	Team    *Team
}

// Run scores every discipline, applies meet-day variability, ranks the teams,
// adjusts popularity by standing and appends each team's score to its history.
func (m *Meet) Run(teams []*Team) *MeetResult {
	result := &MeetResult{
		Events:    make(map[Discipline][]Placing, len(Disciplines)),
		RawTotals: make(map[string]int, len(teams)),
		Totals:    make(map[string]int, len(teams)),
	}

	available := m.available(teams)
	for _, d := range Disciplines {
		placings := m.RankEvent(d, available)
		result.Events[d] = placings
		for _, p := range placings {
			result.RawTotals[p.Team.Name] += p.Points
		}
	}

	for _, t := range teams {
		factor := 1 + (m.rng.Float64()*2-1)*m.cfg.Variability
		result.Totals[t.Name] = int(math.Round(float64(result.RawTotals[t.Name]) * factor))
	}

	ordered := make([]*Team, len(teams))
	copy(ordered, teams)
	sort.SliceStable(ordered, func(i, j int) bool {
		return result.Totals[ordered[i].Name] > result.Totals[ordered[j].Name]
	})

	ladder := m.cfg.PopularityLadder
	for i, t := range ordered {
		score := result.Totals[t.Name]
		result.Standings = append(result.Standings, Standing{Team: t, Score: score})
		t.AdjustPopularity(ladder[min(i, len(ladder)-1)])
		t.ConferenceScores = append(t.ConferenceScores, score)
		t.LastStanding = i + 1
	}
	return result
}

// available lists every rostered swimmer fit to race this meet.
func (m *Meet) available(teams []*Team) []Entrant {
	var out []Entrant
	for _, t := range teams {
		for _, e := range t.Roster {
			s := e.Swimmer
			if s.InjuryRisk > 0 && m.rng.Float64() < s.InjuryRisk {
				continue
			}
			out = append(out, Entrant{Swimmer: s, Team: t})
		}
	}
	return out
}

// RankEvent orders the entrants of d by time and awards points by place.
//
// Neighbours within TieTolerance are separated by comparing each team's
// popularity plus independent jitter; the later entrant moves ahead when its
// jittered popularity is higher. The pass runs once left to right, so a
// swimmer that loses a tie can keep sliding down a run of ties. Each
// comparison draws fresh jitter, which means 3-way ties are not guaranteed
// to resolve transitively.
func (m *Meet) RankEvent(d Discipline, entrants []Entrant) []Placing {
	var field []Placing
	for _, e := range entrants {
		t, ok := e.Swimmer.Times[d]
		if !ok || !e.Swimmer.HasEvent(d) {
			continue
		}
		field = append(field, Placing{Swimmer: e.Swimmer, Team: e.Team, Time: t})
	}
	sort.SliceStable(field, func(i, j int) bool { return field[i].Time < field[j].Time })

	for i := 1; i < len(field); i++ {
		if math.Abs(field[i].Time-field[i-1].Time) > m.cfg.TieTolerance {
			continue
		}
		ahead := field[i-1].Team.Popularity + m.jitter()
		behind := field[i].Team.Popularity + m.jitter()
		if behind > ahead {
			field[i-1], field[i] = field[i], field[i-1]
		}
	}

	for i := range field {
		field[i].Place = i + 1
		field[i].Points = PointsForPlace(i + 1)
	}
	return field
}

func (m *Meet) jitter() float64 {
	return (m.rng.Float64()*2 - 1) * m.cfg.TieJitter
}
