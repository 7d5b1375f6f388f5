package sim

import "github.com/google/uuid"

// MaxEventsPerSwimmer caps how many disciplines one swimmer contests.
const MaxEventsPerSwimmer = 3

// MaxYears is the eligibility of an incoming freshman.
const MaxYears = 4

// yearlyImprovementRate is the base fraction a swimmer drops per year, scaled by Potential.
const yearlyImprovementRate = 0.02

// Swimmer is a recruit or rostered athlete.
//
// Swimmers are compared by pointer identity. Name is for display only and is
// not unique across a run.
type Swimmer struct {
	ID     uuid.UUID
	Name   string
	Events []Discipline

	// Times maps discipline → seconds. May be partial; a discipline without a
	// time is not entered at meets.
	Times map[Discipline]float64

	// Placements maps discipline → projected place 1–16. A missing key means
	// the swimmer does not project to score in that discipline.
	Placements map[Discipline]int

	Scholarship    int // requested minimum, in cost units
	TeamFit        int // compatibility in [-5,5]
	YearsRemaining int

	Potential  float64 // 0.8–1.2 multiplier on yearly improvement
	InjuryRisk float64 // probability of missing a meet
}

// ScoringOptions tunes ScoreContribution.
type ScoringOptions struct {
	// RelayMultiplier scales points in relay-feeding freestyle events.
	// 1.0 disables the relay bonus.
	RelayMultiplier float64
}

// DefaultScoringOptions has the relay bonus switched off.
var DefaultScoringOptions = ScoringOptions{RelayMultiplier: 1.0}

// ScoreContribution projects the swimmer's conference points with the default options.
func (s *Swimmer) ScoreContribution() float64 {
	return s.ScoreContributionWith(DefaultScoringOptions)
}

// ScoreContributionWith projects conference points from Placements.
// Each placed event earns its schedule points times the discipline weight,
// plus +3 for a projected win or +1.5 for a projected podium. The total is
// scaled by a consistency factor of 0.8 + (TeamFit+5)×0.04.
func (s *Swimmer) ScoreContributionWith(opts ScoringOptions) float64 {
	relay := opts.RelayMultiplier
	if relay <= 0 {
		relay = 1.0
	}
	total := 0.0
	for _, e := range s.Events {
		placement, ok := s.Placements[e]
		if !ok || placement < 1 || placement > 16 {
			continue
		}
		points := ProjectedPoints(placement) * DisciplineWeight(e)
		switch {
		case placement == 1:
			points += 3
		case placement <= 3:
			points += 1.5
		}
		if relayDisciplines[e] {
			points *= relay
		}
		total += points
	}
	return total * s.consistency()
}

// ScoringEvents counts events with a projected placement.
func (s *Swimmer) ScoringEvents() int {
	n := 0
	for _, e := range s.Events {
		if p, ok := s.Placements[e]; ok && p >= 1 && p <= 16 {
			n++
		}
	}
	return n
}

// consistency maps TeamFit in [-5,5] onto [0.8,1.2].
func (s *Swimmer) consistency() float64 {
	fit := s.TeamFit
	if fit < -5 {
		fit = -5
	}
	if fit > 5 {
		fit = 5
	}
	return 0.8 + float64(fit+5)*0.04
}

// HasEvent reports whether the swimmer contests d.
func (s *Swimmer) HasEvent(d Discipline) bool {
	for _, e := range s.Events {
		if e == d {
			return true
		}
	}
	return false
}

// DecrementYear counts one season off eligibility, never below zero.
// Returns true while the swimmer still has eligibility left.
func (s *Swimmer) DecrementYear() bool {
	if s.YearsRemaining > 0 {
		s.YearsRemaining--
	}
	return s.YearsRemaining > 0
}

// Improve lowers every recorded time by 2%×Potential.
func (s *Swimmer) Improve() {
	for d, t := range s.Times {
		s.Times[d] = t * (1 - yearlyImprovementRate*s.Potential)
	}
}
