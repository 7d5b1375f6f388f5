package sim

import "math/rand"

// testSwimmer builds a recruit contesting one discipline with the given time
// and projected placement (0 means unplaced).
func testSwimmer(name string, d Discipline, time float64, place int) *Swimmer {
	s := &Swimmer{
		Name:           name,
		Events:         []Discipline{d},
		Times:          map[Discipline]float64{d: time},
		Placements:     map[Discipline]int{},
		YearsRemaining: MaxYears,
		Potential:      1.0,
	}
	if place > 0 {
		s.Placements[d] = place
	}
	return s
}

// rosterOf returns a team holding the given swimmers at no committed cost.
func rosterOf(name string, popularity float64, swimmers ...*Swimmer) *Team {
	t := NewTeam(name, 100, popularity, StrategyMarket)
	for _, s := range swimmers {
		t.Roster = append(t.Roster, RosterEntry{Swimmer: s})
	}
	return t
}

func testRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
