package agent

import (
	"math/rand"

	"github.com/recruit-sim/recruit-sim/sim"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// placedSwimmer builds a one-event recruit with the given projected place.
func placedSwimmer(place, fit, years, ask int) *sim.Swimmer {
	s := &sim.Swimmer{
		Name:           "recruit",
		Events:         []sim.Discipline{"100 FR"},
		Times:          map[sim.Discipline]float64{"100 FR": 45.0},
		Placements:     map[sim.Discipline]int{},
		Scholarship:    ask,
		TeamFit:        fit,
		YearsRemaining: years,
		Potential:      1.0,
	}
	if place > 0 {
		s.Placements["100 FR"] = place
	}
	return s
}

func testAgentConfig() sim.AgentConfig {
	cfg := sim.DefaultAgentConfig()
	cfg.BatchSize = 4
	cfg.ReplayCapacity = 16
	return cfg
}
