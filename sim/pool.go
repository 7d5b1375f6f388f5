package sim

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// ScholarshipLevels are the discrete scholarship amounts, in cost units.
// Recruits ask for one of them and bidders offer one of them.
var ScholarshipLevels = []int{0, 10, 20, 30, 40, 50}

// DefaultPlacementProbability is the chance a recruit projects to place in a given event.
const DefaultPlacementProbability = 0.6

// placementWeights front-load the projected-placement draw: place 1 is
// sixteen times likelier than place 16.
var placementWeights = func() []float64 {
	w := make([]float64, 16)
	for i := range w {
		w[i] = float64(16 - i)
	}
	return w
}()

// RecruitGenerator draws random recruits.
type RecruitGenerator struct {
	rng                  *rand.Rand
	timeRanges           map[Discipline]TimeRange
	placementProbability float64
	seq                  int
}

// NewRecruitGenerator creates a generator. Disciplines missing from timeRanges
// fall back to DefaultTimeRanges.
func NewRecruitGenerator(rng *rand.Rand, timeRanges map[Discipline]TimeRange, placementProbability float64) *RecruitGenerator {
	ranges := make(map[Discipline]TimeRange, len(DefaultTimeRanges))
	for d, r := range DefaultTimeRanges {
		ranges[d] = r
	}
	for d, r := range timeRanges {
		ranges[d] = r
	}
	return &RecruitGenerator{
		rng:                  rng,
		timeRanges:           ranges,
		placementProbability: placementProbability,
	}
}

// Next draws one recruit.
func (g *RecruitGenerator) Next() *Swimmer {
	g.seq++
	k := 1 + g.rng.Intn(MaxEventsPerSwimmer)
	idx := g.rng.Perm(len(Disciplines))[:k]
	sort.Ints(idx)

	s := &Swimmer{
		ID:         uuid.Must(uuid.NewRandomFromReader(g.rng)),
		Name:       fmt.Sprintf("Recruit %d", g.seq),
		Events:     make([]Discipline, 0, k),
		Times:      make(map[Discipline]float64, k),
		Placements: make(map[Discipline]int, k),
	}
	for _, i := range idx {
		d := Disciplines[i]
		s.Events = append(s.Events, d)
		r := g.timeRanges[d]
		s.Times[d] = math.Round((r.Min+g.rng.Float64()*(r.Max-r.Min))*100) / 100
		if g.rng.Float64() < g.placementProbability {
			s.Placements[d] = g.drawPlacement()
		}
	}
	s.Scholarship = ScholarshipLevels[g.rng.Intn(len(ScholarshipLevels))]
	s.TeamFit = g.rng.Intn(11) - 5
	s.YearsRemaining = 1 + g.rng.Intn(MaxYears)
	s.Potential = 0.8 + g.rng.Float64()*0.4
	s.InjuryRisk = g.rng.Float64() * 0.1
	return s
}

func (g *RecruitGenerator) drawPlacement() int {
	i, ok := sampleuv.NewWeighted(placementWeights, SourceOf(g.rng)).Take()
	if !ok {
		return 16
	}
	return i + 1
}

// RecruitPool holds the current season's unsigned recruits.
// Unclaimed recruits do not carry over: Replenish discards the whole pool.
type RecruitPool struct {
	gen      *RecruitGenerator
	recruits []*Swimmer
}

// NewRecruitPool creates a pool and fills it with size recruits.
func NewRecruitPool(gen *RecruitGenerator, size int) *RecruitPool {
	p := &RecruitPool{gen: gen}
	p.Generate(size)
	return p
}

// Generate replaces the pool with size fresh recruits.
func (p *RecruitPool) Generate(size int) {
	p.recruits = make([]*Swimmer, 0, size)
	for i := 0; i < size; i++ {
		p.recruits = append(p.recruits, p.gen.Next())
	}
}

// Replenish discards every remaining recruit and regenerates the pool.
func (p *RecruitPool) Replenish(size int) {
	p.Generate(size)
}

// Recruits returns a copy of the available recruits.
func (p *RecruitPool) Recruits() []*Swimmer {
	out := make([]*Swimmer, len(p.recruits))
	copy(out, p.recruits)
	return out
}

// Len returns the number of available recruits.
func (p *RecruitPool) Len() int {
	return len(p.recruits)
}

// Contains reports whether s is still available.
func (p *RecruitPool) Contains(s *Swimmer) bool {
	for _, r := range p.recruits {
		if r == s {
			return true
		}
	}
	return false
}

// Remove drops s from the pool. Removing an absent swimmer is a no-op.
func (p *RecruitPool) Remove(s *Swimmer) {
	for i, r := range p.recruits {
		if r == s {
			p.recruits = append(p.recruits[:i], p.recruits[i+1:]...)
			return
		}
	}
}
