package sim

// Discipline identifies a swimming event, e.g. "50 FR" or "200 IM".
type Discipline string

// TimeRange is the realistic span of recruit times for a discipline, in seconds.
type TimeRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Disciplines lists every scored event in meet order.
var Disciplines = []Discipline{
	"50 FR", "100 FR", "200 FR", "500 FR", "1650 FR",
	"100 FL", "200 FL", "100 BA", "200 BA",
	"100 BR", "200 BR", "200 IM", "400 IM",
}

// DefaultTimeRanges are short-course-yards recruit times per discipline.
// A benchmarks file (see LoadBenchmarks) may replace any of them.
var DefaultTimeRanges = map[Discipline]TimeRange{
	"50 FR":   {Min: 19.0, Max: 23.0},
	"100 FR":  {Min: 42.0, Max: 50.0},
	"200 FR":  {Min: 93.0, Max: 110.0},
	"500 FR":  {Min: 255.0, Max: 300.0},
	"1650 FR": {Min: 900.0, Max: 1040.0},
	"100 FL":  {Min: 46.0, Max: 55.0},
	"200 FL":  {Min: 102.0, Max: 120.0},
	"100 BA":  {Min: 46.0, Max: 56.0},
	"200 BA":  {Min: 101.0, Max: 120.0},
	"100 BR":  {Min: 52.0, Max: 62.0},
	"200 BR":  {Min: 114.0, Max: 135.0},
	"200 IM":  {Min: 104.0, Max: 122.0},
	"400 IM":  {Min: 225.0, Max: 265.0},
}

// disciplineWeights scales projected points per event. Sprints are weighted up
// because they also feed relays; distance events are weighted down.
var disciplineWeights = map[Discipline]float64{
	"50 FR":   1.2,
	"100 FR":  1.1,
	"200 FR":  1.0,
	"500 FR":  0.9,
	"1650 FR": 0.8,
	"100 FL":  1.05,
	"200 FL":  0.95,
	"100 BA":  1.05,
	"200 BA":  0.95,
	"100 BR":  1.05,
	"200 BR":  0.95,
	"200 IM":  1.0,
	"400 IM":  0.9,
}

// relayDisciplines feed the freestyle relays and take the relay multiplier.
var relayDisciplines = map[Discipline]bool{
	"50 FR":  true,
	"100 FR": true,
	"200 FR": true,
}

// DisciplineWeight returns the projection weight for d, 1.0 for unknown events.
func DisciplineWeight(d Discipline) float64 {
	if w, ok := disciplineWeights[d]; ok {
		return w
	}
	return 1.0
}

// MeetPoints is the NCAA-style championship table for places 1 through 16.
var MeetPoints = [16]int{20, 17, 16, 15, 14, 13, 12, 11, 9, 7, 6, 5, 4, 3, 2, 1}

// PointsForPlace returns meet points for a 1-based place; places outside 1–16 score zero.
func PointsForPlace(place int) int {
	if place < 1 || place > len(MeetPoints) {
		return 0
	}
	return MeetPoints[place-1]
}

// ProjectedPoints is the projection schedule used for recruit valuation:
// A-final (1–8) pays (9−p)×2, B-final (9–16) pays 17−p.
func ProjectedPoints(placement int) float64 {
	switch {
	case placement >= 1 && placement <= 8:
		return float64((9 - placement) * 2)
	case placement >= 9 && placement <= 16:
		return float64(17 - placement)
	default:
		return 0
	}
}
