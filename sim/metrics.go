// Tracks per-season training outcomes such as:
// scores, budgets, roster sizes and the learner's current rates.

package sim

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// SeasonSummary is what one training season reports to the outside world.
type SeasonSummary struct {
	Season      int
	Scores      map[string]int
	Budgets     map[string]int
	RosterSizes map[string]int
	Standings   []string // team names, best first
	Signings    map[string]int
	Alpha       float64
	Epsilon     float64
}

// NewSeasonSummary snapshots the conference after a season's meet and advancement.
func NewSeasonSummary(season int, teams []*Team, result *MeetResult, signings map[string]int, alpha, epsilon float64) SeasonSummary {
	s := SeasonSummary{
		Season:      season,
		Scores:      make(map[string]int, len(teams)),
		Budgets:     make(map[string]int, len(teams)),
		RosterSizes: make(map[string]int, len(teams)),
		Signings:    make(map[string]int, len(teams)),
		Alpha:       alpha,
		Epsilon:     epsilon,
	}
	for _, t := range teams {
		s.Budgets[t.Name] = t.Budget
		s.RosterSizes[t.Name] = len(t.Roster)
		s.Signings[t.Name] = signings[t.Name]
		if result != nil {
			s.Scores[t.Name] = result.Totals[t.Name]
		}
	}
	if result != nil {
		for _, st := range result.Standings {
			s.Standings = append(s.Standings, st.Team.Name)
		}
	}
	return s
}

// Print writes a short human-readable report of the season.
func (s SeasonSummary) Print(w io.Writer, totalSeasons int) {
	fmt.Fprintf(w, "\nSeason %d/%d\n", s.Season, totalSeasons)
	standings := make([]string, 0, len(s.Standings))
	for _, name := range s.Standings {
		standings = append(standings, fmt.Sprintf("%s:%d", name, s.Scores[name]))
	}
	fmt.Fprintf(w, "Standings   : %s\n", strings.Join(standings, " "))
	rosters := make([]string, 0, len(s.Standings))
	for _, name := range s.Standings {
		rosters = append(rosters, fmt.Sprintf("%s:%d", name, s.RosterSizes[name]))
	}
	fmt.Fprintf(w, "Roster Sizes: %s\n", strings.Join(rosters, " "))
	fmt.Fprintf(w, "ε: %.3f α: %.3f\n", s.Epsilon, s.Alpha)
}

// History accumulates per-team series across seasons, for plotting or export.
type History struct {
	Seasons []int
	Teams   []string
	Scores  map[string][]int
	Budgets map[string][]int
	Rosters map[string][]int
}

// NewHistory creates an empty history for the named teams.
func NewHistory(teams []string) *History {
	h := &History{
		Teams:   append([]string(nil), teams...),
		Scores:  make(map[string][]int, len(teams)),
		Budgets: make(map[string][]int, len(teams)),
		Rosters: make(map[string][]int, len(teams)),
	}
	return h
}

// Record appends one season.
func (h *History) Record(s SeasonSummary) {
	h.Seasons = append(h.Seasons, s.Season)
	for _, name := range h.Teams {
		h.Scores[name] = append(h.Scores[name], s.Scores[name])
		h.Budgets[name] = append(h.Budgets[name], s.Budgets[name])
		h.Rosters[name] = append(h.Rosters[name], s.RosterSizes[name])
	}
}

// Len returns the number of recorded seasons.
func (h *History) Len() int {
	return len(h.Seasons)
}

// MeanScore averages a team's scores over the last window seasons
// (all seasons when window <= 0 or exceeds the history).
func (h *History) MeanScore(team string, window int) float64 {
	scores := h.Scores[team]
	if window > 0 && window < len(scores) {
		scores = scores[len(scores)-window:]
	}
	if len(scores) == 0 {
		return 0
	}
	xs := make([]float64, len(scores))
	for i, v := range scores {
		xs[i] = float64(v)
	}
	return stat.Mean(xs, nil)
}

// Winner returns the team with the best final-season score.
func (h *History) Winner() (string, int) {
	best, bestScore := "", -1
	for _, name := range h.Teams {
		scores := h.Scores[name]
		if len(scores) == 0 {
			continue
		}
		if last := scores[len(scores)-1]; last > bestScore {
			best, bestScore = name, last
		}
	}
	return best, bestScore
}
