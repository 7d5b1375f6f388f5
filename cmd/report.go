package cmd

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/recruit-sim/recruit-sim/sim"
	"github.com/recruit-sim/recruit-sim/sim/agent"
	"github.com/recruit-sim/recruit-sim/sim/trace"
)

// budgetUnit is the dollar value of one budget point.
const budgetUnit = 10_000

// recentWindow is how many trailing seasons the report averages over.
const recentWindow = 20

// formatBudget renders budget points as whole dollars, e.g. 500 -> "$5,000,000".
func formatBudget(points int) string {
	return "$" + humanize.Comma(int64(points)*budgetUnit)
}

// titles counts the seasons each team finished first.
func titles(h *sim.History) map[string]int {
	out := make(map[string]int, len(h.Teams))
	for i := range h.Seasons {
		best, bestScore := "", -1
		for _, name := range h.Teams {
			if score := h.Scores[name][i]; score > bestScore {
				best, bestScore = name, score
			}
		}
		if best != "" {
			out[best]++
		}
	}
	return out
}

// writeReport prints the end-of-training table: one row per team, best
// final standing first. won holds each team's title count.
func writeReport(w io.Writer, trainer *agent.Trainer, won map[string]int) {
	h := trainer.History()
	teams := make([]*sim.Team, 0, len(h.Teams))
	for _, name := range h.Teams {
		if t := trainer.Conference.Team(name); t != nil {
			teams = append(teams, t)
		}
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return standingKey(teams[i]) < standingKey(teams[j])
	})

	fmt.Fprintf(w, "\n=== Training Report: %d seasons ===\n", h.Len())
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Team\tStrategy\tLast Score\tMean (last 20)\tTitles\tBudget\tCommitted\tRoster\tPopularity")
	for _, t := range teams {
		last, _ := t.LastScore()
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f\t%d\t%s\t%s\t%d\t%.0f\n",
			t.Name, t.Strategy, last, h.MeanScore(t.Name, recentWindow), won[t.Name],
			formatBudget(t.Budget), formatBudget(t.CommittedTotal()), len(t.Roster), t.Popularity)
	}
	tw.Flush()

	if winner, score := h.Winner(); winner != "" {
		fmt.Fprintf(w, "Final champion: %s (%d points)\n", winner, score)
	}
	fmt.Fprintf(w, "Learner: ε=%.3f α=%.3f states=%s replay=%d\n",
		trainer.Agent.Epsilon(), trainer.Agent.Alpha(),
		humanize.Comma(int64(trainer.Agent.TableSize())), trainer.Agent.ReplayLen())
}

// standingKey orders teams by last meet finish, unplaced teams last.
func standingKey(t *sim.Team) int {
	if t.LastStanding <= 0 {
		return math.MaxInt
	}
	return t.LastStanding
}

func writeTraceReport(w io.Writer, ts *trace.TraceSummary) {
	if ts == nil {
		return
	}
	fmt.Fprintf(w, "\n=== Decision Trace ===\n")
	fmt.Fprintf(w, "Decisions: %d (zero bids %.1f%%, explored %d, signed %d)\n",
		ts.TotalDecisions, 100*ts.ZeroBidFraction(), ts.ExploredBids, ts.SignedBids)
	fmt.Fprintf(w, "Mean reward: %.2f\n", ts.MeanReward)
	fmt.Fprintf(w, "Market signings: %d (overrides %d)\n", ts.MarketSignings, ts.MarketOverrides)

	names := make([]string, 0, len(ts.PerTeam))
	for name := range ts.PerTeam {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		td := ts.PerTeam[name]
		fmt.Fprintf(w, "  %s: %d decisions, %.1f%% zero bids, %d signed\n",
			name, td.Decisions, 100*td.ZeroBidFraction(), td.Signed)
	}
}
