package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/recruit-sim/recruit-sim/sim/history"
)

var (
	runID   string // Run to inspect
	runTeam string // Team whose series to print
)

// runsCmd lists the runs stored in a history database, or one team's
// season series within a run.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect training runs saved with --history-db",
	Run: func(cmd *cobra.Command, args []string) {
		if historyDB == "" {
			logrus.Fatalf("--history-db is required")
		}
		store, err := history.Open(historyDB)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		defer store.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		out := cmd.OutOrStdout()
		if runTeam != "" {
			if runID == "" {
				logrus.Fatalf("--team requires --run")
			}
			err = writeTeamSeries(ctx, out, store, runID, runTeam)
		} else {
			err = writeRuns(ctx, out, store)
		}
		if err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func writeRuns(ctx context.Context, w io.Writer, store *history.Store) error {
	runs, err := store.Runs(ctx)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Run\tSeed\tSeasons\tStarted\tMost Titles")
	for _, r := range runs {
		champions, err := store.Champions(ctx, r.ID)
		if err != nil {
			return fmt.Errorf("champions for run %s: %w", r.ID, err)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", r.ID, r.Seed, r.Seasons, r.StartedAt, topChampion(champions))
	}
	return tw.Flush()
}

// topChampion renders the team with the most titles, ties broken by name.
func topChampion(champions map[string]int) string {
	if len(champions) == 0 {
		return "-"
	}
	names := make([]string, 0, len(champions))
	for name := range champions {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if champions[names[i]] != champions[names[j]] {
			return champions[names[i]] > champions[names[j]]
		}
		return names[i] < names[j]
	})
	return fmt.Sprintf("%s (%d)", names[0], champions[names[0]])
}

func writeTeamSeries(ctx context.Context, w io.Writer, store *history.Store, run, team string) error {
	rows, err := store.TeamSeries(ctx, run, team)
	if err != nil {
		return fmt.Errorf("series for %s in run %s: %w", team, run, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no seasons for %s in run %s", team, run)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Season\tStanding\tScore\tBudget\tRoster\tSignings")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%d\t%d\n",
			r.Season, humanize.Ordinal(r.Standing), r.Score, formatBudget(r.Budget), r.RosterSize, r.Signings)
	}
	return tw.Flush()
}
