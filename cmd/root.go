package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/recruit-sim/recruit-sim/sim"
	"github.com/recruit-sim/recruit-sim/sim/agent"
	"github.com/recruit-sim/recruit-sim/sim/history"
	"github.com/recruit-sim/recruit-sim/sim/telemetry"
	"github.com/recruit-sim/recruit-sim/sim/trace"
)

var (
	configPath     string   // YAML config file; RECRUITSIM_CONFIG when unset
	logLevel       string   // Log verbosity level
	seed           int64    // Seed for every random draw in the run
	seasons        int      // Number of training seasons
	poolSize       int      // Recruits generated each season
	teamNames      []string // Conference team names
	teamBudgets    []int    // Starting budgets, parallel to teamNames
	teamStrategies []string // Team strategies, parallel to teamNames
	alpha          float64  // Initial learning rate
	gamma          float64  // Discount factor
	epsilon        float64  // Initial exploration rate
	benchmarksFile string   // YAML recruit time ranges per discipline

	metricsOut   string // Prometheus textfile written after training
	historyDB    string // SQLite file receiving the season summaries
	traceLevel   string // Decision trace level
	showProgress bool   // Live progress line while training
	seasonReport bool   // Print every season's summary
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "recruit-sim",
	Short: "Recruiting-market simulator for collegiate swimming with SARSA-trained programs",
}

// trainCmd runs the training loop using the resolved configuration
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the recruiting agent over a number of seasons",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q; valid: none, decisions", traceLevel)
		}

		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		trainer, err := agent.NewTrainer(cfg)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if traceLevel != string(trace.TraceLevelNone) {
			trainer.Trace = trace.NewDecisionTrace(trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		}
		recorder := telemetry.NewRecorder(telemetry.OptionsFrom(cfg.Telemetry)...)
		trainer.AddObserver(recorder)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logrus.Infof("Training %d teams for %d seasons (seed %d, pool %d)", len(cfg.Teams), cfg.Seasons, cfg.Seed, cfg.PoolSize)

		var progress *progressLine
		if showProgress {
			progress = newProgressLine(os.Stdout, trainer, cfg.Seasons)
			progress.Start(ctx)
		}
		summaries, err := trainer.Train(ctx, cfg.Seasons)
		if progress != nil {
			progress.Stop()
		}
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				logrus.Fatalf("Training failed: %v", err)
			}
			logrus.Warnf("Training interrupted after %d of %d seasons", len(summaries), cfg.Seasons)
		}

		won := titles(trainer.History())
		if historyDB != "" {
			champions, err := saveHistory(context.Background(), historyDB, trainer, cfg.Seasons, summaries)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			won = champions
			logrus.Infof("Season history written to %s", historyDB)
		}

		out := cmd.OutOrStdout()
		if seasonReport {
			for _, s := range summaries {
				s.Print(out, cfg.Seasons)
			}
		}
		writeReport(out, trainer, won)
		if trainer.Trace.Enabled() {
			writeTraceReport(out, trace.Summarize(trainer.Trace))
		}

		if metricsOut != "" {
			if err := recorder.WriteTextfile(metricsOut); err != nil {
				logrus.Fatalf("%v", err)
			}
			logrus.Infof("Metrics written to %s", metricsOut)
		}
	},
}

// applyFlagOverrides copies every explicitly set flag onto cfg, so unset
// flags never clobber values from the config file or environment.
func applyFlagOverrides(cmd *cobra.Command, cfg *sim.Config) error {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("seasons") {
		cfg.Seasons = seasons
	}
	if flags.Changed("pool-size") {
		cfg.PoolSize = poolSize
	}
	if flags.Changed("alpha") {
		cfg.Agent.Alpha = alpha
	}
	if flags.Changed("gamma") {
		cfg.Agent.Gamma = gamma
	}
	if flags.Changed("epsilon") {
		cfg.Agent.Epsilon = epsilon
	}
	if flags.Changed("benchmarks") {
		cfg.BenchmarksFile = benchmarksFile
	}
	if flags.Changed("teams") || flags.Changed("budgets") || flags.Changed("strategies") {
		teams, err := sim.TeamsFromLists(teamNames, teamBudgets, teamStrategies)
		if err != nil {
			return fmt.Errorf("team flags: %w", err)
		}
		cfg.Teams = teams
	}
	return nil
}

// saveHistory records the run under the conference's simulation key and
// returns the title counts as stored.
func saveHistory(ctx context.Context, path string, trainer *agent.Trainer, seasons int, summaries []sim.SeasonSummary) (map[string]int, error) {
	store, err := history.Open(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	runID, err := store.BeginRun(ctx, int64(trainer.Conference.RNG.Key()), seasons)
	if err != nil {
		return nil, err
	}
	if err := store.SaveSeasons(ctx, runID, summaries); err != nil {
		return nil, err
	}
	return store.Champions(ctx, runID)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerConfigFlags binds the flags that override configuration fields.
func registerConfigFlags(c *cobra.Command) {
	defaults := sim.DefaultConfig()
	c.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for every random draw in the run")
	c.Flags().IntVar(&seasons, "seasons", defaults.Seasons, "Number of training seasons")
	c.Flags().IntVar(&poolSize, "pool-size", defaults.PoolSize, "Recruits generated each season")
	c.Flags().StringSliceVar(&teamNames, "teams", nil, "Conference team names (replaces the configured teams)")
	c.Flags().IntSliceVar(&teamBudgets, "budgets", nil, "Starting budget per team, parallel to --teams")
	c.Flags().StringSliceVar(&teamStrategies, "strategies", nil, "Strategy per team: sarsa, max-bid, random-bid or market")
	c.Flags().Float64Var(&alpha, "alpha", defaults.Agent.Alpha, "Initial learning rate")
	c.Flags().Float64Var(&gamma, "gamma", defaults.Agent.Gamma, "Discount factor")
	c.Flags().Float64Var(&epsilon, "epsilon", defaults.Agent.Epsilon, "Initial exploration rate")
	c.Flags().StringVar(&benchmarksFile, "benchmarks", "", "YAML file of recruit time ranges per discipline")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (defaults to $RECRUITSIM_CONFIG)")
	registerConfigFlags(trainCmd)
	registerConfigFlags(configCmd)

	trainCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	trainCmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write Prometheus text-format metrics to this file after training")
	trainCmd.Flags().StringVar(&historyDB, "history-db", "", "Append season summaries to this SQLite database")
	trainCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Decision trace level: none or decisions")
	trainCmd.Flags().BoolVar(&showProgress, "progress", false, "Show a live progress line while training")
	trainCmd.Flags().BoolVar(&seasonReport, "season-report", false, "Print a summary after every season")

	runsCmd.Flags().StringVar(&historyDB, "history-db", "", "SQLite database written by train --history-db")
	runsCmd.Flags().StringVar(&runID, "run", "", "Run ID whose team series to print")
	runsCmd.Flags().StringVar(&runTeam, "team", "", "Team whose series to print (requires --run)")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(runsCmd)
}
