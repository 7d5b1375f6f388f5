package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/recruit-sim/recruit-sim/sim"
)

// EnvPrefix marks environment variables that override configuration.
// Nested keys use a double underscore: RECRUITSIM_AGENT__EPSILON=0.2.
const EnvPrefix = "RECRUITSIM_"

// defaultTeamPopularity applies to file-defined teams that omit popularity.
const defaultTeamPopularity = 50.0

// teamEntry mirrors sim.TeamConfig with optional fields left nil when absent.
type teamEntry struct {
	Name       string   `koanf:"name"`
	Budget     int      `koanf:"budget"`
	Popularity *float64 `koanf:"popularity"`
	Strategy   string   `koanf:"strategy"`
}

// LoadConfig builds a sim.Config by layering, low to high precedence:
//  1. sim.DefaultConfig()
//  2. the YAML file at path, when path is non-empty
//  3. RECRUITSIM_* environment variables
//
// A teams list in the file replaces the default conference; teams that omit
// popularity start at 50 and teams that omit strategy bid through the market.
// The result is not validated; callers run Validate (NewTrainer does).
func LoadConfig(path string) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return cfg, fmt.Errorf("loading environment: %w", err)
	}

	if k.Exists("teams") {
		var entries []teamEntry
		if err := k.UnmarshalWithConf("teams", &entries, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
			return cfg, fmt.Errorf("decoding teams: %w", err)
		}
		cfg.Teams = make([]sim.TeamConfig, len(entries))
		for i, e := range entries {
			cfg.Teams[i] = e.toTeamConfig()
		}
		k.Delete("teams")
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func (e teamEntry) toTeamConfig() sim.TeamConfig {
	tc := sim.TeamConfig{
		Name:       e.Name,
		Budget:     e.Budget,
		Popularity: defaultTeamPopularity,
		Strategy:   e.Strategy,
	}
	if e.Popularity != nil {
		tc.Popularity = *e.Popularity
	}
	if tc.Strategy == "" {
		tc.Strategy = sim.StrategyMarket
	}
	return tc
}

// configCmd prints the fully resolved configuration as YAML.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved training configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := writeConfigYAML(cmd.OutOrStdout(), cfg); err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := cfg.Validate(); err != nil {
			logrus.Warnf("configuration will be rejected by train: %v", err)
		}
	},
}

func writeConfigYAML(w io.Writer, cfg sim.Config) error {
	enc := yamlv3.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

// resolveConfig loads the configuration train and config both run with:
// the --config file (or RECRUITSIM_CONFIG), the environment, then flags.
func resolveConfig(cmd *cobra.Command) (sim.Config, error) {
	cfg, err := LoadConfig(resolvedConfigPath())
	if err != nil {
		return cfg, err
	}
	if err := applyFlagOverrides(cmd, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return configFromEnvPath()
}

// configFromEnvPath returns the config path named by RECRUITSIM_CONFIG, if any.
func configFromEnvPath() string {
	return os.Getenv(EnvPrefix + "CONFIG")
}
