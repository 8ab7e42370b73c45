package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/denisok6893-rgb/property-compare/internal/config"
	"github.com/denisok6893-rgb/property-compare/internal/logger"
)

var version = "dev"

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out}

	root := &cobra.Command{
		Use:   "propcompare",
		Short: "Score, filter and rank candidate properties",
		Long: `propcompare scores property listings with a weighted points/cost model,
aggregates commute times and orders the result by the selected sort key.

Data comes from dataset files (JSON or YAML, globs allowed) or from a
read-only SQLite snapshot of the upstream tables. Running without a
subcommand is the same as "propcompare rank".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(cmd, a)
		},
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Config file (default .propcompare.yaml in the working directory)")
	flags.StringP("dataset", "d", "", "Dataset file or glob (JSON or YAML)")
	flags.String("snapshot", "", "SQLite snapshot of the upstream tables")
	flags.Int64("project", 0, "Project id to read from the snapshot")
	flags.StringP("profile", "p", "", "Weight profile YAML")
	flags.StringP("search", "s", "", "Case-insensitive title search")
	flags.String("filter", "all", "all|completed|awaitingInfo|viewingBooked|offerMade|likedBy:<user>")
	flags.String("sort", "highestScore", "recentlyAdded|highestScore|lowestCost|highestPoints|sqrMtrCost|commuteAnalysis")
	flags.StringP("format", "f", "console", "Output format (console|json)")
	flags.IntP("limit", "n", 0, "Show at most n rows (0 for all)")
	flags.String("log-level", "warn", "Log level (debug|info|warn|error)")
	flags.String("log-format", "console", "Log format (console|json)")

	for key, flag := range map[string]string{
		"dataset":    "dataset",
		"snapshot":   "snapshot",
		"project":    "project",
		"profile":    "profile",
		"search":     "search",
		"filter":     "filter",
		"sort":       "sort",
		"format":     "format",
		"limit":      "limit",
		"log_level":  "log-level",
		"log_format": "log-format",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(rankCmd(a))
	root.AddCommand(explainCmd(a))
	root.AddCommand(commuteCmd(a))
	root.AddCommand(completenessCmd(a))
	root.AddCommand(viewingsCmd(a))
	root.AddCommand(fieldsCmd(a))
	root.AddCommand(versionCmd())
	return root
}

func (a *app) setup() error {
	cfg, err := config.LoadConfig(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, err := logger.NewStructured(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.log = log
	if cfg.ConfigFile != "" {
		a.log.Debug("using config file", map[string]interface{}{"path": cfg.ConfigFile})
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
