package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cognicore/revtrend/internal/logging"
	"github.com/cognicore/revtrend/pkg/revtrend"
	"github.com/cognicore/revtrend/pkg/revtrend/config"
	"github.com/cognicore/revtrend/pkg/revtrend/store"
	"github.com/cognicore/revtrend/pkg/revtrend/store/sqlite"
)

// app is the state shared by subcommands once the root has loaded settings.
type app struct {
	configPath string
	envPath    string
	logLevel   string
	language   string
	dbPath     string
	parallel   int
	artifacts  config.Artifacts

	settings config.Settings
	logger   *log.Logger
	stderr   io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{stderr: os.Stderr}

	root := &cobra.Command{
		Use:   "revtrend",
		Short: "Extract recurring trends from customer reviews",
		Long: `revtrend classifies customer reviews by sentiment, extracts the phrases
each sentiment class keeps coming back to and writes a short digest per class.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML run settings")
	flags.StringVar(&a.envPath, "env", ".env", "dotenv file with API keys")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.language, "lang", "", "review language: fr or en")
	flags.StringVar(&a.dbPath, "db", "", "sqlite run archive and embedding cache")
	flags.IntVar(&a.parallel, "parallel", 0, "partitions and calls processed at once")
	flags.StringVar(&a.artifacts.Synonyms, "synonyms", "", "JSON synonym map")
	flags.StringVar(&a.artifacts.Replacements, "replacements", "", "JSON replacement map")
	flags.StringVar(&a.artifacts.Blacklist, "blacklist", "", "JSON phrase blacklist")

	root.AddCommand(newClassifyCmd(a))
	root.AddCommand(newTrendsCmd(a))
	root.AddCommand(newRunCmd(a))
	root.AddCommand(newRunsCmd(a))
	return root
}

// setup layers settings: defaults, run file, environment, then flags.
func (a *app) setup(cmd *cobra.Command) error {
	s := config.DefaultSettings()
	if a.configPath != "" {
		var err error
		if s, err = config.LoadSettings(a.configPath); err != nil {
			return err
		}
	}
	if err := config.LoadEnv(a.envPath, &s); err != nil {
		return err
	}
	if a.logLevel != "" {
		s.LogLevel = a.logLevel
	}
	if a.language != "" {
		s.Language = a.language
	}
	if a.parallel > 0 {
		s.Parallel = a.parallel
	}
	if a.artifacts.Synonyms != "" {
		s.Artifacts.Synonyms = a.artifacts.Synonyms
	}
	if a.artifacts.Replacements != "" {
		s.Artifacts.Replacements = a.artifacts.Replacements
	}
	if a.artifacts.Blacklist != "" {
		s.Artifacts.Blacklist = a.artifacts.Blacklist
	}

	logger, err := logging.New(s.LogLevel, a.stderr)
	if err != nil {
		return err
	}
	a.settings = s
	a.logger = logger
	return nil
}

// openStore opens the run archive when --db is set; it returns nil otherwise.
func (a *app) openStore(ctx context.Context) (store.Store, error) {
	if a.dbPath == "" {
		return nil, nil
	}
	st, err := sqlite.OpenSQLite(ctx, a.dbPath)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", a.dbPath, err)
	}
	return st, nil
}

// engine loads the configuration artifacts and wires the pipeline.
func (a *app) engine(ctx context.Context) (*revtrend.Engine, error) {
	if err := a.settings.Validate(); err != nil {
		return nil, err
	}
	comps, err := config.NewLoader(a.settings).Load()
	if err != nil {
		return nil, err
	}
	st, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	e, err := revtrend.FromSettings(a.settings, comps, st, a.logger)
	if err != nil {
		if st != nil {
			st.Close()
		}
		return nil, err
	}
	return e, nil
}

// output opens path for writing, or returns stdout when path is empty.
func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
