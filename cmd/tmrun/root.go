package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	tm "github.com/comalice/turingmachines"
	"github.com/comalice/turingmachines/internal/logger"
	"github.com/comalice/turingmachines/internal/production"
	"github.com/comalice/turingmachines/internal/runstore"
)

// app carries the settings shared by every subcommand.
type app struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "tmrun",
		Short: "Build, inspect and replay Turing machines",
		Long: `tmrun loads a Turing machine definition (YAML or JSON), searches for an
accepting run and prints or animates it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.initConfig()
		},
		Version: version,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file [default: ./tmrun.yaml]")
	flags.String("log-level", "", "Set log level (debug|info|warn|error) [default: warn]")
	flags.String("log-file", "", "Write logs to file instead of stderr")
	flags.Int("max-search", tm.DefaultMaximumNonDeterministicSearch, "Maximum configurations examined per build")
	flags.String("store", "sqlite", "Run history backend (memory|sqlite)")
	flags.String("store-path", "tmrun.db", "SQLite database for run history")
	flags.String("library", "machines", "Directory of exported machine definitions")
	for _, name := range []string{"config", "log-level", "log-file", "max-search", "store", "store-path", "library"} {
		if err := a.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding %s flag: %v", name, err))
		}
	}

	rootCmd.AddCommand(
		newRunCmd(a),
		newCheckCmd(a),
		newDotCmd(a),
		newPlayCmd(a),
		newHistoryCmd(a),
		newExportCmd(a),
	)
	return rootCmd
}

func (a *app) initConfig() error {
	a.v.SetEnvPrefix("TMRUN")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if file := a.v.GetString("config"); file != "" {
		a.v.SetConfigFile(file)
	} else {
		a.v.SetConfigName("tmrun")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	if err := logger.Configure(a.v.GetString("log-level"), a.v.GetString("log-file")); err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	return nil
}

// loadMachine builds the machine described by a definition file or, when no
// such file exists, by the library entry with that machine id.
func (a *app) loadMachine(ctx context.Context, ref string) (*tm.TuringMachine, error) {
	var def tm.Definition
	_, err := os.Stat(ref)
	switch {
	case err == nil:
		def, err = production.LoadFile(ref)
	case errors.Is(err, os.ErrNotExist):
		def, err = a.loadFromLibrary(ctx, ref)
	}
	if err != nil {
		return nil, err
	}
	return tm.NewFromDefinition(def,
		tm.WithLogger(logger.Logger.WithPrefix("turingmachines")),
		tm.WithMaximumNonDeterministicSearch(a.v.GetInt("max-search")),
	)
}

// persister returns the library persister for format (yaml or json).
func (a *app) persister(format string) (production.Persister, error) {
	dir := a.v.GetString("library")
	switch format {
	case "yaml", "yml":
		return production.NewYAMLPersister(dir)
	case "json":
		return production.NewJSONPersister(dir)
	}
	return nil, fmt.Errorf("unknown definition format %q (yaml|json)", format)
}

func (a *app) loadFromLibrary(ctx context.Context, machineID string) (tm.Definition, error) {
	dir := a.v.GetString("library")
	if _, err := os.Stat(dir); err != nil {
		return tm.Definition{}, fmt.Errorf("machine %q: no such file and no library at %s: %w", machineID, dir, os.ErrNotExist)
	}
	for _, format := range []string{"yaml", "json"} {
		p, err := a.persister(format)
		if err != nil {
			return tm.Definition{}, err
		}
		def, err := p.Load(ctx, machineID)
		if err == nil {
			logger.Debug("loaded from library", "machine", machineID, "format", format)
			return def, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return tm.Definition{}, err
		}
	}
	return tm.Definition{}, fmt.Errorf("machine %q not found in %s: %w", machineID, filepath.Clean(dir), os.ErrNotExist)
}

// build runs the search, cancelling it on interrupt.
func (a *app) build(ctx context.Context, m *tm.TuringMachine) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	logger.Info("building", "machine", m.ID(), "max-search", m.MaximumNonDeterministicSearch())
	return m.Build(ctx)
}

// openStore returns an initialised run store; callers close it with
// runstore.CloseIfSupported.
func (a *app) openStore(ctx context.Context) (runstore.Store, error) {
	store, err := runstore.NewStore(a.v.GetString("store"), a.v.GetString("store-path"))
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("opening run store: %w", err)
	}
	return store, nil
}
