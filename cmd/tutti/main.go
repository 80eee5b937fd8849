package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/opal-lang/tutti/core/catalog"
	"github.com/opal-lang/tutti/internal/config"
	"github.com/opal-lang/tutti/internal/logging"
	"github.com/opal-lang/tutti/runtime/engine"
)

func main() {
	a, rootCmd := newApp()
	if err := a.execute(rootCmd); err != nil {
		FormatError(os.Stderr, err, ShouldUseColor(false, os.Stderr))
		os.Exit(1)
	}
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	catalog    string
	catalogDB  string
	debug      bool
	noColor    bool
	strict     bool

	cfg    *config.Config
	logger *zap.Logger
	cat    engine.Catalog
	live   *catalog.Live
}

// newApp returns the root command together with the app whose resources
// its setup opens.
func newApp() (*app, *cobra.Command) {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "tutti",
		Short:         "Parse and format instrumentation notation",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to tutti.yaml")
	rootCmd.PersistentFlags().StringVar(&a.catalog, "catalog", "", "Instrument catalog document (YAML)")
	rootCmd.PersistentFlags().StringVar(&a.catalogDB, "catalog-db", "", "SQLite database holding the instrument tables")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&a.strict, "strict", false, "Fail on the first unrecognized instrument")

	rootCmd.AddCommand(
		a.formatCmd(),
		a.sectionsCmd(),
		a.diffCmd(),
		a.normalizeCmd(),
		a.catalogCmd(),
	)
	return a, rootCmd
}

// execute runs rootCmd and releases what setup opened, also when the
// command fails.
func (a *app) execute(rootCmd *cobra.Command) error {
	defer a.teardown()
	return rootCmd.Execute()
}

func (a *app) setup(ctx context.Context) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.catalog != "" {
		cfg.Catalog.Path = a.catalog
	}
	if a.catalogDB != "" {
		cfg.Catalog.Database = a.catalogDB
	}
	if a.debug {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}
	if err := cfg.Validate(); err != nil {
		return &CLIError{Type: "config", Message: "invalid configuration", Details: err.Error()}
	}
	a.cfg = cfg

	a.logger, err = logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	a.cat, err = a.openCatalog(ctx)
	return err
}

func (a *app) openCatalog(ctx context.Context) (engine.Catalog, error) {
	switch {
	case a.cfg.Catalog.Database != "":
		db, err := sql.Open("sqlite", a.cfg.Catalog.Database)
		if err != nil {
			return nil, fmt.Errorf("open catalog database: %w", err)
		}
		defer func() { _ = db.Close() }()
		return catalog.LoadSQL(ctx, db)

	case a.cfg.Catalog.Path != "":
		c, err := catalog.LoadFile(a.cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
		if !a.cfg.Catalog.Watch {
			return c, nil
		}
		a.live = catalog.NewLive(c, a.logger)
		if err := a.live.Watch(ctx, a.cfg.Catalog.Path); err != nil {
			return nil, err
		}
		return a.live, nil

	default:
		a.logger.Debug("using built-in catalog")
		return catalog.Standard(), nil
	}
}

func (a *app) teardown() {
	if a.live != nil {
		if err := a.live.Close(); err != nil {
			a.logger.Warn("stop catalog watch", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) newEngine() *engine.Engine {
	return engine.New(a.cat,
		engine.WithLogger(a.logger),
		engine.WithMaxCount(a.cfg.Limits.MaxCount),
		engine.WithSuggestions(a.cfg.Suggestions),
		engine.WithSeparateDoublings(a.cfg.Format.SeparateDoublings),
	)
}

func (a *app) callOptions(extra ...engine.CallOption) []engine.CallOption {
	if a.strict {
		extra = append(extra, engine.Strict())
	}
	return extra
}

func (a *app) useColor(w io.Writer) bool {
	return ShouldUseColor(a.noColor, w)
}
