// Package cmd implements the finmate CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/theirongolddev/finmate/internal/config"
	"github.com/theirongolddev/finmate/internal/ledger"
	"github.com/theirongolddev/finmate/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagQuiet   bool
)

var (
	cfg config.Config
	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:               "finmate",
	Short:             "Weekly budget tracker with a rule-based assistant",
	Long:              "Set a weekly budget, log spending by category, and ask the assistant what you can afford.",
	PersistentPreRunE: setup,
	RunE:              runStatus,
	SilenceUsage:      true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// setup loads .env and config, resolves the data directory and starts logging.
func setup(_ *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: %v\n", err)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if flagDataDir == "" {
		flagDataDir = cfg.DataDir()
	}

	setupLogging()
	return nil
}

// setupLogging sends JSON logs to the log file so the terminal stays clean.
func setupLogging() {
	log.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	path := cfg.LogFile(flagDataDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		log.SetOutput(io.Discard)
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // path from config
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(f)
}

func dbPath() string {
	return filepath.Join(flagDataDir, "finmate.db")
}

// openLedger opens the store and rebuilds the saved ledger. Callers must
// close the returned store.
func openLedger() (*ledger.Ledger, *store.Store, error) {
	db, err := store.Open(dbPath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}

	st, err := db.Load()
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("loading ledger: %w", err)
	}

	log.WithFields(logrus.Fields{
		"path":         dbPath(),
		"transactions": len(st.Transactions),
	}).Debug("ledger loaded")
	return ledger.FromState(st), db, nil
}

func saveLedger(db *store.Store, l *ledger.Ledger) error {
	if err := db.Save(l.State()); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	log.WithField("weekly_budget", l.WeeklyBudget().String()).Debug("ledger saved")
	return nil
}

// requireBudget fails with onboarding guidance when no budget is set.
func requireBudget(l *ledger.Ledger) error {
	if l.Configured() {
		return nil
	}
	return errors.New("no weekly budget set, run `finmate budget set <amount>` or `finmate setup`")
}

func progress(format string, args ...any) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
