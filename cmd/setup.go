package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/config"
	"github.com/theirongolddev/finmate/internal/tui"
	"github.com/theirongolddev/finmate/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	l, db, err := openLedger()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	vals := tui.OnboardingValues{Theme: cfg.Appearance.Theme}
	if l.Configured() {
		vals.Budget = cli.FormatAmount(l.WeeklyBudget())
	}

	if err := tui.NewOnboardingForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled.")
			return nil
		}
		return fmt.Errorf("running setup form: %w", err)
	}

	budget, err := cli.ParseBudget(strings.TrimSpace(vals.Budget))
	if err != nil {
		return err
	}
	if !budget.Equal(l.WeeklyBudget()) {
		l.SetWeeklyBudget(budget)
		if err := saveLedger(db, l); err != nil {
			return err
		}
	}

	if theme.Valid(vals.Theme) {
		cfg.Appearance.Theme = vals.Theme
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	log.WithField("weekly_budget", budget.String()).Info("setup complete")

	fmt.Println()
	fmt.Printf("  Weekly budget: %s\n", cli.FormatMoney(budget))
	fmt.Printf("  Theme:         %s\n", cfg.Appearance.Theme)
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `finmate setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
