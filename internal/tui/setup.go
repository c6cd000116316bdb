package tui

import (
	"strings"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// OnboardingValues holds the answers collected by the onboarding form.
type OnboardingValues struct {
	Budget string
	Theme  string
}

// NewOnboardingForm builds the first-run form asking for the weekly budget
// and a color theme. Answers are written into vals.
func NewOnboardingForm(vals *OnboardingValues) *huh.Form {
	if vals.Theme == "" {
		vals.Theme = theme.Active.Name
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to finmate").
				Description("Set a weekly budget and finmate splits it across\nFood, Transport, Social and Other for you."),
			huh.NewInput().
				Title("Weekly budget").
				Description("How much can you spend each week?").
				Placeholder("500").
				Value(&vals.Budget).
				Validate(func(s string) error {
					_, err := cli.ParseBudget(strings.TrimSpace(s))
					return err
				}),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
}
