package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/finmate/internal/chat"
	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/config"
	"github.com/theirongolddev/finmate/internal/tui/components"
	"github.com/theirongolddev/finmate/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldBudget
	settingsFieldReplyDelay
	settingsFieldReset
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor     int
	editing    bool
	confirming bool // waiting for y/n on reset
	input      textinput.Model
	saved      bool  // flash "saved" message until the next key
	saveErr    error // non-nil if the last save or validation failed
}

func newSettingsState() settingsState {
	return settingsState{input: newSettingsInput()}
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (a App) settingsKey(key string) (tea.Model, tea.Cmd, bool) {
	if a.settings.confirming {
		a.settings.confirming = false
		if key == "y" || key == "Y" {
			a.resetSession()
			return a, a.setupForm.Init(), true
		}
		return a, nil, true
	}

	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case "enter":
		if a.settings.cursor == settingsFieldReset {
			a.settings.confirming = true
			return a, nil, true
		}
		m, cmd := a.settingsStartEdit()
		return m, cmd, true
	default:
		return a, nil, false
	}
	a.settings.saved = false
	return a, nil, true
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(a.cfg.Appearance.Theme)
	case settingsFieldBudget:
		ti.Placeholder = "500"
		ti.Prompt = "$"
		ti.SetValue(cli.FormatAmount(a.ledger.WeeklyBudget()))
	case settingsFieldReplyDelay:
		ti.Placeholder = "500 (milliseconds, 0 for instant)"
		ti.SetValue(strconv.Itoa(a.cfg.Chat.ReplyDelayMs))
	}
	ti.CursorEnd()
	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	val := strings.TrimSpace(a.settings.input.Value())
	a.settings.saveErr = nil

	switch a.settings.cursor {
	case settingsFieldTheme:
		if !theme.Valid(val) {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		a.cfg.Appearance.Theme = val
		theme.SetActive(val)
		a.saveConfig()
	case settingsFieldBudget:
		budget, err := cli.ParseBudget(val)
		if err != nil {
			a.settings.saveErr = err
			return
		}
		// changing the budget re-proportions every category limit
		a.ledger.SetWeeklyBudget(budget)
		a.persist()
		a.log.WithField("weekly_budget", budget.String()).Info("weekly budget set")
	case settingsFieldReplyDelay:
		ms, err := strconv.Atoi(val)
		if err != nil || ms < 0 {
			a.settings.saveErr = errors.New("reply delay must be a whole number of milliseconds")
			return
		}
		a.cfg.Chat.ReplyDelayMs = ms
		a.saveConfig()
	}
}

// resetSession wipes the ledger and conversation, then returns to onboarding.
func (a *App) resetSession() {
	a.ledger.ResetForNewSession()
	a.persist()
	a.log.Info("session reset")

	a.session = chat.New(a.ledger, chat.WithLogger(a.log))
	a.chat = newChatState()
	a.cats = newCategoriesState()
	a.settings = newSettingsState()
	a.activeTab = tabDashboard
	a.startOnboarding()
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	fields := []struct {
		label string
		value string
	}{
		{"Theme", a.cfg.Appearance.Theme},
		{"Weekly Budget", cli.FormatMoney(a.ledger.WeeklyBudget())},
		{"Reply Delay", fmt.Sprintf("%dms", a.cfg.Chat.ReplyDelayMs)},
		{"Reset Session", "clears budget, limits and transactions"},
	}

	innerW := components.CardInnerWidth(cw)
	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-16s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-16s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			if padLen := innerW - lipgloss.Width(marker) - lipgloss.Width(label) - lipgloss.Width(value); padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	switch {
	case a.settings.confirming:
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render("Reset everything and start over? [y/N]"))
	case a.settings.saveErr != nil:
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	case a.settings.saved:
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file:   ") + valueStyle.Render(config.ConfigPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Categories:    ") + valueStyle.Render(strconv.Itoa(len(a.ledger.Categories()))) + "\n")
	infoBody.WriteString(labelStyle.Render("Transactions:  ") + valueStyle.Render(cli.FormatNumber(int64(len(a.ledger.Transactions())))))
	if a.store == nil {
		infoBody.WriteString("\n" + warnStyle.Render("Changes are not being saved."))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
