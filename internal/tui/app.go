// Package tui provides the interactive Bubble Tea dashboard for finmate.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/finmate/internal/chat"
	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/config"
	"github.com/theirongolddev/finmate/internal/ledger"
	"github.com/theirongolddev/finmate/internal/pipeline"
	"github.com/theirongolddev/finmate/internal/store"
	"github.com/theirongolddev/finmate/internal/tui/components"
	"github.com/theirongolddev/finmate/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

const (
	tabDashboard = iota
	tabCategories
	tabChat
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160

	minContentHeight = 5 // minimum content area height
)

// App is the root Bubble Tea model.
type App struct {
	ledger  *ledger.Ledger
	store   *store.Store // nil keeps every change in memory
	session *chat.Session
	cfg     config.Config
	log     logrus.FieldLogger

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	notice    string // one-shot message shown in the status bar

	// Per-tab state
	cats     categoriesState
	chat     chatState
	settings settingsState

	// Onboarding (huh form), shown while no weekly budget is set
	setupForm *huh.Form
	setupVals *OnboardingValues
}

// NewApp creates the TUI model over a loaded ledger. Every change made in
// the UI is written back to db.
func NewApp(l *ledger.Ledger, db *store.Store, cfg config.Config, log logrus.FieldLogger) App {
	a := App{
		ledger:   l,
		store:    db,
		cfg:      cfg,
		log:      log,
		cats:     newCategoriesState(),
		chat:     newChatState(),
		settings: newSettingsState(),
	}
	a.session = chat.New(l, chat.WithLogger(log))

	if l.Configured() {
		a.startConversation()
	} else {
		a.startOnboarding()
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		a.chat.input.Cursor.BlinkCmd(),
	}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		a.chat.input.Width = components.CardInnerWidth(a.contentWidth()) - 4
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.setupForm != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return a.scroll(-1), nil
		case tea.MouseButtonWheelDown:
			return a.scroll(1), nil
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					return a.switchTab(tab), nil
				}
			}
		}
		return a, nil

	case replyMsg:
		a.chat.pending = false
		a.chat.visible = len(a.session.Transcript())
		a.chat.scroll = 0
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	// Forward unhandled messages (cursor blinks, spinner ticks) to whatever
	// is currently interactive.
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	var cmds []tea.Cmd
	if a.chat.pending {
		var cmd tea.Cmd
		a.chat.spinner, cmd = a.chat.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}
	switch {
	case a.activeTab == tabChat:
		var cmd tea.Cmd
		a.chat.input, cmd = a.chat.input.Update(msg)
		cmds = append(cmds, cmd)
	case a.activeTab == tabCategories && a.cats.editing:
		var cmd tea.Cmd
		a.cats.input, cmd = a.cats.input.Update(msg)
		cmds = append(cmds, cmd)
	case a.activeTab == tabSettings && a.settings.editing:
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// Onboarding intercepts all keys
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	a.notice = ""

	// Inline editors own the keyboard while open
	if a.activeTab == tabCategories && a.cats.editing {
		return a.updateCategoryInput(msg)
	}
	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "tab":
		return a.switchTab((a.activeTab + 1) % len(components.Tabs)), nil
	case "shift+tab":
		return a.switchTab((a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)), nil
	}

	// The chat input receives every other key, including letters that would
	// otherwise switch tabs.
	if a.activeTab == tabChat {
		return a.updateChatKey(msg)
	}

	if key == "?" {
		a.showHelp = true
		return a, nil
	}

	switch a.activeTab {
	case tabCategories:
		if m, cmd, handled := a.categoriesKey(key); handled {
			return m, cmd
		}
	case tabSettings:
		if m, cmd, handled := a.settingsKey(key); handled {
			return m, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "left", "h":
		return a.switchTab((a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)), nil
	case "right", "l":
		return a.switchTab((a.activeTab + 1) % len(components.Tabs)), nil
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			return a.switchTab(idx), nil
		}
	}
	return a, nil
}

func (a App) switchTab(idx int) App {
	a.activeTab = idx
	if idx == tabChat {
		a.chat.input.Focus()
	} else {
		a.chat.input.Blur()
	}
	return a
}

func (a App) scroll(delta int) App {
	switch a.activeTab {
	case tabChat:
		a.chat.scroll -= delta
		if a.chat.scroll < 0 {
			a.chat.scroll = 0
		}
	case tabCategories:
		a.cats.moveCursor(delta, len(a.ledger.Categories()))
	}
	return a
}

// ─── Onboarding ─────────────────────────────────────────────────

func (a *App) startOnboarding() {
	a.setupVals = &OnboardingValues{Theme: a.cfg.Appearance.Theme}
	a.setupForm = NewOnboardingForm(a.setupVals)
	if a.width > 0 {
		a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
	}
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.finishOnboarding()
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		// finmate cannot do anything useful without a budget
		return a, tea.Quit
	}
	return a, cmd
}

func (a *App) finishOnboarding() {
	budget, err := cli.ParseBudget(strings.TrimSpace(a.setupVals.Budget))
	if err != nil {
		// the form validates, so this only happens on programmatic input
		a.notice = err.Error()
		return
	}
	a.ledger.SetWeeklyBudget(budget)
	a.persist()
	a.log.WithField("weekly_budget", budget.String()).Info("onboarding complete")

	if theme.Valid(a.setupVals.Theme) && a.setupVals.Theme != a.cfg.Appearance.Theme {
		a.cfg.Appearance.Theme = a.setupVals.Theme
		theme.SetActive(a.setupVals.Theme)
		a.saveConfig()
	}

	a.startConversation()
	a.activeTab = tabDashboard
}

// startConversation greets the user once per session.
func (a *App) startConversation() {
	if len(a.session.Transcript()) == 0 {
		a.session.Welcome()
	}
	a.chat.visible = len(a.session.Transcript())
}

// ─── Persistence ────────────────────────────────────────────────

// persist writes the ledger to the store. Failures are logged and surfaced
// in the status bar; the in-memory ledger stays authoritative.
func (a *App) persist() {
	if a.store == nil {
		return
	}
	if err := a.store.Save(a.ledger.State()); err != nil {
		a.log.WithError(err).Error("saving ledger")
		a.notice = "Save failed: " + err.Error()
	}
}

func (a *App) saveConfig() {
	if err := config.Save(a.cfg); err != nil {
		a.log.WithError(err).Warn("saving config")
		a.settings.saveErr = err
	}
}

// ─── Views ──────────────────────────────────────────────────────

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  finmate needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"d c a s", "Jump to tab"},
			{"tab ←→", "Next / Previous tab"},
			{"j k", "Move cursor"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"Enter", "Edit / Send / Confirm"},
			{"Esc", "Cancel"},
			{"1-9", "Run a quick action (chat, empty input)"},
			{"?", "Toggle help"},
			{"q", "Quit (outside chat)"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + week line
	start, end := pipeline.WeekWindow(a.ledger.Now())
	weekStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Width(w)
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		weekStyle.Render(" Week of "+cli.FormatWeekRange(start, end))

	// 2. Status bar
	remaining := a.ledger.RemainingThisWeek()
	statusBar := components.RenderStatusBar(w, a.notice, cli.FormatMoney(remaining), remaining.IsNegative())

	// 3. Content zone height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabDashboard:
		content = a.renderDashboardTab(cw)
	case tabCategories:
		content = a.renderCategoriesTab(cw)
	case tabChat:
		content = a.renderChatTab(cw, contentH)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines, then fill the background
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

type replyMsg struct{}

// replyCmd reveals pending assistant turns after the configured delay.
func replyCmd(delayMs int) tea.Cmd {
	if delayMs <= 0 {
		return func() tea.Msg { return replyMsg{} }
	}
	return tea.Tick(time.Duration(delayMs)*time.Millisecond, func(time.Time) tea.Msg {
		return replyMsg{}
	})
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the widths used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
