package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finmate/internal/advisor"
	"github.com/theirongolddev/finmate/internal/tui/components"
	"github.com/theirongolddev/finmate/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// chatState tracks the chat tab. Turns past visible have been produced by
// the session but are still "being typed".
type chatState struct {
	input   textinput.Model
	spinner spinner.Model
	visible int
	pending bool
	scroll  int // lines scrolled up from the bottom
}

func newChatState() chatState {
	ti := textinput.New()
	ti.Placeholder = "Ask about your budget, e.g. plan dinner for $20"
	ti.Prompt = "› "
	ti.CharLimit = 200
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return chatState{input: ti, spinner: sp}
}

func (a App) updateChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "enter":
		if a.chat.pending {
			return a, nil
		}
		text := a.chat.input.Value()
		if strings.TrimSpace(text) == "" {
			return a, nil
		}
		a.chat.input.Reset()
		before := len(a.session.Transcript())
		a.session.Ask(text)
		return a.awaitReply(before + 1) // the user turn shows immediately

	case "up", "pgup":
		a.chat.scroll++
		return a, nil
	case "down", "pgdown":
		if a.chat.scroll > 0 {
			a.chat.scroll--
		}
		return a, nil
	case "esc":
		a.chat.input.Reset()
		return a, nil
	}

	// Digits run the latest quick actions while nothing is being typed.
	if len(msg.Runes) == 1 && a.chat.input.Value() == "" && !a.chat.pending {
		if r := msg.Runes[0]; r >= '1' && r <= '9' {
			return a.runQuickAction(int(r - '1'))
		}
	}

	var cmd tea.Cmd
	a.chat.input, cmd = a.chat.input.Update(msg)
	return a, cmd
}

// runQuickAction executes the idx-th action of the latest assistant turn and
// saves the ledger.
func (a App) runQuickAction(idx int) (tea.Model, tea.Cmd) {
	actions := latestActions(a.session.Transcript()[:a.chat.visible])
	if idx < 0 || idx >= len(actions) {
		return a, nil
	}

	qa := actions[idx]
	before := len(a.session.Transcript())
	if _, err := a.session.Run(qa); err != nil {
		a.log.WithError(err).WithField("action", qa.Label).Warn("quick action failed")
		a.notice = err.Error()
		return a, nil
	}

	if mutates(qa.Action) {
		a.persist()
		return a.awaitReply(before)
	}
	// suggestions are replayed as a user turn, which shows immediately
	return a.awaitReply(before + 1)
}

func (a App) awaitReply(visible int) (tea.Model, tea.Cmd) {
	a.chat.visible = visible
	a.chat.pending = true
	a.chat.scroll = 0
	return a, tea.Batch(a.chat.spinner.Tick, replyCmd(a.cfg.Chat.ReplyDelayMs))
}

// mutates reports whether running act changes the ledger.
func mutates(act advisor.Action) bool {
	switch act.(type) {
	case advisor.Reallocate, advisor.AddPlannedTransaction:
		return true
	default:
		return false
	}
}

// latestActions returns the quick actions of the last assistant turn.
func latestActions(turns []advisor.ChatTurn) []advisor.QuickAction {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == advisor.RoleAssistant {
			return turns[i].QuickActions
		}
	}
	return nil
}

func (a App) renderChatTab(cw, h int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	userName := lipgloss.NewStyle().Foreground(t.Blue).Background(t.Surface).Bold(true)
	botName := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(innerW - 2)
	actionKey := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	actionStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pad := lipgloss.NewStyle().Background(t.Surface).Render("  ")

	turns := a.session.Transcript()
	if a.chat.visible < len(turns) {
		turns = turns[:a.chat.visible]
	}

	var lines []string
	for i, turn := range turns {
		if i > 0 {
			lines = append(lines, "")
		}
		if turn.Role == advisor.RoleUser {
			lines = append(lines, userName.Render("You"))
		} else {
			lines = append(lines, botName.Render("finmate"))
		}
		for _, l := range strings.Split(textStyle.Render(turn.Text), "\n") {
			lines = append(lines, pad+l)
		}
		// only the latest turn's actions can be run
		if i == len(turns)-1 && !a.chat.pending {
			for j, qa := range turn.QuickActions {
				lines = append(lines, pad+actionKey.Render(fmt.Sprintf("[%d] ", j+1))+actionStyle.Render(qa.Label))
			}
		}
	}
	if a.chat.pending {
		lines = append(lines, "", botName.Render("finmate")+" "+a.chat.spinner.View()+dimStyle.Render(" thinking…"))
	}

	// Card chrome: 2 border + title + input + hint lines.
	window := h - 6
	if window < 3 {
		window = 3
	}
	maxScroll := len(lines) - window
	if maxScroll < 0 {
		maxScroll = 0
	}
	scroll := a.chat.scroll
	if scroll > maxScroll {
		scroll = maxScroll
	}
	endIdx := len(lines) - scroll
	startIdx := endIdx - window
	if startIdx < 0 {
		startIdx = 0
	}
	visible := lines[startIdx:endIdx]
	for len(visible) < window {
		visible = append(visible, "")
	}

	hint := "[Enter] send  [1-9] quick action  [↑↓] scroll  [Tab] next tab"
	if scroll > 0 {
		hint = fmt.Sprintf("↑ %d more  ", scroll) + hint
	}

	body := strings.Join(visible, "\n") + "\n" +
		a.chat.input.View() + "\n" +
		dimStyle.Render(truncStr(hint, innerW))

	return components.ContentCard("Assistant", body, cw)
}
