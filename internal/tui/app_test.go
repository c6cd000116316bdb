package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/finmate/internal/config"
	"github.com/theirongolddev/finmate/internal/ledger"
	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/tui/components"
)

var fixedNow = time.Date(2026, time.October, 21, 12, 0, 0, 0, time.Local)

func newTestApp(t *testing.T, budget int64) (App, *ledger.Ledger) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	l := ledger.New(ledger.WithClock(func() time.Time { return fixedNow }))
	if budget > 0 {
		l.SetWeeklyBudget(decimal.NewFromInt(budget))
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := config.DefaultConfig()
	cfg.Chat.ReplyDelayMs = 0
	return NewApp(l, nil, cfg, log), l
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func send(t *testing.T, a App, msgs ...tea.Msg) App {
	t.Helper()
	for _, msg := range msgs {
		m, _ := a.Update(msg)
		var ok bool
		a, ok = m.(App)
		require.True(t, ok)
	}
	return a
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab)
			if got := a.tabAtX(pos + w/2); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
		assert.Equal(t, -1, a.tabAtX(pos+50))
	}
}

func TestOnboardingShownWithoutBudget(t *testing.T) {
	a, l := newTestApp(t, 0)
	require.NotNil(t, a.setupForm)
	assert.Empty(t, a.session.Transcript())

	a.setupVals.Budget = "$300"
	a.finishOnboarding()

	assert.True(t, l.WeeklyBudget().Equal(decimal.NewFromInt(300)))
	food, _ := l.Category(model.CategoryFood)
	assert.Equal(t, "120", food.WeeklyLimit.String())
	require.Len(t, a.session.Transcript(), 1, "welcome turn after onboarding")
	assert.Equal(t, 1, a.chat.visible)
}

func TestOnboardingRejectsInvalidBudget(t *testing.T) {
	a, l := newTestApp(t, 0)
	a.setupVals.Budget = "0"
	a.finishOnboarding()

	assert.False(t, l.Configured())
	assert.NotEmpty(t, a.notice)
}

func TestChatPacedReplyAndQuickAction(t *testing.T) {
	a, l := newTestApp(t, 500)
	require.Nil(t, a.setupForm)
	a = a.switchTab(tabChat)

	a = send(t, a, runes("plan dinner for $20"), enter)
	assert.True(t, a.chat.pending)
	assert.Equal(t, 2, a.chat.visible, "welcome and the user turn are visible while the reply is pending")
	assert.Len(t, a.session.Transcript(), 3)

	a = send(t, a, replyMsg{})
	assert.False(t, a.chat.pending)
	assert.Equal(t, 3, a.chat.visible)

	// "1" runs the first quick action: add the planned transaction
	a = send(t, a, runes("1"))
	require.Len(t, l.Transactions(), 1)
	assert.Equal(t, "dinner", l.Transactions()[0].Label)
	assert.Equal(t, 3, a.chat.visible, "confirmation waits for the reply delay")

	a = send(t, a, replyMsg{})
	tr := a.session.Transcript()
	assert.Equal(t, len(tr), a.chat.visible)
	assert.Contains(t, tr[len(tr)-1].Text, "You now have $480.00 remaining this week.")
}

func TestChatDigitsTypeWhenInputHasText(t *testing.T) {
	a, l := newTestApp(t, 500)
	a = a.switchTab(tabChat)

	a = send(t, a, runes("move 1"))
	assert.Equal(t, "move 1", a.chat.input.Value())
	assert.Empty(t, l.Transactions())
	assert.Len(t, a.session.Transcript(), 1)
}

func TestChatLettersDoNotSwitchTabs(t *testing.T) {
	a, _ := newTestApp(t, 500)
	a = a.switchTab(tabChat)

	a = send(t, a, runes("s"), runes("d"))
	assert.Equal(t, tabChat, a.activeTab)
	assert.Equal(t, "sd", a.chat.input.Value())

	a = send(t, a, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabSettings, a.activeTab)
}

func TestCategoryInlineEdit(t *testing.T) {
	a, l := newTestApp(t, 500)
	a = send(t, a, runes("c"))
	require.Equal(t, tabCategories, a.activeTab)

	a = send(t, a, runes("j"), enter)
	require.True(t, a.cats.editing)
	assert.Equal(t, "100.00", a.cats.input.Value())

	a.cats.input.SetValue("abc")
	a = send(t, a, enter)
	assert.True(t, a.cats.editing)
	assert.Error(t, a.cats.err)

	a.cats.input.SetValue("150")
	a = send(t, a, enter)
	assert.False(t, a.cats.editing)
	transport, _ := l.Category(model.CategoryTransport)
	assert.Equal(t, "150", transport.WeeklyLimit.String())
	assert.True(t, l.WeeklyBudget().Equal(decimal.NewFromInt(500)), "limit edits leave the budget alone")
}

func TestSettingsBudgetReproportions(t *testing.T) {
	a, l := newTestApp(t, 500)
	a = send(t, a, runes("s"), runes("j"), enter)
	require.True(t, a.settings.editing)
	require.Equal(t, settingsFieldBudget, a.settings.cursor)

	a.settings.input.SetValue("-5")
	a = send(t, a, enter)
	assert.Error(t, a.settings.saveErr)
	assert.True(t, l.WeeklyBudget().Equal(decimal.NewFromInt(500)))

	a = send(t, a, enter)
	a.settings.input.SetValue("1000")
	a = send(t, a, enter)
	assert.NoError(t, a.settings.saveErr)
	food, _ := l.Category(model.CategoryFood)
	assert.Equal(t, "400", food.WeeklyLimit.String())
}

func TestSettingsResetReturnsToOnboarding(t *testing.T) {
	a, l := newTestApp(t, 500)
	l.AddTransaction(model.Transaction{ID: "1", CategoryID: model.CategoryFood, Label: "x", Amount: decimal.NewFromInt(5), Date: fixedNow})

	a = send(t, a, runes("s"), runes("j"), runes("j"), runes("j"), enter)
	require.True(t, a.settings.confirming)

	a = send(t, a, runes("y"))
	assert.False(t, l.Configured())
	assert.Empty(t, l.Transactions())
	assert.NotNil(t, a.setupForm)
	assert.Empty(t, a.session.Transcript())
}

func TestSettingsResetCancelled(t *testing.T) {
	a, l := newTestApp(t, 500)
	a = send(t, a, runes("s"), runes("j"), runes("j"), runes("j"), enter, runes("n"))
	assert.False(t, a.settings.confirming)
	assert.True(t, l.Configured())
}

func TestViewRendersEveryTab(t *testing.T) {
	a, _ := newTestApp(t, 500)
	a = send(t, a, tea.WindowSizeMsg{Width: 130, Height: 40})

	for i, tab := range components.Tabs {
		a = a.switchTab(i)
		out := a.View()
		assert.NotEmpty(t, out, tab.Name)
		assert.Contains(t, out, tab.Name)
	}

	a = send(t, a, tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.True(t, strings.Contains(a.View(), "Terminal too narrow"))
}
