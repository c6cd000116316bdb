package chat

import (
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/finmate/internal/advisor"
	"github.com/theirongolddev/finmate/internal/ledger"
	"github.com/theirongolddev/finmate/internal/model"
)

var fixedNow = time.Date(2026, time.October, 21, 10, 0, 0, 0, time.Local)

func newSession(t *testing.T) (*Session, *ledger.Ledger) {
	t.Helper()
	l := ledger.New(ledger.WithClock(func() time.Time { return fixedNow }))
	l.SetWeeklyBudget(decimal.NewFromInt(500))

	log := logrus.New()
	log.SetOutput(io.Discard)

	n := 0
	s := New(l, WithLogger(log), WithIDGenerator(func() string {
		n++
		return "tx-" + string(rune('0'+n))
	}))
	return s, l
}

func limitOf(l *ledger.Ledger, id model.CategoryID) string {
	c, _ := l.Category(id)
	return c.WeeklyLimit.String()
}

func TestWelcome(t *testing.T) {
	s, _ := newSession(t)
	turn := s.Welcome()

	assert.Contains(t, turn.Text, "You have $500.00 remaining this week")
	assert.Len(t, turn.QuickActions, 3)
	assert.Len(t, s.Transcript(), 1)
}

func TestAsk_RecordsBothTurns(t *testing.T) {
	s, _ := newSession(t)

	replies := s.Ask("  How much can I spend on Food?  ")
	require.Len(t, replies, 1)

	tr := s.Transcript()
	require.Len(t, tr, 2)
	assert.Equal(t, advisor.RoleUser, tr[0].Role)
	assert.Equal(t, "How much can I spend on Food?", tr[0].Text)
	assert.Equal(t, advisor.RoleAssistant, tr[1].Role)
}

func TestAsk_IgnoresBlankInput(t *testing.T) {
	s, _ := newSession(t)
	assert.Nil(t, s.Ask("   "))
	assert.Empty(t, s.Transcript())
}

func TestRun_Reallocate(t *testing.T) {
	s, l := newSession(t)

	replies := s.Ask("reallocate $15 from Social to Food")
	qa := replies[0].QuickActions[0]

	out, err := s.Run(qa)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t,
		"✅ Done! I've reallocated $15.00 from Social to Food. Your Social limit is now $110.00 and your Food limit is now $215.00.",
		out[0].Text)
	assert.Equal(t, "110", limitOf(l, model.CategorySocial))
	assert.Equal(t, "215", limitOf(l, model.CategoryFood))
	// the weekly budget is untouched
	assert.True(t, l.WeeklyBudget().Equal(decimal.NewFromInt(500)))
}

func TestRun_ReallocateUnknownCategory(t *testing.T) {
	s, l := newSession(t)

	_, err := s.Run(advisor.QuickAction{
		Label:  "Reallocate",
		Action: advisor.Reallocate{Amount: decimal.NewFromInt(5), From: "gifts", To: model.CategoryFood},
	})
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Equal(t, "200", limitOf(l, model.CategoryFood))
}

func TestRun_AddPlannedTransaction(t *testing.T) {
	s, l := newSession(t)

	replies := s.Ask("plan dinner for $20")
	out, err := s.Run(replies[0].QuickActions[0])
	require.NoError(t, err)

	assert.Equal(t, `✅ Added "dinner" for $20.00 to your transactions. You now have $480.00 remaining this week.`, out[0].Text)

	txs := l.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, "tx-1", txs[0].ID)
	assert.Equal(t, model.CategoryFood, txs[0].CategoryID)
	assert.Equal(t, "dinner", txs[0].Label)
	assert.Equal(t, fixedNow, txs[0].Date)
}

func TestRun_AddPlannedRejectsZeroAmount(t *testing.T) {
	s, l := newSession(t)

	replies := s.Ask("plan gum for $0")
	require.NotEmpty(t, replies[0].QuickActions)
	_, err := s.Run(replies[0].QuickActions[0])
	require.ErrorIs(t, err, ErrNonPositiveAmount)
	assert.Empty(t, l.Transactions())
}

func TestRun_SuggestionReplaysLabel(t *testing.T) {
	s, _ := newSession(t)
	welcome := s.Welcome()

	out, err := s.Run(welcome.QuickActions[0]) // "Plan dinner for $20"
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Text, "plan dinner for $20.00")

	tr := s.Transcript()
	require.Len(t, tr, 3)
	assert.Equal(t, "Plan dinner for $20", tr[1].Text)
	assert.Equal(t, advisor.RoleUser, tr[1].Role)
}

func TestRun_NilAction(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.Run(advisor.QuickAction{Label: "nothing"})
	assert.Error(t, err)
}
