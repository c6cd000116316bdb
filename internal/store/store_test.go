package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/finmate/internal/ledger"
	"github.com/theirongolddev/finmate/internal/model"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "finmate.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestLoad_EmptyDatabaseIsFreshState(t *testing.T) {
	s, _ := openTemp(t)

	st, err := s.Load()
	require.NoError(t, err)
	assert.True(t, st.WeeklyBudget.IsZero())
	assert.Len(t, st.Categories, 4)
	assert.Empty(t, st.Transactions)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s, path := openTemp(t)

	loc := time.FixedZone("test", -5*60*60)
	l := ledger.New()
	l.SetWeeklyBudget(decimal.RequireFromString("500"))
	l.UpdateCategoryLimit(model.CategoryFood, decimal.RequireFromString("212.35"))
	l.AddTransaction(model.Transaction{
		ID: "b", CategoryID: model.CategoryFood, Label: "Coffee",
		Amount: decimal.RequireFromString("5.50"), Date: time.Date(2026, 10, 20, 8, 15, 0, 123, loc),
	})
	l.AddTransaction(model.Transaction{
		ID: "a", CategoryID: "gifts", Label: "Card",
		Amount: decimal.RequireFromString("3"), Date: time.Date(2026, 10, 19, 9, 0, 0, 0, loc),
	})

	require.NoError(t, s.Save(l.State()))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	st, err := reopened.Load()
	require.NoError(t, err)

	assert.True(t, st.WeeklyBudget.Equal(decimal.NewFromInt(500)))
	require.Len(t, st.Categories, 4)
	assert.Equal(t, model.CategoryFood, st.Categories[0].ID)
	assert.Equal(t, model.NameFood, st.Categories[0].Name)
	assert.Equal(t, "#10B981", st.Categories[0].Color)
	assert.Equal(t, "212.35", st.Categories[0].WeeklyLimit.String())
	assert.Equal(t, model.CategoryOther, st.Categories[3].ID)

	require.Len(t, st.Transactions, 2)
	assert.Equal(t, "b", st.Transactions[0].ID, "recording order is kept")
	assert.Equal(t, "5.5", st.Transactions[0].Amount.String())
	assert.True(t, st.Transactions[0].Date.Equal(time.Date(2026, 10, 20, 8, 15, 0, 123, loc)))
	assert.Equal(t, model.CategoryID("gifts"), st.Transactions[1].CategoryID)

	n, err := reopened.TransactionCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSave_ReplacesPreviousSnapshot(t *testing.T) {
	s, _ := openTemp(t)

	l := ledger.New()
	l.SetWeeklyBudget(decimal.NewFromInt(300))
	l.AddTransaction(model.Transaction{ID: "1", CategoryID: model.CategoryFood, Label: "x", Amount: decimal.NewFromInt(1), Date: time.Now()})
	require.NoError(t, s.Save(l.State()))

	l.ResetForNewSession()
	require.NoError(t, s.Save(l.State()))

	st, err := s.Load()
	require.NoError(t, err)
	assert.True(t, st.WeeklyBudget.IsZero())
	assert.Empty(t, st.Transactions)
	for _, c := range st.Categories {
		assert.True(t, c.WeeklyLimit.IsZero())
	}
}
