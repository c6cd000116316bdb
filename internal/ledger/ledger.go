// Package ledger owns a user's weekly budget, categories and transaction log.
// All spend arithmetic is delegated to the pipeline package.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/pipeline"
)

// Default allocation of the weekly budget across the fixed categories.
var allocation = map[model.CategoryName]decimal.Decimal{
	model.NameFood:      decimal.RequireFromString("0.40"),
	model.NameTransport: decimal.RequireFromString("0.20"),
	model.NameSocial:    decimal.RequireFromString("0.25"),
	model.NameOther:     decimal.RequireFromString("0.15"),
}

// State is the persisted form of a ledger.
type State struct {
	WeeklyBudget decimal.Decimal
	Categories   []model.Category
	Transactions []model.Transaction
}

// Ledger is a single user's budget. It is not safe for concurrent use.
type Ledger struct {
	weeklyBudget decimal.Decimal
	categories   []model.Category
	transactions []model.Transaction

	now func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the ledger's notion of "now".
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// New returns an unconfigured ledger: zero budget, default categories with zero
// limits and no transactions.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		weeklyBudget: decimal.Zero,
		categories:   model.DefaultCategories(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FromState rebuilds a ledger from persisted state. An empty category set is
// replaced by the defaults.
func FromState(s State, opts ...Option) *Ledger {
	l := New(opts...)
	l.weeklyBudget = s.WeeklyBudget
	if len(s.Categories) > 0 {
		l.categories = append([]model.Category(nil), s.Categories...)
	}
	l.transactions = append([]model.Transaction(nil), s.Transactions...)
	return l
}

// State returns a copy of the ledger suitable for persistence.
func (l *Ledger) State() State {
	return State{
		WeeklyBudget: l.weeklyBudget,
		Categories:   l.Categories(),
		Transactions: l.Transactions(),
	}
}

// InitializeCategories allocates budget across the fixed categories using the
// default proportions, rounding each limit to a whole unit.
func InitializeCategories(budget decimal.Decimal) []model.Category {
	categories := model.DefaultCategories()
	for i := range categories {
		categories[i].WeeklyLimit = budget.Mul(allocation[categories[i].Name]).Round(0)
	}
	return categories
}

// WeeklyBudget returns the configured weekly budget; zero means unconfigured.
func (l *Ledger) WeeklyBudget() decimal.Decimal {
	return l.weeklyBudget
}

// Configured reports whether a weekly budget has been set.
func (l *Ledger) Configured() bool {
	return l.weeklyBudget.IsPositive()
}

// Categories returns a copy of the categories in display order.
func (l *Ledger) Categories() []model.Category {
	return append([]model.Category(nil), l.categories...)
}

// Category looks up a category by id.
func (l *Ledger) Category(id model.CategoryID) (model.Category, bool) {
	return model.FindCategory(l.categories, id)
}

// Transactions returns a copy of the transaction log in recording order.
func (l *Ledger) Transactions() []model.Transaction {
	return append([]model.Transaction(nil), l.transactions...)
}

// Now returns the ledger clock's current time.
func (l *Ledger) Now() time.Time {
	return l.now()
}

// SetWeeklyBudget sets the budget and re-proportions every category. Custom
// limits are discarded.
func (l *Ledger) SetWeeklyBudget(amount decimal.Decimal) {
	l.weeklyBudget = amount
	l.categories = InitializeCategories(amount)
}

// SetCategories replaces the category set.
func (l *Ledger) SetCategories(categories []model.Category) {
	l.categories = append([]model.Category(nil), categories...)
}

// AddTransaction appends tx to the log. The ledger does not validate it.
func (l *Ledger) AddTransaction(tx model.Transaction) {
	l.transactions = append(l.transactions, tx)
}

// UpdateCategoryLimit sets the weekly limit of id. Unknown ids are ignored.
func (l *Ledger) UpdateCategoryLimit(id model.CategoryID, limit decimal.Decimal) {
	for i := range l.categories {
		if l.categories[i].ID == id {
			l.categories[i].WeeklyLimit = limit
		}
	}
}

// ResetForNewSession clears the ledger back to its freshly created state.
func (l *Ledger) ResetForNewSession() {
	l.weeklyBudget = decimal.Zero
	l.categories = model.DefaultCategories()
	l.transactions = nil
}

// RemainingThisWeek is the weekly budget minus everything spent this week.
func (l *Ledger) RemainingThisWeek() decimal.Decimal {
	return pipeline.Remaining(l.weeklyBudget, l.transactions, l.now())
}

// SpendByCategory returns this week's spend for id.
func (l *Ledger) SpendByCategory(id model.CategoryID) decimal.Decimal {
	return pipeline.SpendByCategory(l.transactions, id, l.now())
}

// Summary returns this week's totals.
func (l *Ledger) Summary() model.WeekSummary {
	return pipeline.Summarize(l.weeklyBudget, l.transactions, l.now())
}

// CategoryStats returns this week's per-category figures.
func (l *Ledger) CategoryStats() []model.CategoryStats {
	return pipeline.AggregateCategories(l.categories, l.transactions, l.now())
}

// Snapshot captures a read-only view for the advice engine. Later ledger
// mutations do not affect it.
func (l *Ledger) Snapshot() model.Snapshot {
	now := l.now()
	return model.Snapshot{
		WeeklyBudget:      l.weeklyBudget,
		Categories:        l.Categories(),
		Transactions:      l.Transactions(),
		RemainingThisWeek: pipeline.Remaining(l.weeklyBudget, l.transactions, now),
		Spend:             pipeline.SpendMap(l.transactions, now),
	}
}
