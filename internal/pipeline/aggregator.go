// Package pipeline computes the weekly spend aggregates the ledger, advisor and
// dashboards rely on. Every function takes "now" explicitly and recomputes the week
// window on each call.
package pipeline

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finmate/internal/model"
)

var hundred = decimal.NewFromInt(100)

// ThisWeek returns the transactions whose calendar date falls inside the week
// containing now, preserving their order.
func ThisWeek(txs []model.Transaction, now time.Time) []model.Transaction {
	var result []model.Transaction
	for _, tx := range txs {
		if InWeek(tx.Date, now) {
			result = append(result, tx)
		}
	}
	return result
}

// SpendByCategory sums this week's transactions for one category. Zero if none match.
func SpendByCategory(txs []model.Transaction, id model.CategoryID, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range ThisWeek(txs, now) {
		if tx.CategoryID == id {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// SpendMap returns this week's spend keyed by category id, including ids that no
// configured category carries.
func SpendMap(txs []model.Transaction, now time.Time) map[model.CategoryID]decimal.Decimal {
	spend := make(map[model.CategoryID]decimal.Decimal)
	for _, tx := range ThisWeek(txs, now) {
		spend[tx.CategoryID] = spend[tx.CategoryID].Add(tx.Amount)
	}
	return spend
}

// TotalSpend sums every transaction of the week regardless of category.
func TotalSpend(txs []model.Transaction, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range ThisWeek(txs, now) {
		total = total.Add(tx.Amount)
	}
	return total
}

// Remaining is budget minus this week's total spend. It goes negative when over budget.
func Remaining(budget decimal.Decimal, txs []model.Transaction, now time.Time) decimal.Decimal {
	return budget.Sub(TotalSpend(txs, now))
}

// ProgressPercent returns spent/limit*100, or 0 when limit is not positive.
func ProgressPercent(spent, limit decimal.Decimal) decimal.Decimal {
	if !limit.IsPositive() {
		return decimal.Zero
	}
	return spent.Div(limit).Mul(hundred)
}

// ClampPercent bounds a percentage to [0, 100] for display.
func ClampPercent(pct decimal.Decimal) decimal.Decimal {
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// ClampRemaining returns max(0, limit-spent) for display.
func ClampRemaining(limit, spent decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, limit.Sub(spent))
}

// Summarize computes the week-level summary.
func Summarize(budget decimal.Decimal, txs []model.Transaction, now time.Time) model.WeekSummary {
	start, end := WeekWindow(now)
	week := ThisWeek(txs, now)

	stats := model.WeekSummary{
		WeekStart:    start,
		WeekEnd:      end,
		WeeklyBudget: budget,
		Spent:        decimal.Zero,
		Transactions: len(week),
	}

	activeDays := make(map[string]struct{})
	for _, tx := range week {
		stats.Spent = stats.Spent.Add(tx.Amount)
		activeDays[tx.Date.In(now.Location()).Format("2006-01-02")] = struct{}{}
	}
	stats.ActiveDays = len(activeDays)
	stats.Remaining = budget.Sub(stats.Spent)

	return stats
}

// AggregateCategories computes per-category figures in category order.
func AggregateCategories(categories []model.Category, txs []model.Transaction, now time.Time) []model.CategoryStats {
	week := ThisWeek(txs, now)

	result := make([]model.CategoryStats, 0, len(categories))
	for _, c := range categories {
		cs := model.CategoryStats{Category: c, Spent: decimal.Zero}
		for _, tx := range week {
			if tx.CategoryID == c.ID {
				cs.Spent = cs.Spent.Add(tx.Amount)
				cs.Transactions++
			}
		}
		cs.Remaining = c.WeeklyLimit.Sub(cs.Spent)
		cs.Percent = ProgressPercent(cs.Spent, c.WeeklyLimit)
		result = append(result, cs)
	}
	return result
}

// AggregateDays returns seven entries, Monday first, with the spend of each day
// of the current week. Days without spend are present with zero.
func AggregateDays(txs []model.Transaction, now time.Time) []model.DailyStats {
	start, _ := WeekWindow(now)
	loc := now.Location()

	days := make([]model.DailyStats, 7)
	for i := range days {
		days[i] = model.DailyStats{Date: start.AddDate(0, 0, i), Spent: decimal.Zero}
	}

	for _, tx := range ThisWeek(txs, now) {
		idx := int(dayOf(tx.Date, loc).Sub(start).Hours()+12) / 24 // DST-safe rounding
		if idx < 0 || idx > 6 {
			continue
		}
		days[idx].Spent = days[idx].Spent.Add(tx.Amount)
		days[idx].Transactions++
	}
	return days
}

// FilterByCategory returns the transactions recorded against id.
func FilterByCategory(txs []model.Transaction, id model.CategoryID) []model.Transaction {
	var result []model.Transaction
	for _, tx := range txs {
		if tx.CategoryID == id {
			result = append(result, tx)
		}
	}
	return result
}

// NewestFirst returns a copy of txs sorted by date, most recent first.
// Ties keep their recording order reversed so later entries show first.
func NewestFirst(txs []model.Transaction) []model.Transaction {
	sorted := make([]model.Transaction, len(txs))
	for i, tx := range txs {
		sorted[len(txs)-1-i] = tx
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

// Recent returns up to n of the newest transactions.
func Recent(txs []model.Transaction, n int) []model.Transaction {
	sorted := NewestFirst(txs)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
