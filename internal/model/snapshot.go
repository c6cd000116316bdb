package model

import "github.com/shopspring/decimal"

// Snapshot is a point-in-time, read-only view of a ledger handed to the advice engine.
// Spend holds this week's spend per category; categories without spend may be absent.
type Snapshot struct {
	WeeklyBudget      decimal.Decimal
	Categories        []Category
	Transactions      []Transaction
	RemainingThisWeek decimal.Decimal
	Spend             map[CategoryID]decimal.Decimal
}

// SpendByCategory returns this week's spend for id, or zero.
func (s Snapshot) SpendByCategory(id CategoryID) decimal.Decimal {
	if v, ok := s.Spend[id]; ok {
		return v
	}
	return decimal.Zero
}
