package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeekSummary holds the top-level aggregate for the current week.
type WeekSummary struct {
	WeekStart time.Time
	WeekEnd   time.Time

	WeeklyBudget decimal.Decimal
	Spent        decimal.Decimal
	Remaining    decimal.Decimal // unclamped, negative when over budget

	Transactions int
	ActiveDays   int
}

// CategoryStats holds this week's figures for a single category.
// Remaining and Percent are raw; renderers clamp them.
type CategoryStats struct {
	Category     Category
	Spent        decimal.Decimal
	Remaining    decimal.Decimal
	Percent      decimal.Decimal
	Transactions int
}

// DailyStats holds spend for a single calendar day of the week.
type DailyStats struct {
	Date         time.Time
	Spent        decimal.Decimal
	Transactions int
}
