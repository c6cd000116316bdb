package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one logged expense. Transactions are never edited once recorded.
type Transaction struct {
	ID         string
	CategoryID CategoryID // may reference a category that no longer exists
	Label      string
	Amount     decimal.Decimal
	Date       time.Time
}
