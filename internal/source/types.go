package source

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// RawEntry represents a single line of a transaction import file.
type RawEntry struct {
	ID       string              `json:"id,omitempty"`
	Category string              `json:"category"`
	Label    string              `json:"label"`
	Amount   decimal.NullDecimal `json:"amount"` // JSON number or string
	Date     string              `json:"date"`   // RFC3339 or YYYY-MM-DD
}

// LineError records why a line was skipped.
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string {
	return "line " + strconv.Itoa(e.Line) + ": " + e.Err.Error()
}

func (e LineError) Unwrap() error { return e.Err }
