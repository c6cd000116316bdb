// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount as US dollars with grouping and two decimals.
// e.g., 1234.5 -> "$1,234.50", -5 -> "-$5.00"
func FormatMoney(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	n, err := strconv.ParseInt(whole, 10, 64)
	if err == nil {
		whole = FormatNumber(n)
	}

	s := "$" + whole + "." + frac
	if d.Round(2).IsNegative() {
		return "-" + s
	}
	return s
}

// FormatAmount formats an amount with two decimals and no currency sign,
// suitable for editing fields.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ParseMoney parses user input such as "$1,200.50" or "45".
func ParseMoney(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, ",", "")
	if clean == "" {
		return decimal.Zero, errors.New("empty amount")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

// ErrNonPositiveAmount is returned when an amount rounds to less than one cent.
var ErrNonPositiveAmount = errors.New("amount must be at least $0.01")

// ParseAmount parses a money amount rounded to cents. The rounded value must
// be positive.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := ParseMoney(s)
	if err != nil {
		return decimal.Zero, err
	}
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}
	return amount, nil
}

// ErrInvalidBudget is returned for budgets that are not a positive amount.
var ErrInvalidBudget = errors.New("please enter a valid budget amount greater than $0")

// ParseBudget parses a weekly budget in cents, rejecting anything not above zero.
func ParseBudget(s string) (decimal.Decimal, error) {
	amount, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, ErrInvalidBudget
	}
	return amount, nil
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-100 value with one decimal.
func FormatPercent(pct decimal.Decimal) string {
	return pct.StringFixed(1) + "%"
}

// FormatDayOfWeek returns a 3-letter day abbreviation.
func FormatDayOfWeek(d time.Weekday) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if d >= 0 && int(d) < len(days) {
		return days[d]
	}
	return "???"
}

// FormatDate formats a transaction date for lists, e.g. "Mon Oct 19".
func FormatDate(t time.Time) string {
	return t.Format("Mon Jan 2")
}

// FormatWeekRange formats a week window, e.g. "Oct 19 - Oct 25".
func FormatWeekRange(start, end time.Time) string {
	return start.Format("Jan 2") + " - " + end.Format("Jan 2")
}
