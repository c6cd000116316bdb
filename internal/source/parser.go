// Package source reads transaction import files.
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/finmate/internal/model"
)

// ErrInvalidEntry marks a line that parsed as JSON but cannot become a transaction.
var ErrInvalidEntry = errors.New("invalid entry")

// maxReportedErrors caps ParseResult.Errors; ParseErrors keeps the full count.
const maxReportedErrors = 10

// Options control how entries become transactions.
type Options struct {
	Categories []model.Category
	Location   *time.Location // for date-only values; defaults to time.Local
	NewID      func() string  // for entries without an id; defaults to uuid

	// Seen holds ids that are already taken. Entries repeating one are
	// skipped, and ParseFile records the ids it accepts, so sharing the map
	// across files keeps a whole import unique.
	Seen map[string]bool
}

// ParseResult holds the output of parsing a single import file.
type ParseResult struct {
	Transactions []model.Transaction
	ParseErrors  int
	Errors       []LineError // first few skipped lines
	Err          error
}

// ParseFile reads a JSONL import file. Blank lines are skipped; malformed
// or invalid lines are counted and skipped.
func ParseFile(path string, opts Options) ParseResult {
	f, err := os.Open(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Seen == nil {
		opts.Seen = make(map[string]bool)
	}

	var result ParseResult
	skip := func(n int, err error) {
		result.ParseErrors++
		if len(result.Errors) < maxReportedErrors {
			result.Errors = append(result.Errors, LineError{Line: n, Err: err})
		}
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry RawEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			skip(lineNo, err)
			continue
		}

		tx, err := entry.toTransaction(opts)
		if err != nil {
			skip(lineNo, err)
			continue
		}
		if opts.Seen[tx.ID] {
			skip(lineNo, fmt.Errorf("%w: duplicate id %q", ErrInvalidEntry, tx.ID))
			continue
		}
		opts.Seen[tx.ID] = true
		result.Transactions = append(result.Transactions, tx)
	}

	if err := scanner.Err(); err != nil {
		result.Err = err
	}
	return result
}

func (e RawEntry) toTransaction(opts Options) (model.Transaction, error) {
	cat, ok := matchCategory(opts.Categories, e.Category)
	if !ok {
		return model.Transaction{}, fmt.Errorf("%w: unknown category %q", ErrInvalidEntry, e.Category)
	}
	label := strings.TrimSpace(e.Label)
	if label == "" {
		return model.Transaction{}, fmt.Errorf("%w: empty label", ErrInvalidEntry)
	}
	if !e.Amount.Valid {
		return model.Transaction{}, fmt.Errorf("%w: missing amount", ErrInvalidEntry)
	}
	amount := e.Amount.Decimal.Round(2)
	if !amount.IsPositive() {
		return model.Transaction{}, fmt.Errorf("%w: amount must be at least $0.01", ErrInvalidEntry)
	}
	date, err := parseDate(e.Date, opts.Location)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	id := strings.TrimSpace(e.ID)
	if id == "" {
		id = opts.NewID()
	}
	return model.Transaction{
		ID:         id,
		CategoryID: cat.ID,
		Label:      label,
		Amount:     amount,
		Date:       date,
	}, nil
}

// matchCategory accepts a category id or a case-insensitive display name.
func matchCategory(categories []model.Category, ref string) (model.Category, bool) {
	ref = strings.TrimSpace(ref)
	for _, c := range categories {
		if string(c.ID) == ref || strings.EqualFold(string(c.Name), ref) {
			return c, true
		}
	}
	return model.Category{}, false
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("missing date")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q", s)
	}
	return t, nil
}
