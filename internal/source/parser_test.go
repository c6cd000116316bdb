package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/finmate/internal/model"
)

// writeImport creates a temp JSONL file and returns its path.
func writeImport(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "import.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func testOptions() Options {
	n := 0
	return Options{
		Categories: model.DefaultCategories(),
		Location:   time.UTC,
		NewID: func() string {
			n++
			return "gen-" + string(rune('0'+n))
		},
	}
}

func TestParseFile_ValidEntries(t *testing.T) {
	path := writeImport(t,
		`{"id":"a1","category":"food","label":"Coffee","amount":5.5,"date":"2026-10-19T08:00:00+02:00"}`,
		``,
		`{"category":"Transport","label":"Uber","amount":"12.00","date":"2026-10-20"}`,
	)

	result := ParseFile(path, testOptions())
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.ParseErrors != 0 {
		t.Fatalf("ParseErrors = %d, want 0 (%v)", result.ParseErrors, result.Errors)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(result.Transactions))
	}

	first := result.Transactions[0]
	if first.ID != "a1" || first.CategoryID != model.CategoryFood || first.Label != "Coffee" {
		t.Errorf("first = %+v", first)
	}
	if first.Amount.String() != "5.5" {
		t.Errorf("Amount = %s, want 5.5", first.Amount)
	}

	second := result.Transactions[1]
	if second.ID != "gen-1" {
		t.Errorf("ID = %q, want generated gen-1", second.ID)
	}
	if second.CategoryID != model.CategoryTransport {
		t.Errorf("CategoryID = %q, want transport (matched by name)", second.CategoryID)
	}
	want := time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC)
	if !second.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", second.Date, want)
	}
}

func TestParseFile_SkipsInvalidLines(t *testing.T) {
	path := writeImport(t,
		`not json`,
		`{"category":"rent","label":"May","amount":900,"date":"2026-10-19"}`,
		`{"category":"food","label":"  ","amount":3,"date":"2026-10-19"}`,
		`{"category":"food","label":"Refund","amount":-3,"date":"2026-10-19"}`,
		`{"category":"food","label":"No amount","date":"2026-10-19"}`,
		`{"category":"food","label":"Bad date","amount":3,"date":"19/10/2026"}`,
		`{"category":"other","label":"Socks","amount":"8.999","date":"2026-10-21"}`,
	)

	result := ParseFile(path, testOptions())
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.ParseErrors != 6 {
		t.Errorf("ParseErrors = %d, want 6", result.ParseErrors)
	}
	if len(result.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(result.Transactions))
	}
	if got := result.Transactions[0].Amount.String(); got != "9" {
		t.Errorf("Amount = %s, want 9 (rounded to cents)", got)
	}

	if result.Errors[0].Line != 1 {
		t.Errorf("first error line = %d, want 1", result.Errors[0].Line)
	}
	if !errors.Is(result.Errors[1], ErrInvalidEntry) {
		t.Errorf("line 2 error = %v, want ErrInvalidEntry", result.Errors[1])
	}
	if !strings.HasPrefix(result.Errors[1].Error(), "line 2: ") {
		t.Errorf("error text = %q", result.Errors[1].Error())
	}
}

func TestParseFile_SubCentAmounts(t *testing.T) {
	tests := []struct {
		amount string
		want   string // empty when the line is skipped
	}{
		{`"0.004"`, ""},
		{`0.004`, ""},
		{`"0.005"`, "0.01"},
		{`"0.01"`, "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			path := writeImport(t,
				`{"category":"food","label":"Gum","amount":`+tt.amount+`,"date":"2026-10-19"}`)
			result := ParseFile(path, testOptions())

			if tt.want == "" {
				if len(result.Transactions) != 0 || result.ParseErrors != 1 {
					t.Fatalf("imported %d, skipped %d; want 0 and 1", len(result.Transactions), result.ParseErrors)
				}
				if !errors.Is(result.Errors[0], ErrInvalidEntry) {
					t.Errorf("error = %v, want ErrInvalidEntry", result.Errors[0])
				}
				return
			}
			if len(result.Transactions) != 1 {
				t.Fatalf("got %d transactions, want 1 (%v)", len(result.Transactions), result.Errors)
			}
			if got := result.Transactions[0].Amount.StringFixed(2); got != tt.want {
				t.Errorf("Amount = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseFile_DuplicateIDsWithinFile(t *testing.T) {
	path := writeImport(t,
		`{"id":"a","category":"food","label":"Coffee","amount":3,"date":"2026-10-19"}`,
		`{"id":"a","category":"food","label":"Coffee","amount":3,"date":"2026-10-19"}`,
		`{"id":"b","category":"food","label":"Tea","amount":2,"date":"2026-10-19"}`,
	)

	result := ParseFile(path, testOptions())
	if len(result.Transactions) != 2 || result.ParseErrors != 1 {
		t.Fatalf("imported %d, skipped %d; want 2 and 1", len(result.Transactions), result.ParseErrors)
	}
	if result.Errors[0].Line != 2 || !errors.Is(result.Errors[0], ErrInvalidEntry) {
		t.Errorf("error = %v, want line 2 ErrInvalidEntry", result.Errors[0])
	}
}

func TestParseFile_ReimportSkipsKnownIDs(t *testing.T) {
	path := writeImport(t,
		`{"id":"a","category":"food","label":"Coffee","amount":3,"date":"2026-10-19"}`,
		`{"id":"b","category":"food","label":"Tea","amount":2,"date":"2026-10-19"}`,
	)

	opts := testOptions()
	opts.Seen = map[string]bool{}

	first := ParseFile(path, opts)
	if len(first.Transactions) != 2 || first.ParseErrors != 0 {
		t.Fatalf("first import: %d imported, %d skipped", len(first.Transactions), first.ParseErrors)
	}
	if !opts.Seen["a"] || !opts.Seen["b"] {
		t.Errorf("Seen = %v, want a and b recorded", opts.Seen)
	}

	second := ParseFile(path, opts)
	if len(second.Transactions) != 0 || second.ParseErrors != 2 {
		t.Errorf("second import: %d imported, %d skipped; want 0 and 2",
			len(second.Transactions), second.ParseErrors)
	}
}

func TestParseFile_MissingFile(t *testing.T) {
	result := ParseFile(filepath.Join(t.TempDir(), "nope.jsonl"), testOptions())
	if result.Err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jsonl", "a.jsonl", "notes.txt", filepath.Join("sub", "c.jsonl")} {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.jsonl"),
		filepath.Join(dir, "b.jsonl"),
		filepath.Join(dir, "sub", "c.jsonl"),
	}
	if strings.Join(files, ",") != strings.Join(want, ",") {
		t.Errorf("ScanDir = %v, want %v", files, want)
	}

	single, err := ScanDir(want[0])
	if err != nil || len(single) != 1 || single[0] != want[0] {
		t.Errorf("ScanDir(file) = %v, %v", single, err)
	}
}
