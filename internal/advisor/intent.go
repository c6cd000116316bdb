// Package advisor classifies budget questions and drafts the assistant's reply.
//
// Everything here is pure: Parse and Simulate read their inputs and return
// values, and never touch a ledger. Quick actions attached to a reply are
// instructions for the caller.
package advisor

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Intent is the classification of one user utterance. The concrete types are
// PlanIntent, ReallocateIntent, QueryIntent and UnknownIntent.
type Intent interface {
	Kind() string
}

// PlanIntent asks whether thing can be afforded at amount.
type PlanIntent struct {
	Thing  string
	Amount decimal.Decimal
}

// ReallocateIntent moves amount between two unresolved category references.
type ReallocateIntent struct {
	Amount decimal.Decimal
	From   string
	To     string
}

// QueryIntent asks for the status of one category reference.
type QueryIntent struct {
	Category string
}

// UnknownIntent is returned for anything the rules do not recognise.
type UnknownIntent struct{}

func (PlanIntent) Kind() string       { return "plan" }
func (ReallocateIntent) Kind() string { return "reallocate" }
func (QueryIntent) Kind() string      { return "query" }
func (UnknownIntent) Kind() string    { return "unknown" }

// rule is one named pattern in the parser's precedence table.
type rule struct {
	name  string
	re    *regexp.Regexp
	build func(m []string) Intent
}

const amountPat = `\$?(\d+(?:\.\d{2})?)`

// Order is precedence: plan, then reallocate, then query.
var rules = []rule{
	{
		name: "plan",
		re:   regexp.MustCompile(`(?i)plan\s+(.+?)\s+for\s+` + amountPat),
		build: func(m []string) Intent {
			return PlanIntent{Thing: strings.TrimSpace(m[1]), Amount: decimal.RequireFromString(m[2])}
		},
	},
	{
		name: "reallocate",
		re:   regexp.MustCompile(`(?i)(?:reallocate|move|transfer)\s+` + amountPat + `\s+from\s+(.+?)\s+to\s+(.+)`),
		build: func(m []string) Intent {
			return ReallocateIntent{
				Amount: decimal.RequireFromString(m[1]),
				From:   cleanRef(m[2]),
				To:     cleanRef(m[3]),
			}
		},
	},
	{
		name: "query",
		re: regexp.MustCompile(`(?i)how\s+much\s+can\s+i\s+spend\s+on\s+(.+?)\s*(?:\?|$)` +
			`|what'?s\s+my\s+(.+?)\s+budget` +
			`|how\s+much\s+left\s+for\s+(.+?)\s*(?:\?|$)`),
		build: func(m []string) Intent {
			for _, g := range m[1:] {
				if g != "" {
					return QueryIntent{Category: cleanRef(g)}
				}
			}
			return UnknownIntent{}
		},
	},
}

// Parse classifies text. It never fails: unmatched input is UnknownIntent.
func Parse(text string) Intent {
	text = strings.TrimSpace(text)
	for _, r := range rules {
		if m := r.re.FindStringSubmatch(text); m != nil {
			return r.build(m)
		}
	}
	return UnknownIntent{}
}

// RuleName reports which rule classified text, or "unknown".
func RuleName(text string) string {
	text = strings.TrimSpace(text)
	for _, r := range rules {
		if r.re.MatchString(text) {
			return r.name
		}
	}
	return "unknown"
}

func cleanRef(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "?.! ")
}
