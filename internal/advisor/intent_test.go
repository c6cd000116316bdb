package advisor

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "got %s, want %s", got, want)
}

func TestParse_Plan(t *testing.T) {
	in, ok := Parse("plan dinner for $20").(PlanIntent)
	require.True(t, ok)
	assert.Equal(t, "dinner", in.Thing)
	assertDecimal(t, "20", in.Amount)

	in, ok = Parse("Can you plan a big lunch for 12.50 tomorrow").(PlanIntent)
	require.True(t, ok)
	assert.Equal(t, "a big lunch", in.Thing)
	assertDecimal(t, "12.50", in.Amount)
}

func TestParse_Reallocate(t *testing.T) {
	in, ok := Parse("reallocate $15 from Social to Food").(ReallocateIntent)
	require.True(t, ok)
	assertDecimal(t, "15", in.Amount)
	assert.Equal(t, "Social", in.From)
	assert.Equal(t, "Food", in.To)

	for _, verb := range []string{"move", "Transfer"} {
		in, ok = Parse(verb + " 10 from transport to eating out!").(ReallocateIntent)
		require.True(t, ok, verb)
		assert.Equal(t, "transport", in.From)
		assert.Equal(t, "eating out", in.To)
	}
}

func TestParse_Query(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"How much can I spend on Food?", "Food"},
		{"how much can i spend on coffee", "coffee"},
		{"What's my transport budget?", "transport"},
		{"whats my social budget", "social"},
		{"How much left for Other?", "Other"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			in, ok := Parse(tt.text).(QueryIntent)
			require.True(t, ok)
			assert.Equal(t, tt.want, in.Category)
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	for _, text := range []string{"hello", "", "   ", "plan something", "move money around"} {
		assert.Equal(t, UnknownIntent{}, Parse(text), text)
		assert.Equal(t, "unknown", RuleName(text), text)
	}
}

func TestParse_PrecedenceIsPlanFirst(t *testing.T) {
	text := "move $5 from food to social and plan lunch for $8"
	assert.IsType(t, PlanIntent{}, Parse(text))
	assert.Equal(t, "plan", RuleName(text))
}

func TestIntentKinds(t *testing.T) {
	assert.Equal(t, "plan", PlanIntent{}.Kind())
	assert.Equal(t, "reallocate", ReallocateIntent{}.Kind())
	assert.Equal(t, "query", QueryIntent{}.Kind())
	assert.Equal(t, "unknown", UnknownIntent{}.Kind())
}
