package advisor

import (
	"strings"

	"github.com/theirongolddev/finmate/internal/model"
)

// keywordRule maps a canonical category name to the words that imply it.
type keywordRule struct {
	name     model.CategoryName
	keywords []string
}

// Checked in order; the first category with a contained keyword wins.
var keywordTable = []keywordRule{
	{model.NameFood, []string{"dinner", "lunch", "breakfast", "snack", "snacks", "meal", "meals", "eating", "restaurant", "cafe", "coffee"}},
	{model.NameTransport, []string{"transportation", "travel", "traveling", "uber", "lyft", "bus", "train", "gas", "fuel"}},
	{model.NameSocial, []string{"socializing", "entertainment", "party", "parties", "friends", "date", "dating"}},
	{model.NameOther, []string{"misc", "miscellaneous", "general", "stuff", "things", "shopping", "personal"}},
}

// Resolve maps a free-text category reference to one of categories.
// An exact case-insensitive name match wins; otherwise the keyword table is
// consulted by substring. The bool is false when nothing matches.
func Resolve(categories []model.Category, text string) (model.Category, bool) {
	ref := strings.ToLower(strings.TrimSpace(text))

	for _, c := range categories {
		if strings.ToLower(string(c.Name)) == ref {
			return c, true
		}
	}

	for _, rule := range keywordTable {
		if !containsAny(ref, rule.keywords) {
			continue
		}
		if c, ok := byName(categories, rule.name); ok {
			return c, true
		}
	}
	return model.Category{}, false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func byName(categories []model.Category, name model.CategoryName) (model.Category, bool) {
	for _, c := range categories {
		if strings.EqualFold(string(c.Name), string(name)) {
			return c, true
		}
	}
	return model.Category{}, false
}
