package advisor

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finmate/internal/model"
)

// Role identifies who produced a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is one message in a conversation.
type ChatTurn struct {
	Role         Role
	Text         string
	QuickActions []QuickAction
}

// QuickAction is a labelled suggestion the caller may execute.
type QuickAction struct {
	Label  string
	Action Action
}

// Action is the typed payload of a quick action.
type Action interface {
	Kind() string
}

// Action kinds.
const (
	KindSuggestAmount         = "suggest_amount"
	KindSuggestReallocate     = "suggest_reallocate"
	KindAddPlannedTransaction = "add_planned_transaction"
	KindReallocate            = "reallocate"
	KindShowCategories        = "show_categories"
	KindSuggestPlan           = "suggest_plan"
	KindSuggestQuery          = "suggest_query"
)

// SuggestAmount proposes planning thing at a smaller amount.
type SuggestAmount struct {
	Thing  string
	Amount decimal.Decimal
}

// SuggestReallocate proposes moving money between categories by name.
type SuggestReallocate struct {
	Amount decimal.Decimal
	From   model.CategoryName
	To     model.CategoryName
}

// AddPlannedTransaction records thing as spend against a category.
type AddPlannedTransaction struct {
	Thing      string
	Amount     decimal.Decimal
	CategoryID model.CategoryID
}

// Reallocate moves Amount of limit from one category to another.
type Reallocate struct {
	Amount decimal.Decimal
	From   model.CategoryID
	To     model.CategoryID
}

// ShowCategories asks the caller to list categories.
type ShowCategories struct{}

// SuggestPlan proposes planning something in a category.
type SuggestPlan struct {
	Amount   decimal.Decimal
	Category model.CategoryName
}

// SuggestQuery proposes checking a category's budget.
type SuggestQuery struct {
	Category model.CategoryName
}

func (SuggestAmount) Kind() string         { return KindSuggestAmount }
func (SuggestReallocate) Kind() string     { return KindSuggestReallocate }
func (AddPlannedTransaction) Kind() string { return KindAddPlannedTransaction }
func (Reallocate) Kind() string            { return KindReallocate }
func (ShowCategories) Kind() string        { return KindShowCategories }
func (SuggestPlan) Kind() string           { return KindSuggestPlan }
func (SuggestQuery) Kind() string          { return KindSuggestQuery }
