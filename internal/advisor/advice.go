package advisor

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/pipeline"
)

var (
	shortfallReallocation = decimal.NewFromInt(15)
	splitReallocation     = decimal.NewFromInt(20)
	suggestedPlanCap      = decimal.NewFromInt(25)
	defaultPlanAmount     = decimal.NewFromInt(20)
)

const helpText = "I understand you want help with budgeting! I can help you:\n\n" +
	"• Plan expenses: \"Plan dinner for $20 tomorrow\"\n" +
	"• Reallocate money: \"Reallocate $15 from Social to Food\"\n" +
	"• Check budgets: \"How much can I spend on Food?\"\n\n" +
	"What would you like to do?"

// Simulate classifies text and answers it against snap. It always returns a
// single assistant turn.
func Simulate(text string, snap model.Snapshot) []ChatTurn {
	var turn ChatTurn
	switch in := Parse(text).(type) {
	case PlanIntent:
		turn = planResponse(in, snap)
	case ReallocateIntent:
		turn = reallocateResponse(in, snap)
	case QueryIntent:
		turn = queryResponse(in, snap)
	default:
		turn = helpResponse()
	}
	return []ChatTurn{turn}
}

// DefaultActions are the suggestions offered when the assistant has nothing
// more specific to say.
func DefaultActions() []QuickAction {
	return []QuickAction{
		{Label: "Plan dinner for $20", Action: SuggestPlan{Amount: defaultPlanAmount, Category: model.NameFood}},
		{Label: "Check Food budget", Action: SuggestQuery{Category: model.NameFood}},
		showCategoriesAction(),
	}
}

func planResponse(in PlanIntent, snap model.Snapshot) ChatTurn {
	remaining := snap.RemainingThisWeek

	if in.Amount.GreaterThan(remaining) {
		return assistant(
			fmt.Sprintf("I'd love to help you plan %s for %s, but you only have %s remaining this week. Here are some suggestions:\n\n"+
				"• Reduce the budget to %s\n"+
				"• Wait until next week when your budget resets\n"+
				"• Reallocate money from other categories",
				in.Thing, money(in.Amount), money(remaining), money(remaining)),
			QuickAction{
				Label:  fmt.Sprintf("Plan %s for %s", in.Thing, money(remaining)),
				Action: SuggestAmount{Thing: in.Thing, Amount: remaining},
			},
			QuickAction{
				Label:  "Reallocate $15 from Social to Food",
				Action: SuggestReallocate{Amount: shortfallReallocation, From: model.NameSocial, To: model.NameFood},
			},
		)
	}

	// Plans are always budgeted against Food, whatever the thing is.
	food, ok := Resolve(snap.Categories, "food")
	if ok {
		room := food.WeeklyLimit.Sub(snap.SpendByCategory(food.ID))
		if in.Amount.GreaterThan(room) {
			return assistant(
				fmt.Sprintf("Great idea to plan %s for %s! However, you only have %s left in your Food budget this week. You could:\n\n"+
					"• Use %s from Food and %s from other categories\n"+
					"• Reallocate some money to Food first",
					in.Thing, money(in.Amount), money(room), money(room), money(in.Amount.Sub(room))),
				QuickAction{
					Label:  fmt.Sprintf("Use %s from Food", money(room)),
					Action: SuggestAmount{Thing: in.Thing, Amount: room},
				},
				QuickAction{
					Label:  "Reallocate $20 to Food",
					Action: SuggestReallocate{Amount: splitReallocation, From: model.NameSocial, To: model.NameFood},
				},
			)
		}
	}

	categoryID := model.CategoryFood
	if ok {
		categoryID = food.ID
	}
	return assistant(
		fmt.Sprintf("Perfect! You can definitely plan %s for %s. You have %s remaining this week, so this fits well within your budget. "+
			"I recommend adding this as a planned expense to track it properly.",
			in.Thing, money(in.Amount), money(remaining)),
		QuickAction{
			Label:  fmt.Sprintf("Add %s to Food category", in.Thing),
			Action: AddPlannedTransaction{Thing: in.Thing, Amount: in.Amount, CategoryID: categoryID},
		},
	)
}

func reallocateResponse(in ReallocateIntent, snap model.Snapshot) ChatTurn {
	from, ok := Resolve(snap.Categories, in.From)
	if !ok {
		return notFound(in.From, snap.Categories)
	}
	to, ok := Resolve(snap.Categories, in.To)
	if !ok {
		return notFound(in.To, snap.Categories)
	}

	spent := snap.SpendByCategory(from.ID)
	room := from.WeeklyLimit.Sub(spent)

	if in.Amount.GreaterThan(room) {
		return assistant(
			fmt.Sprintf("You can't reallocate %s from %s because you only have %s remaining in that category. "+
				"You've already spent %s of your %s limit.",
				money(in.Amount), from.Name, money(room), money(spent), money(from.WeeklyLimit)),
			QuickAction{
				Label:  fmt.Sprintf("Reallocate %s instead", money(room)),
				Action: Reallocate{Amount: room, From: from.ID, To: to.ID},
			},
		)
	}

	return assistant(
		fmt.Sprintf("Great idea! I can help you reallocate %s from %s to %s. This will give you more flexibility in your %s budget.",
			money(in.Amount), from.Name, to.Name, to.Name),
		QuickAction{
			Label:  fmt.Sprintf("Reallocate %s from %s to %s", money(in.Amount), from.Name, to.Name),
			Action: Reallocate{Amount: in.Amount, From: from.ID, To: to.ID},
		},
	)
}

func queryResponse(in QueryIntent, snap model.Snapshot) ChatTurn {
	cat, ok := Resolve(snap.Categories, in.Category)
	if !ok {
		return notFound(in.Category, snap.Categories)
	}

	spent := snap.SpendByCategory(cat.ID)
	remaining := cat.WeeklyLimit.Sub(spent)
	pct := pipeline.ProgressPercent(spent, cat.WeeklyLimit)
	suggested := decimal.Min(remaining, suggestedPlanCap)

	return assistant(
		fmt.Sprintf("Here's your %s budget status:\n\n"+
			"• Weekly limit: %s\n"+
			"• Spent so far: %s (%s%%)\n"+
			"• Remaining: %s\n\n"+
			"You can spend up to %s more on %s this week.",
			cat.Name, money(cat.WeeklyLimit), money(spent), pct.StringFixed(1), money(remaining),
			money(remaining), cat.Name),
		QuickAction{
			Label:  fmt.Sprintf("Plan something for %s", money(suggested)),
			Action: SuggestPlan{Amount: suggested, Category: cat.Name},
		},
	)
}

func helpResponse() ChatTurn {
	return assistant(helpText, DefaultActions()...)
}

func notFound(ref string, categories []model.Category) ChatTurn {
	return assistant(
		fmt.Sprintf("I couldn't find a category matching %q. Your categories are: %s.",
			ref, strings.Join(model.CategoryNames(categories), ", ")),
		showCategoriesAction(),
	)
}

func showCategoriesAction() QuickAction {
	return QuickAction{Label: "Show my categories", Action: ShowCategories{}}
}

func assistant(text string, actions ...QuickAction) ChatTurn {
	return ChatTurn{Role: RoleAssistant, Text: text, QuickActions: actions}
}

// money renders an amount as "$" plus exactly two decimals.
func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
