package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/pipeline"
	"github.com/theirongolddev/finmate/internal/tui/components"
	"github.com/theirongolddev/finmate/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// categoriesState tracks the categories tab: a cursor over the category
// list and an inline limit editor.
type categoriesState struct {
	cursor  int
	editing bool
	input   textinput.Model
	err     error
}

func newCategoriesState() categoriesState {
	return categoriesState{input: newAmountInput()}
}

func newAmountInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 16
	ti.Width = 14
	ti.Prompt = "$"
	return ti
}

func (s *categoriesState) moveCursor(delta, n int) {
	s.cursor += delta
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (a App) categoriesKey(key string) (tea.Model, tea.Cmd, bool) {
	cats := a.ledger.Categories()
	switch key {
	case "j", "down":
		a.cats.moveCursor(1, len(cats))
	case "k", "up":
		a.cats.moveCursor(-1, len(cats))
	case "g":
		a.cats.cursor = 0
	case "G":
		a.cats.moveCursor(len(cats), len(cats))
	case "enter", "e":
		if len(cats) == 0 {
			return a, nil, true
		}
		a.cats.editing = true
		a.cats.err = nil
		a.cats.input = newAmountInput()
		a.cats.input.SetValue(cli.FormatAmount(cats[a.cats.cursor].WeeklyLimit))
		a.cats.input.CursorEnd()
		a.cats.input.Focus()
		return a, a.cats.input.Cursor.BlinkCmd(), true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) updateCategoryInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		limit, err := cli.ParseMoney(a.cats.input.Value())
		if err == nil && limit.IsNegative() {
			err = errors.New("limit cannot be negative")
		}
		if err != nil {
			a.cats.err = err
			return a, nil
		}
		cats := a.ledger.Categories()
		if a.cats.cursor < len(cats) {
			c := cats[a.cats.cursor]
			a.ledger.UpdateCategoryLimit(c.ID, limit.Round(2))
			a.persist()
			a.log.WithFields(logrus.Fields{
				"category": c.ID,
				"limit":    limit.String(),
			}).Info("category limit updated")
		}
		a.cats.editing = false
		a.cats.err = nil
		return a, nil
	case "esc":
		a.cats.editing = false
		a.cats.err = nil
		return a, nil
	}

	var cmd tea.Cmd
	a.cats.input, cmd = a.cats.input.Update(msg)
	return a, cmd
}

func (a App) renderCategoriesTab(cw int) string {
	t := theme.Active
	stats := a.ledger.CategoryStats()
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	const nameW, colW = 12, 12
	var list strings.Builder
	list.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s %*s %*s %*s %*s",
		nameW, "Category", colW, "Limit", colW, "Spent", colW, "Remaining", 8, "Used")))
	list.WriteString("\n")

	total := decimal.Zero
	for i, cs := range stats {
		total = total.Add(cs.Category.WeeklyLimit)
		remaining := pipeline.ClampRemaining(cs.Category.WeeklyLimit, cs.Spent)
		pct := pipeline.ClampPercent(cs.Percent)

		limitCol := fmt.Sprintf("%*s", colW, cli.FormatMoney(cs.Category.WeeklyLimit))
		if a.cats.editing && i == a.cats.cursor {
			limitCol = " " + a.cats.input.View()
		}

		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(cs.Category.Color)).Background(t.Surface).Render("●")
		line := fmt.Sprintf("%-*s %s %*s %*s %*s",
			nameW-2, truncStr(string(cs.Category.Name), nameW-2),
			limitCol,
			colW, cli.FormatMoney(cs.Spent),
			colW, cli.FormatMoney(remaining),
			8, cli.FormatPercent(pct))

		if i == a.cats.cursor {
			list.WriteString(markerStyle.Render("▸ "))
			list.WriteString(dot)
			list.WriteString(selStyle.Render(" " + line))
		} else {
			list.WriteString(rowStyle.Render("  "))
			list.WriteString(dot)
			list.WriteString(rowStyle.Render(" " + line))
		}
		list.WriteString("\n")
	}

	budget := a.ledger.WeeklyBudget()
	list.WriteString("\n")
	if !total.Equal(budget) {
		list.WriteString(warnStyle.Render(fmt.Sprintf("Limits add up to %s, weekly budget is %s",
			cli.FormatMoney(total), cli.FormatMoney(budget))))
		list.WriteString("\n")
	}
	if a.cats.err != nil {
		list.WriteString(warnStyle.Render("Invalid limit: " + a.cats.err.Error()))
		list.WriteString("\n")
	}
	if a.cats.editing {
		list.WriteString(dimStyle.Render("[Enter] save  [Esc] cancel"))
	} else {
		list.WriteString(dimStyle.Render("[j/k] select  [Enter] edit limit"))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Categories", list.String(), cw))
	b.WriteString("\n")

	// This week's transactions for the selected category
	if a.cats.cursor < len(stats) {
		sel := stats[a.cats.cursor].Category
		txs := pipeline.NewestFirst(pipeline.FilterByCategory(
			pipeline.ThisWeek(a.ledger.Transactions(), a.ledger.Now()), sel.ID))
		b.WriteString(components.ContentCard(
			fmt.Sprintf("%s this week (%d)", sel.Name, len(txs)),
			transactionList(txs, []model.Category{sel}, innerW),
			cw,
		))
	}

	return b.String()
}
