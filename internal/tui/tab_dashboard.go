package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/pipeline"
	"github.com/theirongolddev/finmate/internal/tui/components"
	"github.com/theirongolddev/finmate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const recentTransactions = 5

func (a App) renderDashboardTab(cw int) string {
	t := theme.Active
	now := a.ledger.Now()
	summary := a.ledger.Summary()
	stats := a.ledger.CategoryStats()
	var b strings.Builder

	// Row 1: metric cards
	remainingColor := t.GreenBright
	if summary.Remaining.IsNegative() {
		remainingColor = t.Red
	}
	spentPct := pipeline.ProgressPercent(summary.Spent, summary.WeeklyBudget)
	metrics := []components.Metric{
		{Label: "Weekly budget", Value: cli.FormatMoney(summary.WeeklyBudget)},
		{Label: "Spent", Value: cli.FormatMoney(summary.Spent), Note: cli.FormatPercent(spentPct) + " of budget"},
		{Label: "Remaining", Value: cli.FormatMoney(summary.Remaining), Color: remainingColor},
		{Label: "Transactions", Value: cli.FormatNumber(int64(summary.Transactions)),
			Note: fmt.Sprintf("%d active day(s)", summary.ActiveDays)},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: category progress + daily spend chart
	halves := components.LayoutRow(cw, 2)
	catW := cw
	if !a.isCompactLayout() {
		catW = halves[0]
	}
	catCard := components.ContentCard("Categories", categoryBars(stats, components.CardInnerWidth(catW)), catW)

	days := pipeline.AggregateDays(a.ledger.Transactions(), now)
	vals := make([]float64, len(days))
	labels := make([]string, len(days))
	for i, d := range days {
		vals[i] = d.Spent.InexactFloat64()
		labels[i] = cli.FormatDayOfWeek(d.Date.Weekday())
	}
	chartW := cw
	if !a.isCompactLayout() {
		chartW = halves[1]
	}
	chartCard := components.ContentCard("Daily spend",
		components.BarChart(vals, labels, t.Blue, components.CardInnerWidth(chartW), 8), chartW)

	if a.isCompactLayout() {
		b.WriteString(catCard)
		b.WriteString("\n")
		b.WriteString(chartCard)
	} else {
		b.WriteString(components.CardRow([]string{catCard, chartCard}))
	}
	b.WriteString("\n")

	// Row 3: recent transactions
	recent := pipeline.Recent(pipeline.NewestFirst(a.ledger.Transactions()), recentTransactions)
	b.WriteString(components.ContentCard("Recent transactions",
		transactionList(recent, a.ledger.Categories(), components.CardInnerWidth(cw)), cw))

	return b.String()
}

// categoryBars renders one clamped progress bar per category.
func categoryBars(stats []model.CategoryStats, innerW int) string {
	labelW := 10
	noteW := 20
	barW := innerW - labelW - noteW - 7
	if barW < 8 {
		barW = 8
	}

	lines := make([]string, len(stats))
	for i, cs := range stats {
		note := cli.FormatMoney(pipeline.ClampRemaining(cs.Category.WeeklyLimit, cs.Spent)) + " left"
		lines[i] = components.BudgetBar(string(cs.Category.Name), cs.Percent.InexactFloat64(), note, labelW, barW)
	}
	return strings.Join(lines, "\n")
}

// transactionList renders transactions as date, category, label and amount
// columns.
func transactionList(txs []model.Transaction, cats []model.Category, innerW int) string {
	t := theme.Active
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	if len(txs) == 0 {
		return dimStyle.Render("No transactions yet.")
	}

	const dateW, catW, amountW = 11, 10, 12
	labelW := innerW - dateW - catW - amountW - 3
	if labelW < 8 {
		labelW = 8
	}

	var b strings.Builder
	for i, tx := range txs {
		if i > 0 {
			b.WriteString("\n")
		}
		name := string(tx.CategoryID)
		color := t.TextMuted
		if c, ok := model.FindCategory(cats, tx.CategoryID); ok {
			name = string(c.Name)
			color = lipgloss.Color(c.Color)
		}
		catStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

		b.WriteString(dimStyle.Render(fmt.Sprintf("%-*s ", dateW, cli.FormatDate(tx.Date))))
		b.WriteString(catStyle.Render(fmt.Sprintf("%-*s ", catW, truncStr(name, catW))))
		b.WriteString(textStyle.Render(fmt.Sprintf("%-*s ", labelW, truncStr(tx.Label, labelW))))
		b.WriteString(amountStyle.Render(fmt.Sprintf("%*s", amountW, cli.FormatMoney(tx.Amount))))
	}
	return b.String()
}
