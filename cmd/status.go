package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/pipeline"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show this week's budget at a glance",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	l, db, err := openLedger()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := requireBudget(l); err != nil {
		return err
	}

	now := l.Now()
	summary := l.Summary()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("WEEK OF %s", cli.FormatWeekRange(summary.WeekStart, summary.WeekEnd))))
	fmt.Println()

	fmt.Printf("  Weekly budget:  %s\n", cli.FormatMoney(summary.WeeklyBudget))
	fmt.Printf("  Spent:          %s  (%d transactions, %d active days)\n",
		cli.FormatMoney(summary.Spent), summary.Transactions, summary.ActiveDays)
	fmt.Printf("  Remaining:      %s\n", cli.Money(summary.Remaining))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Categories",
		Headers: []string{"Category", "Limit", "Spent", "Left", "Used"},
		Rows:    categoryRows(l.CategoryStats()),
	}))
	fmt.Println()

	days := pipeline.AggregateDays(l.Transactions(), now)
	values := make([]decimal.Decimal, len(days))
	labels := ""
	for i, d := range days {
		values[i] = d.Spent
		labels += cli.FormatDayOfWeek(d.Date.Weekday())[:1]
	}
	fmt.Printf("  Daily spend  %s\n", cli.RenderSparkline(values))
	fmt.Printf("               %s\n", cli.Muted(labels))
	fmt.Println()

	recent := pipeline.Recent(l.Transactions(), 5)
	if len(recent) > 0 {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Recent",
			Headers: []string{"Label", "Category", "Date", "Amount"},
			Rows:    transactionRows(recent, l.Categories()),
		}))
		fmt.Println()
	}

	return nil
}

// categoryRows renders per-category figures with display clamping applied.
func categoryRows(stats []model.CategoryStats) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, cs := range stats {
		rows = append(rows, []string{
			string(cs.Category.Name),
			cli.FormatMoney(cs.Category.WeeklyLimit),
			cli.FormatMoney(cs.Spent),
			cli.FormatMoney(pipeline.ClampRemaining(cs.Category.WeeklyLimit, cs.Spent)),
			cli.FormatPercent(pipeline.ClampPercent(cs.Percent)),
		})
	}
	return rows
}

func transactionRows(txs []model.Transaction, cats []model.Category) [][]string {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		name := string(tx.CategoryID)
		if c, ok := model.FindCategory(cats, tx.CategoryID); ok {
			name = string(c.Name)
		}
		rows = append(rows, []string{
			tx.Label,
			name,
			cli.FormatDate(tx.Date.In(time.Local)),
			cli.FormatMoney(tx.Amount),
		})
	}
	return rows
}
