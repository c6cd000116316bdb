package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/ledger"
	"github.com/theirongolddev/finmate/internal/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cats"},
	Short:   "List categories with this week's spend",
	RunE:    runCategories,
}

var categoriesLimitCmd = &cobra.Command{
	Use:   "limit <category> <amount>",
	Short: "Change one category's weekly limit",
	Args:  cobra.ExactArgs(2),
	RunE:  runCategoriesLimit,
}

func init() {
	categoriesCmd.AddCommand(categoriesLimitCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(_ *cobra.Command, _ []string) error {
	l, db, err := openLedger()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Categories",
		Headers: []string{"Category", "Limit", "Spent", "Left", "Used"},
		Rows:    categoryRows(l.CategoryStats()),
	}))

	total := decimal.Zero
	for _, c := range l.Categories() {
		total = total.Add(c.WeeklyLimit)
	}
	if !total.Equal(l.WeeklyBudget()) {
		fmt.Printf("  %s\n", cli.Muted(fmt.Sprintf("Limits add up to %s of a %s budget.",
			cli.FormatMoney(total), cli.FormatMoney(l.WeeklyBudget()))))
	}
	fmt.Println()
	return nil
}

func runCategoriesLimit(_ *cobra.Command, args []string) error {
	amount, err := cli.ParseMoney(args[1])
	if err != nil {
		return err
	}

	l, db, err := openLedger()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	c, ok := findCategory(l, args[0])
	if !ok {
		return fmt.Errorf("no category %q (have %s)", args[0], strings.Join(model.CategoryNames(l.Categories()), ", "))
	}

	l.UpdateCategoryLimit(c.ID, amount)
	if err := saveLedger(db, l); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"category": c.ID, "limit": amount.String()}).Info("category limit updated")

	fmt.Printf("  %s limit is now %s\n", c.Name, cli.FormatMoney(amount))
	return nil
}

// findCategory matches a category by id or case-insensitive name.
func findCategory(l *ledger.Ledger, ref string) (model.Category, bool) {
	for _, c := range l.Categories() {
		if string(c.ID) == ref || strings.EqualFold(string(c.Name), ref) {
			return c, true
		}
	}
	return model.Category{}, false
}

func limitRows(l *ledger.Ledger) [][]string {
	rows := make([][]string, 0, len(l.Categories()))
	for _, c := range l.Categories() {
		rows = append(rows, []string{string(c.Name), cli.FormatMoney(c.WeeklyLimit)})
	}
	return rows
}
