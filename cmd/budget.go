package cmd

import (
	"fmt"

	"github.com/theirongolddev/finmate/internal/cli"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show or change the weekly budget",
	RunE:  runBudget,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <amount>",
	Short: "Set the weekly budget and re-proportion every category",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetSet,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, _ []string) error {
	l, db, err := openLedger()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if !l.Configured() {
		fmt.Println("  No weekly budget set.")
		return nil
	}
	fmt.Printf("  Weekly budget: %s\n", cli.FormatMoney(l.WeeklyBudget()))
	fmt.Printf("  Remaining:     %s\n", cli.Money(l.RemainingThisWeek()))
	return nil
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	amount, err := cli.ParseBudget(args[0])
	if err != nil {
		return err
	}

	l, db, err := openLedger()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	l.SetWeeklyBudget(amount)
	if err := saveLedger(db, l); err != nil {
		return err
	}
	log.WithField("amount", amount.String()).Info("weekly budget set")

	fmt.Printf("  Weekly budget set to %s\n\n", cli.FormatMoney(amount))
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Limit"},
		Rows:    limitRows(l),
	}))
	return nil
}
