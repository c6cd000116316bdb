package cmd

import (
	"fmt"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagTxCategory string
	flagTxAll      bool
	flagTxLimit    int
)

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx"},
	Short:   "List transactions, newest first",
	RunE:    runTransactions,
}

func init() {
	transactionsCmd.Flags().StringVarP(&flagTxCategory, "category", "c", "", "Only this category (id or name)")
	transactionsCmd.Flags().BoolVar(&flagTxAll, "all", false, "Include every week, not just this one")
	transactionsCmd.Flags().IntVarP(&flagTxLimit, "limit", "n", 0, "Show at most n transactions")
	rootCmd.AddCommand(transactionsCmd)
}

func runTransactions(_ *cobra.Command, _ []string) error {
	l, db, err := openLedger()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	txs := l.Transactions()
	if !flagTxAll {
		txs = pipeline.ThisWeek(txs, l.Now())
	}
	if flagTxCategory != "" {
		c, ok := findCategory(l, flagTxCategory)
		if !ok {
			return fmt.Errorf("no category %q", flagTxCategory)
		}
		txs = pipeline.FilterByCategory(txs, c.ID)
	}

	limit := flagTxLimit
	if limit <= 0 {
		limit = -1
	}
	txs = pipeline.Recent(txs, limit)

	if len(txs) == 0 {
		fmt.Println("  No transactions.")
		return nil
	}

	title := "This week"
	if flagTxAll {
		title = "All transactions"
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{"Label", "Category", "Date", "Amount"},
		Rows:    transactionRows(txs, l.Categories()),
	}))
	return nil
}
