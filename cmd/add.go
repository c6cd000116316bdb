package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var flagAddDate string

var addCmd = &cobra.Command{
	Use:   "add <category> <amount> <label...>",
	Short: "Record a transaction",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "Transaction date (YYYY-MM-DD, default now)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, args []string) error {
	amount, err := cli.ParseAmount(args[1])
	if err != nil {
		return err
	}
	label := strings.TrimSpace(strings.Join(args[2:], " "))
	if label == "" {
		return errors.New("label must not be empty")
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

	date := l.Now()
	if flagAddDate != "" {
		date, err = time.ParseInLocation("2006-01-02", flagAddDate, time.Local)
		if err != nil {
			return fmt.Errorf("parsing --date: %w", err)
		}
	}

	tx := model.Transaction{
		ID:         uuid.NewString(),
		CategoryID: c.ID,
		Label:      label,
		Amount:     amount,
		Date:       date,
	}
	l.AddTransaction(tx)
	if err := saveLedger(db, l); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"id": tx.ID, "category": c.ID, "amount": tx.Amount.String()}).Info("transaction added")

	fmt.Printf("  Added %q for %s to %s. %s remaining this week.\n",
		label, cli.FormatMoney(tx.Amount), c.Name, cli.FormatMoney(l.RemainingThisWeek()))
	return nil
}
