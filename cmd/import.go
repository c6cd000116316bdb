package cmd

import (
	"fmt"

	"github.com/theirongolddev/finmate/internal/source"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.jsonl|dir>",
	Short: "Append transactions from JSONL files",
	Long: `Each line is one transaction:

  {"category":"food","label":"Coffee","amount":"5.50","date":"2026-10-19"}

"id" is optional, "category" is an id or name, "date" is RFC3339 or YYYY-MM-DD.
Lines that cannot be imported are skipped and reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	files, err := source.ScanDir(args[0])
	if err != nil {
		return fmt.Errorf("finding import files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .jsonl files in %s", args[0])
	}

	l, db, err := openLedger()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	// ids already in the ledger, plus everything accepted so far
	seen := make(map[string]bool)
	for _, tx := range l.Transactions() {
		seen[tx.ID] = true
	}
	opts := source.Options{Categories: l.Categories(), Seen: seen}
	imported, skipped := 0, 0
	for i, path := range files {
		progress("\r  Importing [%d/%d]", i+1, len(files))

		result := source.ParseFile(path, opts)
		if result.Err != nil {
			return fmt.Errorf("reading %s: %w", path, result.Err)
		}
		for _, tx := range result.Transactions {
			l.AddTransaction(tx)
		}
		imported += len(result.Transactions)
		skipped += result.ParseErrors

		for _, le := range result.Errors {
			log.WithFields(logrus.Fields{"file": path, "line": le.Line}).Warn(le.Err.Error())
		}
		log.WithFields(logrus.Fields{
			"file":     path,
			"imported": len(result.Transactions),
			"skipped":  result.ParseErrors,
		}).Info("import file processed")
	}
	progress("\n")

	if err := saveLedger(db, l); err != nil {
		return err
	}

	fmt.Printf("  Imported %d transactions from %d files", imported, len(files))
	if skipped > 0 {
		fmt.Printf(" (%d lines skipped, see %s)", skipped, cfg.LogFile(flagDataDir))
	}
	fmt.Println()
	return nil
}
