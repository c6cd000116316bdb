package cmd

import (
	"fmt"

	"github.com/theirongolddev/finmate/internal/config"
	"github.com/theirongolddev/finmate/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", flagDataDir)
	fmt.Printf("    Database:       %s\n", dbPath())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Chat]")
	fmt.Printf("    Reply delay: %dms\n", cfg.Chat.ReplyDelayMs)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Printf("    File:  %s\n", cfg.LogFile(flagDataDir))
	fmt.Println()

	if n, err := transactionCount(); err == nil {
		fmt.Printf("  %d transactions stored.\n\n", n)
	}

	fmt.Println("  Run `finmate setup` to reconfigure.")
	return nil
}

func transactionCount() (int, error) {
	db, err := store.Open(dbPath())
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()
	return db.TransactionCount()
}
