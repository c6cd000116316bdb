package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finmate/internal/advisor"
	"github.com/theirongolddev/finmate/internal/chat"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var flagAskApply int

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Ask the budget assistant a single question",
	Example: `  finmate ask "How much can I spend on Food?"
  finmate ask plan dinner for \$20 --apply 1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVar(&flagAskApply, "apply", 0, "Run quick action N from the reply")
	rootCmd.AddCommand(askCmd)
}

var (
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3AA99F")).Bold(true)
	actionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#D0A215"))
)

func runAsk(_ *cobra.Command, args []string) error {
	l, db, err := openLedger()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := requireBudget(l); err != nil {
		return err
	}

	session := chat.New(l, chat.WithLogger(log))
	replies := session.Ask(strings.Join(args, " "))
	printTurns(replies)

	if flagAskApply == 0 {
		return nil
	}

	actions := lastActions(replies)
	if flagAskApply < 1 || flagAskApply > len(actions) {
		return fmt.Errorf("--apply %d: reply has %d quick actions", flagAskApply, len(actions))
	}

	out, err := session.Run(actions[flagAskApply-1])
	if err != nil {
		return err
	}
	printTurns(out)
	return saveLedger(db, l)
}

func printTurns(turns []advisor.ChatTurn) {
	for _, t := range turns {
		printTurn(t)
	}
}

func printTurn(t advisor.ChatTurn) {
	prefix := "  you"
	if t.Role == advisor.RoleAssistant {
		prefix = assistantStyle.Render("  finmate")
	}
	fmt.Println()
	fmt.Printf("%s:\n", prefix)
	for _, line := range strings.Split(t.Text, "\n") {
		fmt.Printf("    %s\n", line)
	}
	for i, qa := range t.QuickActions {
		fmt.Printf("    %s %s\n", actionStyle.Render(fmt.Sprintf("[%d]", i+1)), qa.Label)
	}
}

// lastActions returns the quick actions of the last turn that has any.
func lastActions(turns []advisor.ChatTurn) []advisor.QuickAction {
	for i := len(turns) - 1; i >= 0; i-- {
		if len(turns[i].QuickActions) > 0 {
			return turns[i].QuickActions
		}
	}
	return nil
}
