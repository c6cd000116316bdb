package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/finmate/internal/advisor"
	"github.com/theirongolddev/finmate/internal/chat"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the budget assistant (type a number to run a quick action)",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	l, db, err := openLedger()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := requireBudget(l); err != nil {
		return err
	}

	session := chat.New(l, chat.WithLogger(log))
	actions := session.Welcome().QuickActions
	printTurn(session.Transcript()[0])

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("\n  > ")
		line, readErr := reader.ReadString('\n')
		line = strings.TrimSpace(line)

		switch {
		case line == "quit" || line == "exit":
			return nil
		case line == "":
		default:
			var turns []advisor.ChatTurn
			if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= len(actions) {
				turns, err = runQuickAction(session, actions[n-1])
				if err == nil {
					err = saveLedger(db, l)
				}
				if err != nil {
					fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
				}
			} else {
				turns = session.Ask(line)
			}
			printTurns(turns)
			if a := lastActions(turns); a != nil {
				actions = a
			}
		}

		if readErr != nil {
			return nil // EOF ends the conversation
		}
	}
}

func runQuickAction(s *chat.Session, qa advisor.QuickAction) ([]advisor.ChatTurn, error) {
	out, err := s.Run(qa)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", qa.Label, err)
	}
	return out, nil
}
