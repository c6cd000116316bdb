// Package chat runs a conversation with the budget assistant and carries out
// the quick actions the user picks.
package chat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/finmate/internal/advisor"
	"github.com/theirongolddev/finmate/internal/cli"
	"github.com/theirongolddev/finmate/internal/ledger"
	"github.com/theirongolddev/finmate/internal/model"
)

// ErrUnknownCategory is returned when a reallocation names a category the
// ledger no longer has.
var ErrUnknownCategory = errors.New("unknown category")

// ErrNonPositiveAmount is returned when a planned transaction would record
// less than one cent.
var ErrNonPositiveAmount = errors.New("amount must be at least $0.01")

// Session is one conversation bound to a ledger.
type Session struct {
	ledger *ledger.Ledger
	log    logrus.FieldLogger
	newID  func() string

	turns []advisor.ChatTurn
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for executed actions.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) { s.log = log }
}

// WithIDGenerator overrides how planned transactions get their ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// New starts an empty conversation over l.
func New(l *ledger.Ledger, opts ...Option) *Session {
	s := &Session{
		ledger: l,
		log:    logrus.StandardLogger(),
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Welcome records and returns the greeting turn.
func (s *Session) Welcome() advisor.ChatTurn {
	turn := advisor.ChatTurn{
		Role: advisor.RoleAssistant,
		Text: fmt.Sprintf("Hi! I'm your budget assistant. I can help you plan expenses, reallocate money between categories, and check your budget status.\n\n"+
			"You have %s remaining this week. How can I help?", cli.FormatMoney(s.ledger.RemainingThisWeek())),
		QuickActions: advisor.DefaultActions(),
	}
	s.turns = append(s.turns, turn)
	return turn
}

// Ask records text as a user turn and returns the assistant's reply.
// Blank input is ignored.
func (s *Session) Ask(text string) []advisor.ChatTurn {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	s.turns = append(s.turns, advisor.ChatTurn{Role: advisor.RoleUser, Text: text})

	replies := advisor.Simulate(text, s.ledger.Snapshot())
	s.turns = append(s.turns, replies...)
	s.log.WithField("intent", advisor.RuleName(text)).Debug("answered")
	return replies
}

// Run executes qa. Mutating actions change the ledger and return a
// confirmation; suggestions are replayed through Ask using their label.
func (s *Session) Run(qa advisor.QuickAction) ([]advisor.ChatTurn, error) {
	switch a := qa.Action.(type) {
	case advisor.Reallocate:
		return s.reallocate(a)
	case advisor.AddPlannedTransaction:
		return s.addPlanned(a)
	case advisor.SuggestPlan, advisor.SuggestQuery, advisor.SuggestReallocate,
		advisor.SuggestAmount, advisor.ShowCategories:
		return s.Ask(qa.Label), nil
	case nil:
		return nil, fmt.Errorf("quick action %q has no payload", qa.Label)
	default:
		return nil, fmt.Errorf("unsupported quick action %q", a.Kind())
	}
}

// Transcript returns every turn so far.
func (s *Session) Transcript() []advisor.ChatTurn {
	return append([]advisor.ChatTurn(nil), s.turns...)
}

func (s *Session) reallocate(a advisor.Reallocate) ([]advisor.ChatTurn, error) {
	from, ok := s.ledger.Category(a.From)
	if !ok {
		return nil, fmt.Errorf("reallocating from %q: %w", a.From, ErrUnknownCategory)
	}
	to, ok := s.ledger.Category(a.To)
	if !ok {
		return nil, fmt.Errorf("reallocating to %q: %w", a.To, ErrUnknownCategory)
	}

	newFrom := from.WeeklyLimit.Sub(a.Amount)
	newTo := to.WeeklyLimit.Add(a.Amount)
	s.ledger.UpdateCategoryLimit(from.ID, newFrom)
	s.ledger.UpdateCategoryLimit(to.ID, newTo)

	s.log.WithFields(logrus.Fields{
		"action": advisor.KindReallocate,
		"amount": a.Amount.String(),
		"from":   from.ID,
		"to":     to.ID,
	}).Info("reallocated")

	return s.reply(fmt.Sprintf("✅ Done! I've reallocated %s from %s to %s. Your %s limit is now %s and your %s limit is now %s.",
		cli.FormatMoney(a.Amount), from.Name, to.Name,
		from.Name, cli.FormatMoney(newFrom), to.Name, cli.FormatMoney(newTo))), nil
}

func (s *Session) addPlanned(a advisor.AddPlannedTransaction) ([]advisor.ChatTurn, error) {
	if !a.Amount.Round(2).IsPositive() {
		return nil, fmt.Errorf("adding %q: %w", a.Thing, ErrNonPositiveAmount)
	}
	tx := model.Transaction{
		ID:         s.newID(),
		CategoryID: a.CategoryID,
		Label:      a.Thing,
		Amount:     a.Amount.Round(2),
		Date:       s.ledger.Now(),
	}
	s.ledger.AddTransaction(tx)

	s.log.WithFields(logrus.Fields{
		"action":   advisor.KindAddPlannedTransaction,
		"amount":   a.Amount.String(),
		"category": a.CategoryID,
		"id":       tx.ID,
	}).Info("added planned transaction")

	return s.reply(fmt.Sprintf("✅ Added %q for %s to your transactions. You now have %s remaining this week.",
		a.Thing, cli.FormatMoney(tx.Amount), cli.FormatMoney(s.ledger.RemainingThisWeek()))), nil
}

func (s *Session) reply(text string) []advisor.ChatTurn {
	turn := advisor.ChatTurn{Role: advisor.RoleAssistant, Text: text}
	s.turns = append(s.turns, turn)
	return []advisor.ChatTurn{turn}
}
