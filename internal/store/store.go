// Package store persists ledger snapshots in a local SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finmate/internal/ledger"
	"github.com/theirongolddev/finmate/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

const dateLayout = time.RFC3339Nano

// Store is a SQLite-backed ledger snapshot.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the saved ledger state. An empty database yields a fresh state
// with the default categories.
func (s *Store) Load() (ledger.State, error) {
	st := ledger.State{WeeklyBudget: decimal.Zero}

	var raw string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", keyWeeklyBudget).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return st, fmt.Errorf("reading weekly budget: %w", err)
	default:
		if st.WeeklyBudget, err = decimal.NewFromString(raw); err != nil {
			return st, fmt.Errorf("parsing weekly budget %q: %w", raw, err)
		}
	}

	if st.Categories, err = s.loadCategories(); err != nil {
		return st, err
	}
	if len(st.Categories) == 0 {
		st.Categories = model.DefaultCategories()
	}

	if st.Transactions, err = s.loadTransactions(); err != nil {
		return st, err
	}
	return st, nil
}

func (s *Store) loadCategories() ([]model.Category, error) {
	rows, err := s.db.Query("SELECT id, name, color, weekly_limit FROM categories ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cats []model.Category
	for rows.Next() {
		var c model.Category
		var id, name, limit string
		if err := rows.Scan(&id, &name, &c.Color, &limit); err != nil {
			return nil, err
		}
		c.ID = model.CategoryID(id)
		c.Name = model.CategoryName(name)
		if c.WeeklyLimit, err = decimal.NewFromString(limit); err != nil {
			return nil, fmt.Errorf("parsing limit of %s: %w", id, err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (s *Store) loadTransactions() ([]model.Transaction, error) {
	rows, err := s.db.Query("SELECT id, category_id, label, amount, date FROM transactions ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txs []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		var categoryID, amount, date string
		if err := rows.Scan(&tx.ID, &categoryID, &tx.Label, &amount, &date); err != nil {
			return nil, err
		}
		tx.CategoryID = model.CategoryID(categoryID)
		if tx.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parsing amount of %s: %w", tx.ID, err)
		}
		if tx.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("parsing date of %s: %w", tx.ID, err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// Save replaces the stored snapshot with st in a single transaction.
func (s *Store) Save(st ledger.State) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`,
		keyWeeklyBudget, st.WeeklyBudget.String()); err != nil {
		return fmt.Errorf("saving weekly budget: %w", err)
	}

	if _, err = tx.Exec("DELETE FROM categories"); err != nil {
		return err
	}
	for i, c := range st.Categories {
		_, err = tx.Exec(`INSERT INTO categories (id, name, color, weekly_limit, position)
			VALUES (?, ?, ?, ?, ?)`,
			string(c.ID), string(c.Name), c.Color, c.WeeklyLimit.String(), i)
		if err != nil {
			return fmt.Errorf("saving category %s: %w", c.ID, err)
		}
	}

	if _, err = tx.Exec("DELETE FROM transactions"); err != nil {
		return err
	}
	for _, t := range st.Transactions {
		_, err = tx.Exec(`INSERT INTO transactions (id, category_id, label, amount, date)
			VALUES (?, ?, ?, ?, ?)`,
			t.ID, string(t.CategoryID), t.Label, t.Amount.String(), t.Date.Format(dateLayout))
		if err != nil {
			return fmt.Errorf("saving transaction %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// TransactionCount returns the number of stored transactions.
func (s *Store) TransactionCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count)
	return count, err
}
