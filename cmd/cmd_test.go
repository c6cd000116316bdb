package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/finmate/internal/cli"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDataDir points the commands at an empty data directory.
func useTempDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prevDir, prevQuiet, prevApply := flagDataDir, flagQuiet, flagAskApply
	flagDataDir = dir
	flagQuiet = true
	log.SetOutput(io.Discard)
	t.Cleanup(func() {
		flagDataDir, flagQuiet, flagAskApply = prevDir, prevQuiet, prevApply
	})
	return dir
}

func ledgerTransactionCount(t *testing.T) int {
	t.Helper()
	l, db, err := openLedger()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	return len(l.Transactions())
}

func TestAskRequiresBudget(t *testing.T) {
	useTempDataDir(t)
	flagAskApply = 1

	err := runAsk(nil, []string{"plan", "dinner", "for", "$20"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no weekly budget set")
	assert.Zero(t, ledgerTransactionCount(t))
}

func TestAddRejectsSubCentAmount(t *testing.T) {
	useTempDataDir(t)

	err := runAdd(nil, []string{"food", "0.004", "gum"})
	require.ErrorIs(t, err, cli.ErrNonPositiveAmount)
	assert.Zero(t, ledgerTransactionCount(t))

	require.NoError(t, runAdd(nil, []string{"food", "0.005", "gum"}))
	assert.Equal(t, 1, ledgerTransactionCount(t))
}

func TestImportTwiceKeepsIDsUnique(t *testing.T) {
	dir := useTempDataDir(t)
	path := filepath.Join(dir, "spend.jsonl")
	lines := `{"id":"a","category":"food","label":"Coffee","amount":"5.50","date":"2026-10-19"}
{"id":"b","category":"transport","label":"Bus","amount":"2.75","date":"2026-10-20"}
`
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o600))

	require.NoError(t, runImport(nil, []string{path}))
	assert.Equal(t, 2, ledgerTransactionCount(t))

	require.NoError(t, runImport(nil, []string{path}))
	assert.Equal(t, 2, ledgerTransactionCount(t), "re-importing the same ids adds nothing")
}
