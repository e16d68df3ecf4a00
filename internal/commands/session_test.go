package commands

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/logging"
	"github.com/cleared-dev/tally/internal/model"
)

func testSession(t *testing.T, dir, path string) *session {
	t.Helper()
	log, _ := logging.New(io.Discard, "info")
	return &session{
		dir:   dir,
		cfg:   config.Default(),
		log:   log,
		store: journal.NewStore(path),
		out:   io.Discard,
	}
}

func TestSession_UnreadableFileIsNotOverwritten(t *testing.T) {
	dir := t.TempDir()
	// A directory opens fine but fails on read.
	path := filepath.Join(dir, "file.csv")
	require.NoError(t, os.Mkdir(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0o644))

	s := testSession(t, dir, path)
	s.load()
	require.Error(t, s.loadErr)
	assert.True(t, s.ledger.IsEmpty())

	_, err := s.ledger.Append(model.KindExpense, "Food", decimal.NewFromInt(1), "d")
	require.NoError(t, err)

	err = s.save("add: expense Food 1")
	assert.ErrorIs(t, err, journal.ErrStorageUnavailable)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "the unreadable path is left alone")
}

func TestSession_MissingFileCanBeSaved(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.csv")

	s := testSession(t, dir, path)
	s.load()
	assert.NoError(t, s.loadErr)

	_, err := s.ledger.Append(model.KindIncome, "Salary", decimal.NewFromInt(10), "d")
	require.NoError(t, err)
	require.NoError(t, s.save("add: income Salary 10"))
	assert.Equal(t, journal.Header+"\ninc,Salary,10,d\n", readFile(t, path))
}

func TestAdd_KeepsRecordsAroundLongLine(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	long := "exp," + strings.Repeat("x", 70000) + ",5,03/01/2024\n"
	content := scenario + long
	path := writeLedger(t, dir, content)

	_, err := runTally(t, "", "--dir", dir, "add", "expense", "--amount", "1", "--category", "Food", "--date", "d")
	require.NoError(t, err)
	assert.Equal(t, content+"exp,Food,1,d\n", readFile(t, path))
}
