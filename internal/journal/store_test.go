package journal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func TestStoreSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.csv")
	store := NewStore(path)
	assert.Equal(t, path, store.Path())

	txns := sampleTransactions()
	require.NoError(t, store.Save(txns))

	l, skipped, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, skipped)

	got := l.All()
	require.Len(t, got, len(txns))
	for i := range txns {
		assert.True(t, txns[i].Equal(got[i]), "row %d", i)
	}

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestStoreSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.csv")
	store := NewStore(path)

	require.NoError(t, store.Save(sampleTransactions()))
	require.NoError(t, store.Save(sampleTransactions()[:1]))

	l, _, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())

	// No temporary files are left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStoreSaveKeepsFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.csv")
	require.NoError(t, os.WriteFile(path, []byte(Header+"\n"), 0o600))
	require.NoError(t, os.Chmod(path, 0o600))

	require.NoError(t, NewStore(path).Save(sampleTransactions()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStoreLongLineSurvivesSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.csv")
	long := "exp," + strings.Repeat("x", 70000) + ",5,03/01/2024"
	content := Header + "\ninc,Salary,1000,01/01/2024\nexp,Rent,400,02/01/2024\n" + long + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store := NewStore(path)
	l, _, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, 3, l.Len())

	_, err = l.Append(model.KindExpense, "Food", dec("1"), "d")
	require.NoError(t, err)
	require.NoError(t, store.Save(l.All()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content+"exp,Food,1,d\n", string(data))
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.csv"))

	l, skipped, err := store.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, skipped)
	require.NotNil(t, l, "an empty ledger is returned so the session can start fresh")
	assert.True(t, l.IsEmpty())

	var serr *StorageError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "open", serr.Op)
}

func TestStoreLoadReportsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.csv")
	content := Header + "\ninc,Salary,1000,01/01/2024\nbroken line\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	l, skipped, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
	require.Len(t, skipped, 1)
	assert.Equal(t, 3, skipped[0].Line)
}

func TestStoreSaveUnwritable(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "no-such-dir", "file.csv"))

	err := store.Save(sampleTransactions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	var serr *StorageError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "write", serr.Op)
}

func TestStoreSaveUnencodableKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.csv")
	store := NewStore(path)
	require.NoError(t, store.Save(sampleTransactions()))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	bad := append(sampleTransactions(), model.Transaction{Kind: model.KindIncome, Category: "x,y", Amount: dec("1"), Date: ""})
	err = store.Save(bad)
	assert.ErrorIs(t, err, ErrUnencodableField)
	assert.NotErrorIs(t, err, ErrStorageUnavailable)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
