package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/config"
)

// clearEnv keeps TALLY_* variables from the developer's shell out of tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvFile, config.EnvCurrency, config.EnvLogLevel} {
		t.Setenv(key, "")
	}
}

type result struct {
	stdout string
	stderr string
}

// runTally executes the root command in-process with stdin set to input.
func runTally(t *testing.T, input string, args ...string) (result, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String()}, err
}

func writeLedger(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "file.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
