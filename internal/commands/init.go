package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/gitops"
	"github.com/cleared-dev/tally/internal/journal"
)

func newInitCommand(opts *globalOptions) *cobra.Command {
	var currency string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new tally project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.dir
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			useGit := !noGit && gitops.Available()
			hash, err := runInit(absDir, currency, useGit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if hash != "" {
				fmt.Fprintf(out, "Initialized tally project at %s (%s)\n", absDir, hash)
			} else {
				fmt.Fprintf(out, "Initialized tally project at %s\n", absDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "USD", "ISO 4217 currency code used in reports")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "do not create a git repository")

	return cmd
}

func runInit(dir, currency string, useGit bool) (string, error) {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return "", fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking config: %w", err)
	}

	// Create directory structure.
	for _, d := range []string{".", "import", filepath.Join("import", "processed")} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write tally.yaml.
	cfg := config.Default()
	cfg.Display.Currency = strings.ToUpper(currency)
	cfg.Git.AutoCommit = useGit
	if err := config.Save(cfgPath, cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}

	// Write an empty ledger unless one is already there.
	ledgerPath := cfg.LedgerPath(dir)
	if _, err := os.Stat(ledgerPath); errors.Is(err, fs.ErrNotExist) {
		if err := journal.NewStore(ledgerPath).Save(nil); err != nil {
			return "", fmt.Errorf("writing ledger: %w", err)
		}
	}

	// Write .gitignore.
	gitignore := ".env\n*.png\nimport/*.csv\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return "", fmt.Errorf("writing .gitignore: %w", err)
	}

	if !useGit {
		return "", nil
	}

	// Initialize git and create initial commit.
	if !gitops.IsRepo(dir) {
		if err := gitops.Init(dir); err != nil {
			return "", fmt.Errorf("git init: %w", err)
		}
	}
	hash, err := gitops.Commit(dir, "init: Initialize tally", cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}
