package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/importer"
)

func newImportCommand(opts *globalOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "import <format> [file...]",
		Short: "Import transactions from bank CSV exports",
		Long: "Import transactions from bank CSV exports. Without files, every CSV in\n" +
			"<dir>/import/ is imported and then moved to import/processed/.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			return runImport(s, importer.DefaultRegistry(), args[0], args[1:], category)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category for imported transactions")

	return cmd
}

func runImport(s *session, registry *importer.Registry, format string, paths []string, category string) error {
	parser := registry.Get(format)
	if parser == nil {
		return fmt.Errorf("unknown import format %q (available: %s)", format, strings.Join(registry.Formats(), ", "))
	}
	if err := checkFields(category, ""); err != nil {
		return err
	}

	// Files picked up from the import directory are moved once saved.
	var scanned []string
	if len(paths) == 0 {
		files, err := importer.Scan(s.dir)
		if err != nil {
			return err
		}
		for _, f := range files {
			paths = append(paths, f.Path)
			scanned = append(scanned, f.Name)
		}
	}
	if len(paths) == 0 {
		fmt.Fprintln(s.out, "Nothing to import.")
		return nil
	}

	total := 0
	for _, path := range paths {
		n, err := importFile(s, parser, path, category)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Imported %d transactions from %s\n", n, filepath.Base(path))
		total += n
	}

	if err := s.save(fmt.Sprintf("import: %d transactions (%s)", total, parser.Format())); err != nil {
		return err
	}

	for _, name := range scanned {
		if err := importer.MarkProcessed(s.dir, name); err != nil {
			s.log.WithError(err).Warn("could not move imported file")
		}
	}
	return nil
}

func importFile(s *session, parser importer.Parser, path, category string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := parser.Parse(f)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", path, err)
	}
	n, err := importer.Apply(s.ledger, rows, category)
	if err != nil {
		return n, fmt.Errorf("importing %s: %w", path, err)
	}
	s.log.WithField("file", path).WithField("transactions", n).Debug("imported bank file")
	return n, nil
}
