package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/gitops"
	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/logging"
	"github.com/cleared-dev/tally/internal/report"
)

// session owns the ledger for the lifetime of one command.
type session struct {
	dir    string
	cfg    *config.Config
	log    *logrus.Logger
	store  *journal.Store
	ledger *ledger.Ledger
	out    io.Writer

	// loadErr is set when an existing journal file could not be read. Saving
	// is refused so the unread records are not overwritten.
	loadErr error
}

// openSession resolves configuration for opts.dir and loads the ledger. A
// journal file that cannot be read is logged and replaced by an empty ledger
// that cannot be saved.
func openSession(cmd *cobra.Command, opts *globalOptions) (*session, error) {
	dir, err := filepath.Abs(opts.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, err
	}
	if opts.file != "" {
		cfg.Ledger.File = opts.file
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	log, ok := logging.New(cmd.ErrOrStderr(), cfg.Log.Level)
	if !ok {
		log.WithField("level", cfg.Log.Level).Warn("unknown log level, using info")
	}

	s := &session{
		dir:   dir,
		cfg:   cfg,
		log:   log,
		store: journal.NewStore(cfg.LedgerPath(dir)),
		out:   cmd.OutOrStdout(),
	}
	s.load()
	return s, nil
}

func (s *session) load() {
	l, skipped, err := s.store.Load()
	s.ledger = l

	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.log.WithField("file", s.store.Path()).Info("no existing data file found, starting fresh")
	case err != nil:
		s.loadErr = err
		s.log.WithError(err).Warn("could not read data file, changes will not be saved")
	}
	for _, rec := range skipped {
		s.log.WithFields(logrus.Fields{
			"file": s.store.Path(),
			"line": rec.Line,
		}).Warn("skipping malformed record: " + rec.Reason)
	}
	s.log.WithFields(logrus.Fields{
		"file":         s.store.Path(),
		"transactions": s.ledger.Len(),
	}).Debug("ledger loaded")
}

// save writes the whole ledger and, when enabled, commits the journal file.
// The in-memory ledger stays usable whatever happens here.
func (s *session) save(message string) error {
	if s.loadErr != nil {
		s.log.WithField("file", s.store.Path()).Error("data file was not read, refusing to overwrite it")
		return fmt.Errorf("saving ledger: refusing to overwrite unread file: %w", s.loadErr)
	}
	if err := s.store.Save(s.ledger.All()); err != nil {
		s.log.WithError(err).Error("could not save data file")
		return fmt.Errorf("saving ledger: %w", err)
	}
	s.log.WithField("file", s.store.Path()).Debug("ledger saved")
	s.commit(message)
	return nil
}

func (s *session) commit(message string) {
	if !s.cfg.Git.AutoCommit || !gitops.IsRepo(s.dir) {
		return
	}
	rel, err := filepath.Rel(s.dir, s.store.Path())
	if err != nil {
		s.log.WithError(err).Warn("ledger file is outside the project, not committing")
		return
	}

	hash, err := gitops.Commit(s.dir, message, s.cfg.Git.AuthorName, s.cfg.Git.AuthorEmail, rel)
	switch {
	case errors.Is(err, gitops.ErrNothingToCommit):
	case err != nil:
		s.log.WithError(err).Warn("git commit failed")
	default:
		s.log.WithField("commit", hash).Debug("committed ledger")
	}
}

func (s *session) formatter() report.Formatter {
	return report.NewFormatter(s.cfg.Display.Currency)
}
