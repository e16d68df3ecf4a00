// Package logging builds the logrus logger used for diagnostics. User-facing
// command output does not go through it.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to out at the given level. An empty or
// unknown level falls back to info; the second return value reports whether
// the level was recognised.
func New(out io.Writer, level string) (*logrus.Logger, bool) {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
		return logger, level == ""
	}
	logger.SetLevel(lvl)
	return logger, true
}
