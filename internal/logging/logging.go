// Package logging builds the logrus logger shared by the server and the CLI.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vallamsettyashok/portfolio/internal/config"
)

// New returns a logger for cfg. When cfg.File is set the log is appended to
// that file; if the file cannot be opened it falls back to stdout and says so.
func New(cfg config.LogConfig) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: %w", err)
	}
	log.SetLevel(level)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	log.SetOutput(os.Stdout)
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.WithError(err).Warnf("cannot open log file %s, logging to stdout", cfg.File)
		} else {
			log.SetOutput(f)
			closer = f
		}
	}

	return log, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
