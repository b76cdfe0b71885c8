// Package logging configures the debug log. The terminal is owned by the
// viewer, so log output only ever goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Setup returns a logger writing to filename. An empty filename yields a
// logger that discards everything. The cleanup func closes the file.
func Setup(filename string) (*logrus.Logger, func(), error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	if filename == "" {
		logger.SetOutput(io.Discard)
		logger.SetLevel(logrus.WarnLevel)
		return logger, func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}

	logger.SetOutput(f)
	logger.SetLevel(logrus.DebugLevel)

	cleanup := func() {
		_ = f.Close()
	}
	return logger, cleanup, nil
}

// Discard returns a logger that drops all entries, for callers that were not
// handed one.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
