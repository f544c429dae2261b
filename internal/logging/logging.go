// Package logging provides logger construction and sensitive-data redaction
// for all notelab components.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// New creates a configured logger writing to the given output.
//
// Parameters:
// - out: Destination writer (stderr in production, a buffer in tests)
// - level: Log level name (debug, info, warn, error); invalid values fall back to info
//
// The returned logger has the redaction hook installed so tokens never
// reach the log output.
func New(out io.Writer, level string) *logrus.Logger {
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(parsed)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		TimestampFormat:  "15:04:05",
		PadLevelText:     true,
		QuoteEmptyFields: true,
	})
	logger.AddHook(NewRedactionHook())

	return logger
}
