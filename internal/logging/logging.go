// Package logging builds the logrus loggers used across playinput.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config configures the root logger.
type Config struct {
	// Level is one of debug, info, warn or error. Anything else means info.
	Level string
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// JSON switches to the JSON formatter.
	JSON bool
}

// ParseLevel parses a level name. Unknown names map to info.
func ParseLevel(s string) logrus.Level {
	switch strings.ToLower(s) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// New creates the root logger.
func New(cfg Config) *logrus.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	log := logrus.New()
	log.SetOutput(cfg.Output)
	log.SetLevel(ParseLevel(cfg.Level))
	if cfg.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000",
		})
	}
	return log
}

// Component returns an entry tagged with the component field.
func Component(log logrus.FieldLogger, name string) *logrus.Entry {
	if log == nil {
		log = Discard()
	}
	return log.WithField("component", name)
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
