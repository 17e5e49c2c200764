package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// NewLogger returns a stdout logger using the given format and level.
// Unknown formats fall back to text, unknown levels to info.
func NewLogger(format LogFormat, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	switch LogFormat(strings.ToLower(string(format))) {
	case LogFormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}
