package log

import (
	"github.com/sirupsen/logrus"
)

// Setup creates a configured logrus.Logger with the given log level.
// An unknown level falls back to info with a warning rather than failing.
func Setup(logLevelStr string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	logger.SetLevel(logrus.InfoLevel)

	level, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using default 'info'. Error: %v", logLevelStr, err)
	} else {
		logger.SetLevel(level)
	}

	return logger
}

// Component returns an entry scoped to one pipeline component.
// Constructors take such entries so every line carries its origin.
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	return logger.WithField("component", name)
}
