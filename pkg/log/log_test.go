package log

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetup_ValidLevels(t *testing.T) {
	tests := []struct {
		input string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"fatal", logrus.FatalLevel},
	}
	for _, tt := range tests {
		logger := Setup(tt.input)
		assert.Equal(t, tt.want, logger.GetLevel(), "Setup(%q)", tt.input)
	}
}

func TestSetup_InvalidLevelFallsBack(t *testing.T) {
	logger := Setup("verbose")
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestComponent(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	entry := Component(logger, "toc")
	assert.Equal(t, "toc", entry.Data["component"])
	assert.NotPanics(t, func() { entry.Infof("info %v", true) })
}
