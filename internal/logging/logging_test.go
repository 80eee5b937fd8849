package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/opal-lang/tutti/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		cfg     config.LoggingConfig
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{config.LoggingConfig{Level: "warn"}, zapcore.WarnLevel, zapcore.InfoLevel},
		{config.LoggingConfig{Level: "debug", Development: true}, zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{config.LoggingConfig{Level: "error"}, zapcore.ErrorLevel, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.cfg.Level, func(t *testing.T) {
			logger, err := New(tt.cfg)
			require.NoError(t, err)
			defer func() { _ = logger.Sync() }()

			assert.True(t, logger.Core().Enabled(tt.enabled))
			assert.False(t, logger.Core().Enabled(tt.muted))
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud"})
	assert.ErrorContains(t, err, "invalid logging level")
}
