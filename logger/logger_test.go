package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		want    zapcore.Level
		wantErr bool
	}{
		{name: "debug", level: "debug", want: zapcore.DebugLevel},
		{name: "info", level: "info", want: zapcore.InfoLevel},
		{name: "warn", level: "warn", want: zapcore.WarnLevel},
		{name: "unknown level", level: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			err := Initialize(tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, Logger)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, Logger)
			assert.True(t, Logger.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, Logger.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestWithContextWithoutInitialize(t *testing.T) {
	Logger = nil
	l := WithContext(zap.String("path", "data"))
	require.NotNil(t, l)
	// must not panic
	l.Info("ignored")
	Info("ignored")
	Sync()
}
