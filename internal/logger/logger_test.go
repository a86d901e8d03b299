package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// enabledLevel returns the lowest level l writes.
func enabledLevel(l *Logger) zapcore.Level {
	core := l.Desugar().Core()
	for _, lvl := range []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel} {
		if core.Enabled(lvl) {
			return lvl
		}
	}
	return zapcore.FatalLevel
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level       string
		development bool
		expected    zapcore.Level
		wantErr     bool
	}{
		{level: "debug", expected: zapcore.DebugLevel},
		{level: "info", expected: zapcore.InfoLevel},
		{level: "warn", development: true, expected: zapcore.WarnLevel},
		{level: "error", development: true, expected: zapcore.ErrorLevel},
		{level: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := NewLogger(tt.level, tt.development)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, l)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, enabledLevel(l))
		})
	}
}

func TestLogger_WithComponentField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := &Logger{SugaredLogger: zap.New(core).Sugar()}

	base.WithComponent("ingester").Infow("pass finished", "coins", 3)

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "pass finished", entries[0].Message)
	fields := entries[0].ContextMap()
	require.Equal(t, "ingester", fields["component"])
	require.EqualValues(t, 3, fields["coins"])
}

type stubLoggingConfig struct {
	defaultLevel string
	levels       map[string]string
	development  bool
}

func (s *stubLoggingConfig) GetComponentLevel(component string) string {
	if level, ok := s.levels[component]; ok {
		return level
	}
	return s.defaultLevel
}

func (s *stubLoggingConfig) GetDefaultLevel() string { return s.defaultLevel }
func (s *stubLoggingConfig) IsDevelopment() bool     { return s.development }

func TestNewComponentLoggerFromConfig(t *testing.T) {
	cfg := &stubLoggingConfig{
		defaultLevel: "warn",
		levels:       map[string]string{"scanner": "debug"},
	}

	tests := []struct {
		name      string
		component string
		cfg       LoggingConfig
		expected  zapcore.Level
	}{
		{name: "component override", component: "scanner", cfg: cfg, expected: zapcore.DebugLevel},
		{name: "default level", component: "metadata", cfg: cfg, expected: zapcore.WarnLevel},
		{name: "nil config", component: "api", cfg: nil, expected: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewComponentLoggerFromConfig(tt.component, tt.cfg)
			require.Equal(t, tt.expected, enabledLevel(l))
		})
	}
}

func TestNewComponentLogger_InvalidLevelPanics(t *testing.T) {
	require.Panics(t, func() {
		NewComponentLogger("archive", "chatty", false)
	})
}

func TestNewNopLogger(t *testing.T) {
	l := NewNopLogger()
	require.NotPanics(t, func() {
		l.Infof("coin %s", "0xabc")
		l.WithComponent("api").Errorw("failed", "status", 503)
	})
	require.NoError(t, l.Close())
}
