package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dbsmedya/gox3d/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"", "info"},
		{"warn", "warn"},
		{"error", "error"},
		{"unknown", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input).String())
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LoggingConfig
		wantErr bool
	}{
		{
			name: "json format info level",
			cfg:  &config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"},
		},
		{
			name: "text format debug level",
			cfg:  &config.LoggingConfig{Level: "debug", Format: "text", Output: "stderr"},
		},
		{
			name: "file output",
			cfg:  &config.LoggingConfig{Level: "warn", Format: "json", Output: filepath.Join(t.TempDir(), "gox3d.log")},
		},
		{
			name:    "unwritable file output",
			cfg:     &config.LoggingConfig{Level: "info", Format: "json", Output: filepath.Join(t.TempDir(), "missing", "gox3d.log")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, logger)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, logger)
		})
	}
}

func TestNewDefaultAndNop(t *testing.T) {
	logger := NewDefault()
	require.NotNil(t, logger)
	logger.Debug("hidden at info level")

	nop := NewNop()
	require.NotNil(t, nop)
	nop.WithPlot("hope").Error("discarded")
	assert.NoError(t, nop.Sync())
}

func TestContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromCore(core)

	logger.WithPlot("hope").WithSource("data/hope.csv").WithGeneration(7).Info("frame applied")
	logger.WithFields(map[string]interface{}{"rows": 420}).Warn("load slow")

	entries := logs.All()
	require.Len(t, entries, 2)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "frame applied", entries[0].Message)
	assert.Equal(t, "hope", ctx["plot"])
	assert.Equal(t, "data/hope.csv", ctx["source"])
	assert.Equal(t, uint64(7), ctx["generation"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, int64(420), entries[1].ContextMap()["rows"])
}

func TestWithReturnsNewInstance(t *testing.T) {
	logger := NewNop()
	plotLogger := logger.WithPlot("sales")
	assert.NotSame(t, logger, plotLogger)
}

func TestBuildEncoder(t *testing.T) {
	assert.NotNil(t, buildEncoder("json"))
	assert.NotNil(t, buildEncoder("text"))
	assert.NotNil(t, buildEncoder("unknown"))
}

func TestLoggingOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gox3d.json")

	logger, err := New(&config.LoggingConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Info("test info message")
	logger.Debug("filtered debug message")
	logger.WithPlot("sales").Info("rendered")
	_ = logger.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	out := string(content)
	assert.Contains(t, out, "test info message")
	assert.NotContains(t, out, "filtered debug message")
	assert.True(t, strings.Contains(out, `"plot":"sales"`))
}
