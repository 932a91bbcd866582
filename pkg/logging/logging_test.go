package logging_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rollcall/pkg/logging"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"DEBUG":   zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, logging.ParseLevel(in), "level %q", in)
	}
}

func TestNewLoggerFromConfig(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	t.Run("json writer with fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "info",
			Format: "json",
			Writer: &buf,
			Fields: map[string]any{"app": "rollcall", "dry_run": true},
		})
		logger.Debug().Msg("hidden")
		logger.Info().Msg("shown")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, `"message":"shown"`)
		assert.Contains(t, out, `"app":"rollcall"`)
		assert.Contains(t, out, `"dry_run":true`)
	})

	t.Run("console writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:   "info",
			Format:  "console",
			Writer:  &buf,
			NoColor: true,
		})
		logger.Info().Str("sheet", "Roster").Msg("loaded")
		assert.Contains(t, buf.String(), "loaded")
		assert.Contains(t, buf.String(), "sheet=Roster")
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "info",
			Format: "json",
			Output: path,
		})
		logger.Info().Msg("to file")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "to file")
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddCaller)
}

func TestContext(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithRunID(ctx, "run-123")
	ctx = logging.WithStage(ctx, "classify")
	ctx = logging.WithTable(ctx, "roster")
	ctx = logging.WithError(ctx, errors.New("boom"))
	ctx = logging.WithFields(ctx, map[string]any{"rows": 4})

	logging.Ctx(ctx).Info().Msg("stage done")

	assert.Equal(t, "run-123", logging.RunID(ctx))
	assert.Len(t, tl.Lines(), 1)
	for _, want := range []string{`"run_id":"run-123"`, `"stage":"classify"`, `"table":"roster"`, `"error":"boom"`, `"rows":4`} {
		tl.AssertContains(t, want)
	}
}

func TestFromContextDefaults(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	assert.Empty(t, logging.RunID(context.Background()))
	assert.Equal(t, context.Background(), logging.WithError(context.Background(), nil))
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)
	logging.Warn().Msg("captured")
	assert.True(t, tl.Contains("captured"))
}
