package parser

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	assert.NotPanics(t, func() {
		l.Debug("msg", "key", "value")
		l.Info("msg", "key", "value")
		l.Warn("msg", "key", "value")
		l.Error("msg", "key", "value")
	})
	assert.IsType(t, NopLogger{}, l.With("key", "value"))
}

func TestSlogAdapter(t *testing.T) {
	t.Run("nil uses default", func(t *testing.T) {
		assert.NotNil(t, NewSlogAdapter(nil).logger)
	})

	t.Run("levels", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

		l.Debug("debug message", "n", 1)
		l.Info("info message")
		l.Warn("warn message")
		l.Error("error message")

		out := buf.String()
		for _, want := range []string{
			"level=DEBUG msg=\"debug message\" n=1",
			"level=INFO msg=\"info message\"",
			"level=WARN msg=\"warn message\"",
			"level=ERROR msg=\"error message\"",
		} {
			assert.Contains(t, out, want)
		}
	})

	t.Run("with keeps attributes", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, nil))).With("doc", "petstore")
		l.Info("decoded")
		assert.Contains(t, buf.String(), "msg=decoded doc=petstore")
	})

	t.Run("level filtering", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
		l.Debug("hidden")
		l.Info("hidden")
		assert.Empty(t, buf.String())
	})
}
