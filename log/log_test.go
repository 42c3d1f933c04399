package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/reglet-dev/refbook/domain/entities"
	rberrors "github.com/reglet-dev/refbook/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: " error ", want: slog.LevelError},
		{in: "", want: slog.LevelInfo},
		{in: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, WithFormat(FormatJSON), WithLevel(slog.LevelDebug))

	logger.Debug("hello", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "v", rec["k"])
}

func TestNewLogger_TextFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, WithLevel(slog.LevelWarn))

	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestSink_Report(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, WithFormat(FormatJSON))
	sink := NewSink(logger, WithBookID("book-1"))

	sink.Report(&rberrors.KeyNotFoundError{Key: entities.Capability("logger")})

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "refbook: no references registered under capability:logger", rec["msg"])
	assert.Equal(t, "not_found", rec["error_type"])
	assert.Equal(t, "capability:logger", rec["code"])
	assert.Equal(t, true, rec["is_not_found"])
	assert.Equal(t, "book-1", rec["book"])
}

func TestSink_ReportLevelAndPlainError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, WithFormat(FormatJSON), WithLevel(slog.LevelDebug))
	sink := NewSink(logger, WithReportLevel(slog.LevelError))

	sink.Report(errors.New("boom"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "internal", rec["error_type"])
	assert.NotContains(t, rec, "code")
	assert.NotContains(t, rec, "book")
}

func TestSink_NilErrorIgnored(t *testing.T) {
	var buf bytes.Buffer
	NewSink(NewLogger(&buf)).Report(nil)
	assert.Empty(t, buf.String())
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Report(errors.New("x")) })
}
