package log

import (
	"context"
	"log/slog"

	rberrors "github.com/reglet-dev/refbook/domain/errors"
	"github.com/reglet-dev/refbook/domain/ports"
)

// SinkOption configures the slog diagnostic sink.
type SinkOption func(*sinkConfig)

type sinkConfig struct {
	level  slog.Level
	bookID string
}

// WithReportLevel sets the level registry failures are logged at (default warn).
func WithReportLevel(level slog.Level) SinkOption {
	return func(c *sinkConfig) {
		c.level = level
	}
}

// WithBookID adds a "book" attribute to every record.
func WithBookID(id string) SinkOption {
	return func(c *sinkConfig) {
		c.bookID = id
	}
}

// Sink is a ports.DiagnosticSink that logs every report as one record.
type Sink struct {
	logger *slog.Logger
	cfg    sinkConfig
}

// NewSink returns a sink writing to logger. A nil logger uses slog.Default().
func NewSink(logger *slog.Logger, opts ...SinkOption) *Sink {
	cfg := sinkConfig{level: slog.LevelWarn}
	for _, opt := range opts {
		opt(&cfg)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{logger: logger, cfg: cfg}
}

// Report implements ports.DiagnosticSink.
func (s *Sink) Report(err error) {
	if err == nil {
		return
	}
	detail := rberrors.ToErrorDetail(err)

	attrs := make([]slog.Attr, 0, 4)
	attrs = append(attrs, slog.String("error_type", detail.Type))
	if detail.Code != "" {
		attrs = append(attrs, slog.String("code", detail.Code))
	}
	if detail.IsNotFound {
		attrs = append(attrs, slog.Bool("is_not_found", true))
	}
	if s.cfg.bookID != "" {
		attrs = append(attrs, slog.String("book", s.cfg.bookID))
	}
	s.logger.LogAttrs(context.Background(), s.cfg.level, "refbook: "+err.Error(), attrs...)
}

type discard struct{}

func (discard) Report(error) {}

// Discard returns a sink that drops every report.
func Discard() ports.DiagnosticSink { return discard{} }
