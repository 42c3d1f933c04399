// Package config loads registry configuration from YAML or TOML files and
// translates it into refbook options.
package config

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/reglet-dev/refbook"
	"github.com/reglet-dev/refbook/domain/ports"
	"github.com/reglet-dev/refbook/log"
)

// Output destinations for diagnostics.
const (
	OutputStderr  = "stderr"
	OutputStdout  = "stdout"
	OutputDiscard = "discard"
)

// Config configures a Book and its diagnostics.
type Config struct {
	// ID names the Book. A random UUID is used when empty.
	ID string `yaml:"id,omitempty" toml:"id,omitempty" json:"id,omitempty" validate:"omitempty,max=128" jsonschema:"maxLength=128"`

	// Composite selects how fan-out registrations behave on partial failure.
	Composite string `yaml:"composite" toml:"composite" json:"composite" validate:"required,oneof=best-effort atomic" jsonschema:"enum=best-effort,enum=atomic,default=best-effort"`

	// InitialCapacity presizes the key table.
	InitialCapacity int `yaml:"initial_capacity" toml:"initial_capacity" json:"initial_capacity" validate:"gte=0" jsonschema:"minimum=0"`

	// Diagnostics configures where registry failures are logged.
	Diagnostics Diagnostics `yaml:"diagnostics" toml:"diagnostics" json:"diagnostics"`
}

// Diagnostics configures the slog diagnostic sink.
type Diagnostics struct {
	Level  string `yaml:"level" toml:"level" json:"level" validate:"required,oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Format string `yaml:"format" toml:"format" json:"format" validate:"required,oneof=text json" jsonschema:"enum=text,enum=json,default=text"`
	Output string `yaml:"output" toml:"output" json:"output" validate:"required,oneof=stderr stdout discard" jsonschema:"enum=stderr,enum=stdout,enum=discard,default=stderr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Composite: string(refbook.CompositeBestEffort),
		Diagnostics: Diagnostics{
			Level:  "info",
			Format: string(log.FormatText),
			Output: OutputStderr,
		},
	}
}

// Logger builds the diagnostics logger. Output "discard" yields a logger
// that writes nowhere.
func (c Config) Logger(stdout, stderr io.Writer) *slog.Logger {
	var w io.Writer
	switch c.Diagnostics.Output {
	case OutputStdout:
		w = stdout
	case OutputDiscard:
		w = io.Discard
	default:
		w = stderr
	}
	return log.NewLogger(w,
		log.WithLevel(log.ParseLevel(c.Diagnostics.Level)),
		log.WithFormat(log.Format(c.Diagnostics.Format)),
	)
}

// BookOptions validates c and translates it into options for refbook.New.
func (c Config) BookOptions(stdout, stderr io.Writer) ([]refbook.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	id := c.ID
	if id == "" {
		id = uuid.NewString()
	}

	var sink ports.DiagnosticSink = log.Discard()
	if c.Diagnostics.Output != OutputDiscard {
		sink = log.NewSink(c.Logger(stdout, stderr), log.WithBookID(id))
	}

	return []refbook.Option{
		refbook.WithID(id),
		refbook.WithSink(sink),
		refbook.WithCompositePolicy(refbook.CompositePolicy(c.Composite)),
		refbook.WithInitialCapacity(c.InitialCapacity),
	}, nil
}
