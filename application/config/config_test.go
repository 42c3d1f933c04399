package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/reglet-dev/refbook"
	"github.com/reglet-dev/refbook/domain/entities"
	rberrors "github.com/reglet-dev/refbook/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "best-effort", cfg.Composite)
	assert.Equal(t, "info", cfg.Diagnostics.Level)
	assert.Equal(t, "text", cfg.Diagnostics.Format)
	assert.Equal(t, "stderr", cfg.Diagnostics.Output)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "refbook.yaml", want: FormatYAML},
		{path: "refbook.YML", want: FormatYAML},
		{path: "refbook.json", want: FormatYAML},
		{path: "conf/refbook.toml", want: FormatTOML},
		{path: "refbook.ini", wantErr: true},
		{path: "refbook", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "refbook.yaml", `
id: demo
composite: atomic
initial_capacity: 32
diagnostics:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.ID)
	assert.Equal(t, "atomic", cfg.Composite)
	assert.Equal(t, 32, cfg.InitialCapacity)
	assert.Equal(t, "debug", cfg.Diagnostics.Level)
	assert.Equal(t, "json", cfg.Diagnostics.Format)
	assert.Equal(t, "stderr", cfg.Diagnostics.Output, "unset fields keep defaults")
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "refbook.toml", `
composite = "atomic"
initial_capacity = 4

[diagnostics]
output = "discard"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "atomic", cfg.Composite)
	assert.Equal(t, 4, cfg.InitialCapacity)
	assert.Equal(t, "discard", cfg.Diagnostics.Output)
	assert.Equal(t, "info", cfg.Diagnostics.Level)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "refbook.json", `{"composite": "atomic", "diagnostics": {"format": "json"}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "atomic", cfg.Composite)
	assert.Equal(t, "json", cfg.Diagnostics.Format)
}

func TestLoad_EmptyFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := Load(writeFile(t, "refbook.ini", "composite=atomic"))
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})

	t.Run("unknown yaml key", func(t *testing.T) {
		_, err := Load(writeFile(t, "refbook.yaml", "compsite: atomic\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "compsite")
	})

	t.Run("unknown toml key", func(t *testing.T) {
		_, err := Load(writeFile(t, "refbook.toml", "[diagnostics]\nlevl = \"debug\"\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "diagnostics.levl")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "refbook.yaml", "composite: [atomic\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing yaml")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		fields []string
	}{
		{name: "bad composite", mutate: func(c *Config) { c.Composite = "eventual" }, fields: []string{"composite"}},
		{name: "empty composite", mutate: func(c *Config) { c.Composite = "" }, fields: []string{"composite"}},
		{name: "negative capacity", mutate: func(c *Config) { c.InitialCapacity = -1 }, fields: []string{"initial_capacity"}},
		{name: "bad level", mutate: func(c *Config) { c.Diagnostics.Level = "loud" }, fields: []string{"diagnostics.level"}},
		{
			name: "several fields",
			mutate: func(c *Config) {
				c.Diagnostics.Format = "xml"
				c.Diagnostics.Output = "syslog"
			},
			fields: []string{"diagnostics.format", "diagnostics.output"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var got []string
			for _, e := range unwrapAll(err) {
				var cfgErr *rberrors.ConfigError
				require.True(t, errors.As(e, &cfgErr))
				got = append(got, cfgErr.Field)
			}
			assert.ElementsMatch(t, tt.fields, got)
			assert.Equal(t, "config", rberrors.ToErrorDetail(err).Type)
		})
	}
}

func TestValidate_Message(t *testing.T) {
	cfg := Default()
	cfg.Composite = "eventual"

	err := cfg.Validate()
	assert.EqualError(t, err, "config validation failed for field 'composite': eventual is not one of [best-effort atomic]")
}

func TestBookOptions(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := Default()
	cfg.ID = "configured"
	cfg.Composite = "atomic"
	cfg.Diagnostics.Output = OutputStdout
	cfg.Diagnostics.Format = "json"

	opts, err := cfg.BookOptions(&stdout, &stderr)
	require.NoError(t, err)

	b := refbook.New(opts...)
	assert.Equal(t, "configured", b.ID())
	assert.Equal(t, refbook.CompositeAtomic, b.Policy())

	require.Error(t, b.RemoveAs(entities.Capability("missing"), 1))
	assert.Contains(t, stdout.String(), `"msg":"refbook: no references registered under capability:missing"`)
	assert.Contains(t, stdout.String(), `"book":"configured"`)
	assert.Empty(t, stderr.String())
}

func TestBookOptions_GeneratesID(t *testing.T) {
	opts, err := Default().BookOptions(nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, refbook.New(opts...).ID())
}

func TestBookOptions_Discard(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := Default()
	cfg.Diagnostics.Output = OutputDiscard

	opts, err := cfg.BookOptions(&stdout, &stderr)
	require.NoError(t, err)

	b := refbook.New(opts...)
	require.Error(t, b.RemoveAt(entities.Capability("missing"), 0))
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestBookOptions_Invalid(t *testing.T) {
	cfg := Default()
	cfg.InitialCapacity = -5

	_, err := cfg.BookOptions(nil, nil)
	var cfgErr *rberrors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "initial_capacity", cfgErr.Field)
}

// unwrapAll flattens a joined error.
func unwrapAll(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
