package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/reglet-dev/refbook"
	"github.com/reglet-dev/refbook/domain/entities"
	"github.com/reglet-dev/refbook/infrastructure/enumerator"
	"github.com/reglet-dev/refbook/infrastructure/wasm"
	"github.com/spf13/cobra"
)

// Logger is the capability the demo services share.
type Logger interface {
	Log(msg string)
}

// ServiceA logs to a buffer.
type ServiceA struct{ lines []string }

func (s *ServiceA) Log(msg string) { s.lines = append(s.lines, msg) }

// ServiceB is a second Logger.
type ServiceB struct{ lines []string }

func (s *ServiceB) Log(msg string) { s.lines = append(s.lines, msg) }

type step struct {
	Step     string            `json:"step"`
	Snapshot entities.Snapshot `json:"snapshot"`
}

func newDemoCmd() *cobra.Command {
	var (
		cfgFile  string
		asJSON   bool
		wasmFile string
	)

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a registration scenario and print a snapshot after each step",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}
			opts, err := cfg.BookOptions(c.OutOrStdout(), c.ErrOrStderr())
			if err != nil {
				return err
			}
			opts = append(opts, refbook.WithInterfaces(enumerator.Interface[Logger]()))
			book := refbook.New(opts...)

			var module []byte
			if wasmFile != "" {
				module, err = os.ReadFile(wasmFile) //nolint:gosec // G304: path is supplied by the operator
				if err != nil {
					return fmt.Errorf("reading wasm module: %w", err)
				}
			}

			steps, err := runDemo(c.Context(), book, module)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(c.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(steps)
			}
			return printSteps(c.OutOrStdout(), steps)
		},
	}

	demoCmd.Flags().StringVar(&cfgFile, "config", "", "config file (yaml or toml)")
	demoCmd.Flags().BoolVar(&asJSON, "json", false, "print snapshots as JSON")
	demoCmd.Flags().StringVar(&wasmFile, "wasm", "", "WebAssembly module to instantiate and register")
	return demoCmd
}

// runDemo registers two loggers, looks them up by capability, removes the
// first and, when module is non-empty, instantiates it in a wasm host.
func runDemo(ctx context.Context, book *refbook.Book, module []byte) ([]step, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var steps []step
	record := func(name string) {
		steps = append(steps, step{Step: name, Snapshot: book.Snapshot()})
	}

	first, second := &ServiceA{}, &ServiceB{}

	if err := book.AddWithCapabilities(first); err != nil {
		return nil, err
	}
	record("add ServiceA with capabilities")

	if err := refbook.AddFor[Logger](book, second); err != nil {
		return nil, err
	}
	record("add ServiceB as Logger")

	for _, l := range refbook.GetAll[Logger](book) {
		l.Log("hello")
	}
	if len(first.lines) != 1 || len(second.lines) != 1 {
		return nil, errors.New("demo: loggers were not reached through the Logger key")
	}

	if err := book.RemoveWithCapabilities(first); err != nil {
		return nil, err
	}
	record("remove ServiceA with capabilities")

	if len(module) == 0 {
		return steps, nil
	}

	host, err := wasm.NewHost(ctx, book)
	if err != nil {
		return nil, err
	}
	if _, err := host.Instantiate(ctx, "demo", module); err != nil {
		return nil, errors.Join(err, host.Shutdown(ctx))
	}
	record("instantiate wasm module")

	if err := host.Shutdown(ctx); err != nil {
		return nil, err
	}
	record("shut down wasm host")
	return steps, nil
}

func printSteps(w io.Writer, steps []step) error {
	for i, s := range steps {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, s.Step); err != nil {
			return err
		}
		for _, e := range s.Snapshot.Keys {
			if len(e.Members) == 0 {
				continue
			}
			if _, err := fmt.Fprintf(w, "   %-60s %d\n", e.Key, len(e.Members)); err != nil {
				return err
			}
		}
	}
	return nil
}
