package wasm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/reglet-dev/refbook"
	"github.com/reglet-dev/refbook/domain/entities"
	rberrors "github.com/reglet-dev/refbook/domain/errors"
	"github.com/reglet-dev/refbook/domain/ports"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// HostConfig holds configuration for a Host.
type HostConfig struct {
	// RuntimeConfig configures the wazero runtime (default: wazero.NewRuntimeConfig()).
	RuntimeConfig wazero.RuntimeConfig

	// HostFunctions maps host module names to the functions they export.
	HostFunctions map[string][]HostFunction

	// Logger receives lifecycle records (default: slog.Default()).
	Logger *slog.Logger
}

// HostFunction is a Go function exported to guests.
type HostFunction struct {
	// Name is the exported function name.
	Name string

	// Handler is the wazero GoModuleFunc implementation.
	Handler api.GoModuleFunc

	// ParamTypes are the WASM parameter types.
	ParamTypes []api.ValueType

	// ResultTypes are the WASM result types.
	ResultTypes []api.ValueType
}

// HostOption configures a Host.
type HostOption func(*HostConfig)

// WithRuntimeConfig sets the wazero runtime configuration.
func WithRuntimeConfig(cfg wazero.RuntimeConfig) HostOption {
	return func(c *HostConfig) {
		c.RuntimeConfig = cfg
	}
}

// WithHostFunction exports fn from the host module named module.
func WithHostFunction(module string, fn HostFunction) HostOption {
	return func(c *HostConfig) {
		if c.HostFunctions == nil {
			c.HostFunctions = make(map[string][]HostFunction)
		}
		c.HostFunctions[module] = append(c.HostFunctions[module], fn)
	}
}

// WithLogger sets the logger for lifecycle records.
func WithLogger(logger *slog.Logger) HostOption {
	return func(c *HostConfig) {
		c.Logger = logger
	}
}

func defaultHostConfig() HostConfig {
	return HostConfig{
		RuntimeConfig: wazero.NewRuntimeConfig(),
		Logger:        slog.Default(),
	}
}

// Host owns a wazero runtime and keeps the registry in step with the
// modules instantiated in it.
type Host struct {
	registry ports.Registry
	runtime  wazero.Runtime
	logger   *slog.Logger

	mu      sync.Mutex
	closed  bool
	modules map[string]instance
	hosts   []instance
}

type instance struct {
	mod  api.Module
	keys []entities.Key
}

// NewHost creates a runtime, instantiates the configured host modules and
// registers them under HostCapability.
func NewHost(ctx context.Context, registry ports.Registry, opts ...HostOption) (*Host, error) {
	if registry == nil {
		return nil, &rberrors.InvalidArgumentError{Op: "new_host", Reason: "registry is nil"}
	}
	cfg := defaultHostConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	h := &Host{
		registry: registry,
		runtime:  wazero.NewRuntimeWithConfig(ctx, cfg.RuntimeConfig),
		logger:   cfg.Logger,
		modules:  make(map[string]instance),
	}

	names := make([]string, 0, len(cfg.HostFunctions))
	for name := range cfg.HostFunctions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		builder := h.runtime.NewHostModuleBuilder(name)
		for _, fn := range cfg.HostFunctions[name] {
			builder.NewFunctionBuilder().
				WithGoModuleFunction(fn.Handler, fn.ParamTypes, fn.ResultTypes).
				Export(fn.Name)
		}
		mod, err := builder.Instantiate(ctx)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("instantiating host module %q: %w", name, err), h.Shutdown(ctx))
		}
		inst, err := h.register(mod, []entities.Key{entities.Capability(HostCapability)})
		if err != nil {
			return nil, errors.Join(err, mod.Close(ctx), h.Shutdown(ctx))
		}
		h.hosts = append(h.hosts, inst)
		h.logger.DebugContext(ctx, "wasm: host module instantiated", "module", name, "functions", len(cfg.HostFunctions[name]))
	}
	return h, nil
}

// Instantiate compiles and instantiates a guest module under name, then
// registers the instance under ModuleCapability, one ExportKey per exported
// function and refbook.KeyOf[api.Module]. If registration fails the module
// is closed and every key it was added under is rolled back.
func (h *Host) Instantiate(ctx context.Context, name string, wasm []byte) (api.Module, error) {
	if name == "" {
		return nil, &rberrors.InvalidArgumentError{Op: "instantiate", Reason: "module name is empty"}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, &rberrors.InvalidArgumentError{Op: "instantiate", Reason: "host is shut down"}
	}
	if _, exists := h.modules[name]; exists {
		return nil, &rberrors.InvalidArgumentError{Op: "instantiate", Reason: fmt.Sprintf("module %q is already instantiated", name)}
	}

	compiled, err := h.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, fmt.Errorf("compiling module %q: %w", name, err)
	}
	defer func() { _ = compiled.Close(ctx) }()

	mod, err := h.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return nil, fmt.Errorf("instantiating module %q: %w", name, err)
	}

	keys := append(exportKeys(mod), refbook.KeyOf[api.Module]())
	inst, err := h.register(mod, keys)
	if err != nil {
		return nil, errors.Join(err, mod.Close(ctx))
	}
	h.modules[name] = inst

	h.logger.DebugContext(ctx, "wasm: module instantiated", "module", name, "keys", len(keys))
	return mod, nil
}

// Module returns the instance registered under name.
func (h *Host) Module(name string) (api.Module, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	inst, ok := h.modules[name]
	return inst.mod, ok
}

// Modules returns the names of the instantiated guest modules, sorted.
func (h *Host) Modules() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.modules))
	for name := range h.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close removes the module from every key it was registered under and
// closes it.
func (h *Host) Close(ctx context.Context, name string) error {
	h.mu.Lock()
	inst, ok := h.modules[name]
	delete(h.modules, name)
	h.mu.Unlock()

	if !ok {
		return &rberrors.InvalidArgumentError{Op: "close", Reason: fmt.Sprintf("module %q is not instantiated", name)}
	}

	err := errors.Join(h.unregister(inst), inst.mod.Close(ctx))
	h.logger.DebugContext(ctx, "wasm: module closed", "module", name)
	return err
}

// Shutdown unregisters and closes every module, then the runtime.
// The Host cannot be used afterwards.
func (h *Host) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	modules := h.modules
	hosts := h.hosts
	h.modules = map[string]instance{}
	h.hosts = nil
	h.mu.Unlock()

	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		errs = append(errs, h.unregister(modules[name]))
	}
	for _, inst := range hosts {
		errs = append(errs, h.unregister(inst))
	}
	errs = append(errs, h.runtime.Close(ctx))
	return errors.Join(errs...)
}

// register adds mod under every key, undoing the additions on failure.
func (h *Host) register(mod api.Module, keys []entities.Key) (instance, error) {
	for i, k := range keys {
		if err := h.registry.AddAs(k, mod); err != nil {
			for _, done := range keys[:i] {
				_ = h.registry.RemoveAs(done, mod)
			}
			return instance{}, fmt.Errorf("registering module %q: %w", mod.Name(), err)
		}
	}
	return instance{mod: mod, keys: keys}, nil
}

func (h *Host) unregister(inst instance) error {
	var errs []error
	for _, k := range inst.keys {
		if err := h.registry.RemoveAs(k, inst.mod); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
