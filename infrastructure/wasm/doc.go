// Package wasm instantiates WebAssembly modules with the wazero runtime and
// registers each instance in a registry under capability keys derived from
// its exports.
//
// # Basic Usage
//
//	book := refbook.New()
//	host, err := wasm.NewHost(ctx, book)
//	if err != nil {
//	    return err
//	}
//	defer host.Shutdown(ctx)
//
//	if _, err := host.Instantiate(ctx, "calc", wasmBytes); err != nil {
//	    return err
//	}
//
//	// Any component can now find the module by what it exports.
//	mod, ok := refbook.GetAs[api.Module](book, wasm.ExportKey("add"), 0)
//
// # Host Functions
//
// Functions guests import are provided with WithHostFunction. Host modules
// are instantiated by NewHost, before any guest:
//
//	wasm.NewHost(ctx, book,
//	    wasm.WithHostFunction("env", wasm.HostFunction{
//	        Name:        "log_i32",
//	        Handler:     logHandler,
//	        ParamTypes:  []api.ValueType{api.ValueTypeI32},
//	        ResultTypes: []api.ValueType{},
//	    }),
//	)
package wasm
