package ports

// DiagnosticSink receives every recoverable registry failure.
// Implementations must not panic and must not be used for control flow;
// callers branch on returned errors, the sink is for operational visibility.
type DiagnosticSink interface {
	Report(err error)
}

// SinkFunc adapts a function to DiagnosticSink.
type SinkFunc func(err error)

// Report calls f(err).
func (f SinkFunc) Report(err error) { f(err) }
