package render

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Renderer.
type Option func(*Renderer)

// PassStats summarizes one render pass.
type PassStats struct {
	Pass     uint64
	Created  int
	Updated  int
	Removed  int
	Deferred int
	Moved    int
	Hooks    int
	Warnings int
	Errors   int
	Duration time.Duration
}

// Observer receives a summary after every render pass.
type Observer interface {
	ObservePass(s PassStats)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s PassStats)

// ObservePass implements Observer.
func (f ObserverFunc) ObservePass(s PassStats) { f(s) }

// WithLogger sets the logger used for warnings and pass diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver registers an observer for pass summaries.
func WithObserver(o Observer) Option {
	return func(r *Renderer) {
		r.observer = o
	}
}

// WithTracerName sets the name of the tracer obtained from the global
// provider.
func WithTracerName(name string) Option {
	return func(r *Renderer) {
		r.tracer = otel.Tracer(name)
	}
}

// WithTracer sets the tracer used to create one span per render pass.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Renderer) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// WithDispatcher sets the function that runs continuations of settled
// futures: deferred removals and redraw requests. The default runs them
// inline on whichever goroutine settled the future. A deferred removal
// detaches DOM and updates the renderer's pending removals, so without a
// dispatcher futures must be settled on the goroutine that calls Render.
func WithDispatcher(dispatch func(fn func())) Option {
	return func(r *Renderer) {
		if dispatch != nil {
			r.dispatch = dispatch
		}
	}
}
