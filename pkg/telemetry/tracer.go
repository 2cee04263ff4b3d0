package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/tooltip/pkg/tooltip"
)

const defaultTracerName = "tooltip"

// Span attribute keys.
const (
	AttrName       = attribute.Key("tooltip.name")
	AttrKind       = attribute.Key("tooltip.timer.kind")
	AttrDelay      = attribute.Key("tooltip.timer.delay_ms")
	AttrOutcome    = attribute.Key("tooltip.timer.outcome")
	AttrVisible    = attribute.Key("tooltip.visible")
	AttrControlled = attribute.Key("tooltip.controlled")
)

// TracerConfig configures the OpenTelemetry observer.
type TracerConfig struct {
	// TracerName is the name of the tracer (default: "tooltip").
	TracerName string

	// Provider supplies the tracer. Nil uses the global provider.
	Provider trace.TracerProvider

	// Context is the parent of every span. Nil uses context.Background().
	Context context.Context
}

// TracerOption configures the OpenTelemetry observer.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(p trace.TracerProvider) TracerOption {
	return func(c *TracerConfig) {
		c.Provider = p
	}
}

// WithParentContext sets the context spans are started from.
func WithParentContext(ctx context.Context) TracerOption {
	return func(c *TracerConfig) {
		c.Context = ctx
	}
}

// Tracer is a tooltip.Observer that records each armed timer as a span.
//
// A span named "tooltip.show" or "tooltip.hide" starts when the timer is
// armed and ends when it fires or is canceled. Visibility requests are
// recorded as zero-length "tooltip.visibility" spans.
type Tracer struct {
	tracer trace.Tracer
	ctx    context.Context

	mu    sync.Mutex
	spans map[string]trace.Span
}

var _ tooltip.Observer = (*Tracer)(nil)

// NewTracer resolves the tracer and returns the observer.
func NewTracer(opts ...TracerOption) *Tracer {
	config := TracerConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Context == nil {
		config.Context = context.Background()
	}

	var tracer trace.Tracer
	if config.Provider != nil {
		tracer = config.Provider.Tracer(config.TracerName)
	} else {
		tracer = otel.Tracer(config.TracerName)
	}
	return &Tracer{
		tracer: tracer,
		ctx:    config.Context,
		spans:  make(map[string]trace.Span),
	}
}

// Active returns the number of timer spans not yet ended.
func (t *Tracer) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.spans)
}

// VisibilityChanged records a zero-length span for the request.
func (t *Tracer) VisibilityChanged(name string, visible, controlled bool) {
	_, span := t.tracer.Start(t.ctx, "tooltip.visibility",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			AttrName.String(name),
			AttrVisible.Bool(visible),
			AttrControlled.Bool(controlled),
		),
	)
	span.End()
}

// TimerArmed starts a span for the timer. A span still open under the same
// name is ended as superseded.
func (t *Tracer) TimerArmed(name string, kind tooltip.TimerKind, delay time.Duration) {
	_, span := t.tracer.Start(t.ctx, "tooltip."+string(kind),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			AttrName.String(name),
			AttrKind.String(string(kind)),
			AttrDelay.Int64(delay.Milliseconds()),
		),
	)

	t.mu.Lock()
	prev := t.spans[name]
	t.spans[name] = span
	t.mu.Unlock()

	if prev != nil {
		prev.SetAttributes(AttrOutcome.String("superseded"))
		prev.End()
	}
}

// TimerFired ends the timer span with an Ok status.
func (t *Tracer) TimerFired(name string, kind tooltip.TimerKind) {
	if span := t.take(name); span != nil {
		span.SetAttributes(AttrOutcome.String(OutcomeFired))
		span.SetStatus(codes.Ok, "")
		span.End()
	}
}

// TimerCanceled ends the timer span without a status.
func (t *Tracer) TimerCanceled(name string, kind tooltip.TimerKind) {
	if span := t.take(name); span != nil {
		span.SetAttributes(AttrOutcome.String(OutcomeCanceled))
		span.End()
	}
}

// ListenerAttached is not traced.
func (t *Tracer) ListenerAttached(string, string) {}

// ListenerDetached is not traced.
func (t *Tracer) ListenerDetached(string, string) {}

func (t *Tracer) take(name string) trace.Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	span := t.spans[name]
	delete(t.spans, name)
	return span
}
