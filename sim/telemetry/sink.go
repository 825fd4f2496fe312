package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/inference-sim/schedsim/sim"
)

// SpanSink is a sim.Sink that records preemptions and completions as events
// on a run span. Arrivals and dispatches are too frequent to be useful there.
type SpanSink struct {
	span *Span
}

// NewSpanSink creates a SpanSink annotating span.
func NewSpanSink(span *Span) *SpanSink {
	return &SpanSink{span: span}
}

func (ss *SpanSink) OnEvent(ev sim.Event) {
	if ss.span == nil || ev.Kind != sim.EventPreempt {
		return
	}
	ss.span.span.AddEvent("preempt", trace.WithAttributes(
		attribute.String("process", ev.Process),
		attribute.Int64("clock", ev.Clock),
		attribute.Int64("remaining", ev.Remaining),
	))
}

func (ss *SpanSink) OnCompletion(m sim.CompletionMetrics) {
	if ss.span == nil {
		return
	}
	ss.span.span.AddEvent("completion", trace.WithAttributes(
		attribute.String("process", m.Name),
		attribute.Int64("clock", m.CompletionClock),
		attribute.Int64("wait", m.WaitTime),
		attribute.Int64("turnaround", m.TurnaroundTime),
		attribute.Bool("deadline_met", m.DeadlineMet),
	))
}
