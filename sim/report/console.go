// Package report holds the sinks that carry engine output out of the process:
// the console event trace, the results file, summary tables and the trace adapter.
package report

import (
	"fmt"
	"io"

	"github.com/inference-sim/schedsim/sim"
)

// FormatEvent renders ev as a console trace line. Preempt events have no
// console form and return ok=false.
func FormatEvent(ev sim.Event) (line string, ok bool) {
	switch ev.Kind {
	case sim.EventArrival:
		return fmt.Sprintf("Time %d: %10s has entered the system", ev.Clock, ev.Process), true
	case sim.EventDispatch:
		return fmt.Sprintf("Time %d: %10s is in the running state", ev.Clock, ev.Process), true
	case sim.EventCompletion:
		return fmt.Sprintf("Time %d: %10s has finished execution", ev.Clock, ev.Process), true
	default:
		return "", false
	}
}

// TraceWriter is a sim.Sink that prints the event trace, one line per event.
type TraceWriter struct {
	w io.Writer
}

// NewTraceWriter creates a TraceWriter writing to w.
func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{w: w}
}

func (tw *TraceWriter) OnEvent(ev sim.Event) {
	if line, ok := FormatEvent(ev); ok {
		_, _ = fmt.Fprintln(tw.w, line)
	}
}

func (tw *TraceWriter) OnCompletion(sim.CompletionMetrics) {}
