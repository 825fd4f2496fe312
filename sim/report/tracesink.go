package report

import (
	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/trace"
)

// TraceSink is a sim.Sink that records engine events into a SimulationTrace.
type TraceSink struct {
	Trace *trace.SimulationTrace
}

// NewTraceSink creates a TraceSink recording into st.
func NewTraceSink(st *trace.SimulationTrace) *TraceSink {
	return &TraceSink{Trace: st}
}

func (ts *TraceSink) OnEvent(ev sim.Event) {
	ts.Trace.Record(trace.Record{
		Clock:     ev.Clock,
		Kind:      trace.Kind(ev.Kind),
		Process:   ev.Process,
		Slot:      ev.Slot,
		Remaining: ev.Remaining,
	})
}

func (ts *TraceSink) OnCompletion(sim.CompletionMetrics) {}
