package telemetry

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/inference-sim/schedsim/sim"
)

// The provider is process-global and installed once, so every test installs
// this shared exporter and the span assertions live in a single test.
var memExporter = tracetest.NewInMemoryExporter()

func TestRunSpan_RecordsEventsAndStatus(t *testing.T) {
	require.NoError(t, InitWithExporter(memExporter))
	memExporter.Reset()

	// GIVEN a run span with a span sink on an SRTN run that preempts
	_, span := StartSpan(context.Background(), "run")
	span.WithAttributes(map[string]string{"engine": sim.EngineSRTN})
	workload := []sim.Descriptor{
		{Name: "P1", ArrivalTime: 0, ServiceTime: 8, Deadline: 20},
		{Name: "P2", ArrivalTime: 1, ServiceTime: 2, Deadline: 5},
	}
	res, err := sim.NewEngine(sim.EngineSRTN, sim.DefaultEngineConfig()).Run(workload, NewSpanSink(span))
	require.NoError(t, err)
	span.SetInt("end_clock", res.EndClock)

	// WHEN the span ends
	span.End(nil)

	// THEN one span was exported with a preempt event and one completion event per process
	spans := memExporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "run", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	names := make(map[string]int)
	for _, ev := range spans[0].Events {
		names[ev.Name]++
	}
	assert.Equal(t, 2, names["completion"])
	assert.GreaterOrEqual(t, names["preempt"], 1)

	// AND a failed run carries an error status
	memExporter.Reset()
	_, failed := StartSpan(context.Background(), "run")
	failed.End(errors.New("boom"))
	spans = memExporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
}

func TestSpan_NilSafe(t *testing.T) {
	var s *Span
	assert.Nil(t, s.WithAttributes(map[string]string{"k": "v"}))
	s.SetInt("k", 1)
	s.SetStatus(nil)
	s.End(nil)
	NewSpanSink(nil).OnCompletion(sim.CompletionMetrics{})
}

func TestInit_AfterInstall_LeavesOutputFileAlone(t *testing.T) {
	// GIVEN an installed provider
	require.NoError(t, InitWithExporter(memExporter))

	// WHEN a second initialisation names an output file
	path := filepath.Join(t.TempDir(), "spans.json")
	require.NoError(t, Init(path))

	// THEN the file is never created and the first memExporter stays in place
	assert.NoFileExists(t, path)
	memExporter.Reset()
	_, span := StartSpan(context.Background(), "after-init")
	span.End(nil)
	require.Len(t, memExporter.GetSpans(), 1)
	assert.Equal(t, "after-init", memExporter.GetSpans()[0].Name)
}
