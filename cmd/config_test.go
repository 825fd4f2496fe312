package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/trace"
)

// newTestRunCmd returns a run-like command whose flags are bound to the
// package-level flag variables, reset to their defaults and parsed from args.
func newTestRunCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "run"}
	registerCommonFlags(cmd)
	registerRunFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseRunConfig_AllFields(t *testing.T) {
	data := []byte(`
engine: srtn
workload: jobs.txt
capacity: 8
quantum: 2
admissions_per_tick: 0
sort_arrivals: true
results:
  fcfs: out-fcfs.txt
  srtn: out-srtn.txt
trace_level: events
`)
	rc, err := ParseRunConfig(data)
	require.NoError(t, err)
	assert.Equal(t, "srtn", rc.Engine)
	assert.Equal(t, "jobs.txt", rc.Workload)
	require.NotNil(t, rc.Capacity)
	assert.Equal(t, 8, *rc.Capacity)
	require.NotNil(t, rc.Quantum)
	assert.Equal(t, int64(2), *rc.Quantum)
	require.NotNil(t, rc.AdmissionsPerTick)
	assert.Equal(t, 0, *rc.AdmissionsPerTick)
	require.NotNil(t, rc.SortArrivals)
	assert.True(t, *rc.SortArrivals)
	assert.Equal(t, "out-srtn.txt", rc.Results.SRTN)
	assert.Equal(t, "events", rc.TraceLevel)
}

func TestParseRunConfig_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown field", "engin: srtn\n"},
		{"unknown engine", "engine: roundrobin\n"},
		{"unknown trace level", "trace_level: verbose\n"},
		{"wrong type", "capacity: many\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRunConfig([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}

func TestResolveOptions_Defaults(t *testing.T) {
	cmd := newTestRunCmd(t)

	opts, err := resolveOptions(context.Background(), afs.New(), cmd, nil)

	require.NoError(t, err)
	assert.Equal(t, sim.EngineFCFS, opts.EngineName)
	assert.Equal(t, "processes.txt", opts.Workload)
	assert.Equal(t, sim.DefaultEngineConfig(), opts.Engine)
	assert.Equal(t, "results-1.txt", opts.resultsFor(sim.EngineFCFS))
	assert.Equal(t, "results-2.txt", opts.resultsFor(sim.EngineSRTN))
	assert.Equal(t, trace.TraceLevelNone, opts.TraceLevel)
}

func TestResolveOptions_ExplicitFlagsOverrideConfig(t *testing.T) {
	// GIVEN a run config setting engine, quantum and capacity
	dir := t.TempDir()
	cfg := writeFile(t, dir, "run.yaml", "engine: srtn\nquantum: 5\ncapacity: 4\n")

	// WHEN the quantum flag is also set explicitly
	cmd := newTestRunCmd(t, "--config", cfg, "--quantum", "2")
	opts, err := resolveOptions(context.Background(), afs.New(), cmd, nil)

	// THEN the flag wins for quantum and the config supplies the rest
	require.NoError(t, err)
	assert.Equal(t, sim.EngineSRTN, opts.EngineName)
	assert.Equal(t, int64(2), opts.Engine.Quantum)
	assert.Equal(t, 4, opts.Engine.Capacity)
}

func TestResolveOptions_ResultsFlagAppliesToSelectedEngine(t *testing.T) {
	cmd := newTestRunCmd(t, "--engine", "srtn", "--results", "mine.txt")

	opts, err := resolveOptions(context.Background(), afs.New(), cmd, nil)

	require.NoError(t, err)
	assert.Equal(t, "mine.txt", opts.resultsFor(sim.EngineSRTN))
	assert.Equal(t, "results-1.txt", opts.resultsFor(sim.EngineFCFS))
}

func TestResolveOptions_PositionalWorkload(t *testing.T) {
	cmd := newTestRunCmd(t)

	opts, err := resolveOptions(context.Background(), afs.New(), cmd, []string{"jobs.txt"})

	require.NoError(t, err)
	assert.Equal(t, "jobs.txt", opts.Workload)
}

func TestResolveOptions_GanttEnablesTrace(t *testing.T) {
	cmd := newTestRunCmd(t, "--gantt")

	opts, err := resolveOptions(context.Background(), afs.New(), cmd, nil)

	require.NoError(t, err)
	assert.Equal(t, trace.TraceLevelEvents, opts.TraceLevel)
}

func TestResolveOptions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown engine", []string{"--engine", "lottery"}},
		{"zero quantum", []string{"--quantum", "0"}},
		{"negative capacity", []string{"--capacity", "-1"}},
		{"unknown trace level", []string{"--trace-level", "all"}},
		{"missing config", []string{"--config", "/nonexistent/run.yaml"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := newTestRunCmd(t, tc.args...)
			_, err := resolveOptions(context.Background(), afs.New(), cmd, nil)
			assert.Error(t, err)
		})
	}
}
