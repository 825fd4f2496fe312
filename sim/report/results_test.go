package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/inference-sim/schedsim/sim"
)

func TestFormatRow(t *testing.T) {
	m := sim.CompletionMetrics{Name: "P2", WaitTime: 3, TurnaroundTime: 5, DeadlineMet: true}
	assert.Equal(t, "P2 3 5 1", FormatRow(m))

	m.DeadlineMet = false
	assert.Equal(t, "P2 3 5 0", FormatRow(m))
}

func TestDefaultResults_PerEngine(t *testing.T) {
	assert.Equal(t, "results-1.txt", DefaultResults(sim.EngineFCFS))
	assert.Equal(t, "results-1.txt", DefaultResults(""))
	assert.Equal(t, "results-2.txt", DefaultResults(sim.EngineSRTN))
}

func TestResultsFile_Flush_WritesRowsInCompletionOrder(t *testing.T) {
	// GIVEN an FCFS run collected by a results file
	ctx := context.Background()
	out := filepath.Join(t.TempDir(), "results-1.txt")
	rf := NewResultsFile(afs.New(), out)
	workload := []sim.Descriptor{
		{Name: "P1", ArrivalTime: 0, ServiceTime: 3, Deadline: 3},
		{Name: "P2", ArrivalTime: 1, ServiceTime: 2, Deadline: 3},
	}
	_, err := sim.NewEngine(sim.EngineFCFS, sim.DefaultEngineConfig()).Run(workload, rf)
	require.NoError(t, err)

	// WHEN the file is flushed
	require.NoError(t, rf.Flush(ctx))

	// THEN it holds one row per completion
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "P1 0 3 1\nP2 2 4 0\n", string(data))
	assert.Equal(t, []string{"P1 0 3 1", "P2 2 4 0"}, rf.Rows())
}

func TestResultsFile_Truncate_ClearsStaleContent(t *testing.T) {
	// GIVEN a results file left over from an earlier run
	ctx := context.Background()
	out := filepath.Join(t.TempDir(), "results-2.txt")
	require.NoError(t, os.WriteFile(out, []byte("OLD 1 1 1\n"), 0o644))

	// WHEN it is truncated
	rf := NewResultsFile(afs.New(), out)
	require.NoError(t, rf.Truncate(ctx))

	// THEN it is empty
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestResultsFile_AbortedRun_RetainsCompletedRows(t *testing.T) {
	// GIVEN a table that can only ever hold two processes
	ctx := context.Background()
	out := filepath.Join(t.TempDir(), "results-1.txt")
	rf := NewResultsFile(afs.New(), out)
	cfg := sim.DefaultEngineConfig()
	cfg.Capacity = 2
	workload := []sim.Descriptor{
		{Name: "P1", ArrivalTime: 0, ServiceTime: 1, Deadline: 5},
		{Name: "P2", ArrivalTime: 0, ServiceTime: 1, Deadline: 5},
		{Name: "P3", ArrivalTime: 2, ServiceTime: 1, Deadline: 5},
	}

	// WHEN the run aborts on the third admission
	_, err := sim.NewEngine(sim.EngineFCFS, cfg).Run(workload, rf)
	require.ErrorIs(t, err, sim.ErrCapacityExceeded)
	require.NoError(t, rf.Flush(ctx))

	// THEN rows written before the abort are kept
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "P1 0 1 1\nP2 1 2 1\n", string(data))
}
