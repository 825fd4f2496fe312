package workload

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/schedsim/sim"
)

func TestParseYAML_ValidSpec(t *testing.T) {
	data := []byte(`
version: "1"
processes:
  - name: P1
    arrival: 0
    service: 6
    deadline: 20
  - name: P2
    arrival: 1
    service: 2
    deadline: 20
`)
	descs, err := ParseYAML(data, Options{})
	require.NoError(t, err)
	assert.Equal(t, []sim.Descriptor{
		{Name: "P1", ArrivalTime: 0, ServiceTime: 6, Deadline: 20},
		{Name: "P2", ArrivalTime: 1, ServiceTime: 2, Deadline: 20},
	}, descs)
}

func TestParseYAML_UnknownField_Rejected(t *testing.T) {
	// GIVEN a typo in a field name ("servce")
	data := []byte(`
processes:
  - name: P1
    arrival: 0
    servce: 6
    deadline: 20
`)
	// WHEN parsed strictly
	_, err := ParseYAML(data, Options{})

	// THEN the typo is a MalformedRecord
	require.Error(t, err)
	assert.True(t, errors.Is(err, sim.ErrMalformedRecord))
}

func TestParseYAML_InvalidEntry_ReportsIndex(t *testing.T) {
	data := []byte(`
processes:
  - {name: P1, arrival: 0, service: 6, deadline: 20}
  - {name: P2, arrival: 1, service: 0, deadline: 20}
`)
	_, err := ParseYAML(data, Options{})

	var recErr *RecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, 2, recErr.Line)
	assert.Contains(t, recErr.Reason, "service time")
}

func TestIsYAML(t *testing.T) {
	assert.True(t, IsYAML("workload.yaml"))
	assert.True(t, IsYAML("mem://localhost/w/WORK.YML"))
	assert.False(t, IsYAML("processes.txt"))
	assert.False(t, IsYAML("processes"))
}
