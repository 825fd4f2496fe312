package workload

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/schedsim/sim"
)

// WorkloadSpec is the YAML workload document.
type WorkloadSpec struct {
	Version   string        `yaml:"version"`
	Processes []ProcessSpec `yaml:"processes"`
}

// ProcessSpec is one process entry of a WorkloadSpec.
type ProcessSpec struct {
	Name     string `yaml:"name"`
	Arrival  int64  `yaml:"arrival"`
	Service  int64  `yaml:"service"`
	Deadline int64  `yaml:"deadline"`
}

// ParseYAML parses a YAML workload document.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func ParseYAML(data []byte, opts Options) ([]sim.Descriptor, error) {
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("%w: parsing workload YAML: %v", sim.ErrMalformedRecord, err)
	}
	return spec.Descriptors(opts)
}

// Descriptors validates the spec and converts it into descriptors.
func (s *WorkloadSpec) Descriptors(opts Options) ([]sim.Descriptor, error) {
	descs := make([]sim.Descriptor, 0, len(s.Processes))
	idx := make([]int, 0, len(s.Processes))
	for i, p := range s.Processes {
		d := sim.Descriptor{Name: p.Name, ArrivalTime: p.Arrival, ServiceTime: p.Service, Deadline: p.Deadline}
		if err := validateDescriptor(d); err != nil {
			return nil, &RecordError{Line: i + 1, Text: d.String(), Reason: err.Error()}
		}
		descs = append(descs, d)
		idx = append(idx, i+1)
	}
	if err := finalize(descs, idx, opts); err != nil {
		return nil, err
	}
	return descs, nil
}
