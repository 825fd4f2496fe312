package workload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/schedsim/sim"
)

// maxGenerated keeps generated names ("P" + index) within sim.MaxNameLength.
const maxGenerated = 999_999_999

// GeneratorSpec describes a synthetic workload.
type GeneratorSpec struct {
	Seed    int64       `yaml:"seed"`
	Count   int         `yaml:"count"`
	Rate    float64     `yaml:"rate"` // mean arrivals per tick
	Arrival ArrivalSpec `yaml:"arrival"`
	Service DistSpec    `yaml:"service"`
	Slack   DistSpec    `yaml:"slack"` // deadline = service + slack
}

// DefaultGeneratorSpec returns a small mixed workload: one arrival every two
// ticks on average, service 1..8 ticks, slack 0..10 ticks.
func DefaultGeneratorSpec() GeneratorSpec {
	return GeneratorSpec{
		Seed:    42,
		Count:   10,
		Rate:    0.5,
		Arrival: ArrivalSpec{Process: "poisson"},
		Service: DistSpec{Type: "uniform", Params: map[string]float64{"min": 1, "max": 8}},
		Slack:   DistSpec{Type: "uniform", Params: map[string]float64{"min": 0, "max": 10}},
	}
}

// ParseGeneratorSpec decodes a generator spec with strict field checking.
// Zero-valued seed, count, rate and distributions take the DefaultGeneratorSpec values.
func ParseGeneratorSpec(data []byte) (GeneratorSpec, error) {
	var spec GeneratorSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return spec, fmt.Errorf("parsing generator spec: %w", err)
	}
	def := DefaultGeneratorSpec()
	if spec.Seed == 0 {
		spec.Seed = def.Seed
	}
	if spec.Count == 0 {
		spec.Count = def.Count
	}
	if spec.Rate == 0 {
		spec.Rate = def.Rate
	}
	if spec.Service.Type == "" {
		spec.Service = def.Service
	}
	if spec.Slack.Type == "" {
		spec.Slack = def.Slack
	}
	return spec, spec.Validate()
}

// Validate checks parameter ranges. Distribution parameters are checked when
// the samplers are built.
func (s GeneratorSpec) Validate() error {
	if s.Count < 0 || s.Count > maxGenerated {
		return fmt.Errorf("count must be in [0, %d], got %d", maxGenerated, s.Count)
	}
	if s.Rate <= 0 {
		return fmt.Errorf("rate must be > 0, got %g", s.Rate)
	}
	switch s.Arrival.Process {
	case "", "poisson", "gamma", "weibull":
	default:
		return fmt.Errorf("unknown arrival process %q", s.Arrival.Process)
	}
	return nil
}

// Generate creates a workload from spec. The result is deterministic given the
// same spec, arrives in non-decreasing order and passes the loader's validation.
func Generate(spec GeneratorSpec) ([]sim.Descriptor, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator spec: %w", err)
	}
	service, err := NewTickSampler(spec.Service, 1)
	if err != nil {
		return nil, fmt.Errorf("service distribution: %w", err)
	}
	slack, err := NewTickSampler(spec.Slack, 0)
	if err != nil {
		return nil, fmt.Errorf("slack distribution: %w", err)
	}
	arrivals := NewArrivalSampler(spec.Arrival, spec.Rate)

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))
	arrivalRNG := rng.ForSubsystem(sim.SubsystemArrivals)
	serviceRNG := rng.ForSubsystem(sim.SubsystemService)
	slackRNG := rng.ForSubsystem(sim.SubsystemSlack)

	descs := make([]sim.Descriptor, 0, spec.Count)
	var clock int64
	for i := 0; i < spec.Count; i++ {
		if i > 0 {
			clock += arrivals.SampleGap(arrivalRNG)
		}
		s := service.Sample(serviceRNG)
		descs = append(descs, sim.Descriptor{
			Name:        fmt.Sprintf("P%d", i+1),
			ArrivalTime: clock,
			ServiceTime: s,
			Deadline:    s + slack.Sample(slackRNG),
		})
	}
	return descs, nil
}

// FormatLines renders descs in the line format read by ParseText.
func FormatLines(descs []sim.Descriptor) string {
	var sb strings.Builder
	for _, d := range descs {
		sb.WriteString(d.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
