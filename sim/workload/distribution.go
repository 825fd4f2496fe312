package workload

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// TickSampler draws durations in whole ticks.
type TickSampler interface {
	// Sample returns a duration >= the sampler's floor.
	Sample(rng *rand.Rand) int64
}

// DistSpec parameterizes a duration distribution.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// GaussianSampler produces clamped Gaussian durations.
type GaussianSampler struct {
	mean, stdDev float64
	min, max     int64
}

func (s *GaussianSampler) Sample(rng *rand.Rand) int64 {
	if s.min == s.max {
		return s.min
	}
	val := rng.NormFloat64()*s.stdDev + s.mean
	clamped := math.Min(float64(s.max), math.Max(float64(s.min), val))
	return int64(math.Round(clamped))
}

// ExponentialSampler produces exponentially-distributed durations.
type ExponentialSampler struct {
	mean  float64
	floor int64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) int64 {
	return max(s.floor, int64(math.Round(rng.ExpFloat64()*s.mean)))
}

// UniformSampler draws uniformly from [min, max].
type UniformSampler struct {
	min, max int64
}

func (s *UniformSampler) Sample(rng *rand.Rand) int64 {
	return s.min + rng.Int63n(s.max-s.min+1)
}

// ConstantSampler always returns the same fixed value.
type ConstantSampler struct {
	value int64
}

func (s *ConstantSampler) Sample(_ *rand.Rand) int64 {
	return s.value
}

// EmpiricalPDFSampler samples from an empirical probability distribution
// using inverse CDF via binary search.
type EmpiricalPDFSampler struct {
	values []int64   // Sorted durations
	cdf    []float64 // Cumulative probabilities (same length as values)
}

// NewEmpiricalPDFSampler creates a sampler from a PDF map (duration → probability).
// Probabilities are normalized if they don't sum to 1.0.
func NewEmpiricalPDFSampler(pdf map[int64]float64) *EmpiricalPDFSampler {
	keys := make([]int64, 0, len(pdf))
	for k := range pdf {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	totalProb := 0.0
	for _, k := range keys {
		if pdf[k] > 0 {
			totalProb += pdf[k]
		}
	}

	values := make([]int64, 0, len(keys))
	cdf := make([]float64, 0, len(keys))
	cumulative := 0.0
	for _, k := range keys {
		p := pdf[k]
		if p <= 0 {
			continue
		}
		cumulative += p / totalProb
		values = append(values, k)
		cdf = append(cdf, cumulative)
	}
	// Ensure last CDF entry is exactly 1.0
	if len(cdf) > 0 {
		cdf[len(cdf)-1] = 1.0
	}
	return &EmpiricalPDFSampler{values: values, cdf: cdf}
}

func (s *EmpiricalPDFSampler) Sample(rng *rand.Rand) int64 {
	if len(s.values) == 1 {
		return s.values[0]
	}
	idx := sort.SearchFloat64s(s.cdf, rng.Float64())
	if idx >= len(s.values) {
		idx = len(s.values) - 1
	}
	return s.values[idx]
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewTickSampler creates a TickSampler from a DistSpec. Every sample is at
// least floor: 1 for service times, 0 for deadline slack.
func NewTickSampler(spec DistSpec, floor int64) (TickSampler, error) {
	switch spec.Type {
	case "gaussian":
		if err := requireParam(spec.Params, "mean", "std_dev", "min", "max"); err != nil {
			return nil, err
		}
		lo, hi := int64(spec.Params["min"]), int64(spec.Params["max"])
		if lo < floor || hi < lo {
			return nil, fmt.Errorf("gaussian range [%d, %d] invalid; min must be >= %d", lo, hi, floor)
		}
		return &GaussianSampler{mean: spec.Params["mean"], stdDev: spec.Params["std_dev"], min: lo, max: hi}, nil

	case "exponential":
		if err := requireParam(spec.Params, "mean"); err != nil {
			return nil, err
		}
		if spec.Params["mean"] <= 0 {
			return nil, fmt.Errorf("exponential mean must be > 0")
		}
		return &ExponentialSampler{mean: spec.Params["mean"], floor: floor}, nil

	case "uniform":
		if err := requireParam(spec.Params, "min", "max"); err != nil {
			return nil, err
		}
		lo, hi := int64(spec.Params["min"]), int64(spec.Params["max"])
		if lo < floor || hi < lo {
			return nil, fmt.Errorf("uniform range [%d, %d] invalid; min must be >= %d", lo, hi, floor)
		}
		return &UniformSampler{min: lo, max: hi}, nil

	case "constant":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		val := int64(spec.Params["value"])
		if val < floor {
			return nil, fmt.Errorf("constant value %d must be >= %d", val, floor)
		}
		return &ConstantSampler{value: val}, nil

	case "empirical":
		// Params keys are durations, values are probabilities
		pdf := make(map[int64]float64, len(spec.Params))
		for k, v := range spec.Params {
			var ticks int64
			if _, err := fmt.Sscanf(k, "%d", &ticks); err != nil {
				return nil, fmt.Errorf("empirical PDF key %q is not an integer: %w", k, err)
			}
			if ticks < floor {
				return nil, fmt.Errorf("empirical PDF key %d must be >= %d", ticks, floor)
			}
			pdf[ticks] = v
		}
		s := NewEmpiricalPDFSampler(pdf)
		if len(s.values) == 0 {
			return nil, fmt.Errorf("empirical distribution has no valid bins")
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
	}
}
