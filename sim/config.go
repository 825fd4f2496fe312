package sim

import "fmt"

// DefaultQuantum is the SRTN re-selection interval in ticks.
const DefaultQuantum = 3

// EngineConfig groups the tunables shared by both engines.
type EngineConfig struct {
	Capacity             int   // max table slots ever used in one run (0 = unbounded)
	Quantum              int64 // SRTN ticks between forced re-selections (must be > 0)
	MaxAdmissionsPerTick int   // descriptors admitted per tick, in file order (0 = unbounded)
}

// DefaultEngineConfig returns the configuration matching the reference behaviour:
// unbounded table, quantum of 3, one admission per tick.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Capacity:             0,
		Quantum:              DefaultQuantum,
		MaxAdmissionsPerTick: 1,
	}
}

// Validate checks parameter ranges.
func (c EngineConfig) Validate() error {
	if c.Capacity < 0 {
		return fmt.Errorf("capacity must be >= 0, got %d", c.Capacity)
	}
	if c.Quantum <= 0 {
		return fmt.Errorf("quantum must be > 0, got %d", c.Quantum)
	}
	if c.MaxAdmissionsPerTick < 0 {
		return fmt.Errorf("admissions per tick must be >= 0, got %d", c.MaxAdmissionsPerTick)
	}
	return nil
}
