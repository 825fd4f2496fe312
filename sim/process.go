// Defines the Descriptor and Record types that model a single process in the simulation.
// Tracks arrival, service and remaining time, and the timestamps needed for wait/turnaround.

package sim

import (
	"fmt"
)

// MaxNameLength is the longest process name accepted by the loader.
const MaxNameLength = 10

// ProcessState represents the lifecycle state of a Record.
type ProcessState string

const (
	StateReady   ProcessState = "ready"
	StateRunning ProcessState = "running"
	StateExited  ProcessState = "exited"
)

// Descriptor is one immutable workload row produced by the loader.
type Descriptor struct {
	Name        string // Unique per run, at most MaxNameLength characters
	ArrivalTime int64  // Tick at which the process becomes eligible for admission (>= 0)
	ServiceTime int64  // Total CPU ticks required (> 0)
	Deadline    int64  // Target turnaround time (>= 0)
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s %d %d %d", d.Name, d.ArrivalTime, d.ServiceTime, d.Deadline)
}

// Record is the mutable, engine-owned view of an admitted process.
// A Record exists from admission until completion; afterwards its table slot
// is tombstoned and the Record is only reachable through CompletionMetrics.
type Record struct {
	Descriptor

	State         ProcessState
	RemainingTime int64 // Monotonically non-increasing; reaching 0 triggers completion
	AdmittedAt    int64 // Clock value at admission

	Dispatched        bool  // Whether the record has ever been selected to run
	FirstDispatchTime int64 // Clock value of the first selection; valid only when Dispatched
}

// NewRecord creates a Ready record for d admitted at clock.
func NewRecord(d Descriptor, clock int64) *Record {
	return &Record{
		Descriptor:    d,
		State:         StateReady,
		RemainingTime: d.ServiceTime,
		AdmittedAt:    clock,
	}
}

// dispatch marks the record Running and stamps the first dispatch time once.
func (r *Record) dispatch(clock int64) {
	r.State = StateRunning
	if !r.Dispatched {
		r.Dispatched = true
		r.FirstDispatchTime = clock
	}
}

// runTick consumes one tick of service. Remaining time never goes negative.
func (r *Record) runTick() {
	if r.RemainingTime > 0 {
		r.RemainingTime--
	}
}

// Done reports whether the record has no service left.
func (r *Record) Done() bool {
	return r.RemainingTime == 0
}

func (r Record) String() string {
	return fmt.Sprintf("Record: (Name: %s, State: %s, Remaining: %d, Arrival: %d)", r.Name, r.State, r.RemainingTime, r.ArrivalTime)
}
