package sim

import "fmt"

// EventKind identifies what happened at a given tick.
type EventKind string

const (
	EventArrival    EventKind = "arrival"    // Process admitted into the table
	EventDispatch   EventKind = "dispatch"   // Process is now in the running state
	EventPreempt    EventKind = "preempt"    // Running process displaced at a quantum boundary
	EventCompletion EventKind = "completion" // Process finished execution
)

// Event is a single entry of the chronological trace.
type Event struct {
	Kind    EventKind
	Clock   int64  // Simulation clock when the event occurred
	Process string // Process name
	Slot    int    // Table slot of the process

	// ArrivalTime is the descriptor's arrival time. It equals Clock for
	// arrivals unless admission was delayed by the per-tick admission limit.
	ArrivalTime int64
	Remaining   int64 // Remaining service at the time of the event
}

func (e Event) String() string {
	return fmt.Sprintf("Event: (Kind: %s, Clock: %d, Process: %s, Remaining: %d)", e.Kind, e.Clock, e.Process, e.Remaining)
}

func newEvent(kind EventKind, clock int64, slot int, r *Record) Event {
	return Event{
		Kind:        kind,
		Clock:       clock,
		Process:     r.Name,
		Slot:        slot,
		ArrivalTime: r.ArrivalTime,
		Remaining:   r.RemainingTime,
	}
}
