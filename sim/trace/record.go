// Package trace provides event-trace recording for post-run schedule analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Kind names the event a Record describes.
type Kind string

const (
	KindArrival    Kind = "arrival"
	KindDispatch   Kind = "dispatch"
	KindPreempt    Kind = "preempt"
	KindCompletion Kind = "completion"
)

// Record captures a single scheduling event.
type Record struct {
	Clock     int64
	Kind      Kind
	Process   string
	Slot      int
	Remaining int64 // remaining service when the event occurred
}
