package sim

import "errors"

// Error kinds. Every failure is terminal for the run; callers test with errors.Is.
var (
	// ErrInputUnavailable means the workload source could not be opened or read.
	ErrInputUnavailable = errors.New("workload source unavailable")
	// ErrCapacityExceeded means admission would exceed the process table capacity.
	ErrCapacityExceeded = errors.New("process table capacity exceeded")
	// ErrMalformedRecord means a workload row does not parse into a valid Descriptor.
	ErrMalformedRecord = errors.New("malformed workload record")
)
