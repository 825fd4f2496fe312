// Tracks per-process completion metrics and run-wide results such as:
// wait time, turnaround time, deadline compliance, CPU busy/idle ticks.

package sim

// WaitFormula names how an engine derives CompletionMetrics.Wait.
type WaitFormula string

const (
	// WaitTurnaroundMinusService is wait = turnaround - service (FCFS).
	WaitTurnaroundMinusService WaitFormula = "turnaround-minus-service"
	// WaitFirstDispatch is wait = firstDispatch - arrival (SRTN). It ignores time
	// spent Ready after a preemption; ReadyTicks carries that figure instead.
	WaitFirstDispatch WaitFormula = "first-dispatch"
)

// CompletionMetrics is written once per process at completion.
type CompletionMetrics struct {
	Name            string
	CompletionClock int64
	ArrivalTime     int64
	ServiceTime     int64
	Deadline        int64
	WaitTime        int64 // engine-specific formula, see WaitFormula
	TurnaroundTime  int64 // CompletionClock - ArrivalTime
	ReadyTicks      int64 // TurnaroundTime - ServiceTime: every tick spent not running since arrival
	DeadlineMet     bool  // TurnaroundTime <= Deadline
}

// newCompletionMetrics derives the metrics for r completing at clock.
func newCompletionMetrics(r *Record, clock int64, formula WaitFormula) CompletionMetrics {
	turnaround := clock - r.ArrivalTime
	m := CompletionMetrics{
		Name:            r.Name,
		CompletionClock: clock,
		ArrivalTime:     r.ArrivalTime,
		ServiceTime:     r.ServiceTime,
		Deadline:        r.Deadline,
		TurnaroundTime:  turnaround,
		ReadyTicks:      turnaround - r.ServiceTime,
		DeadlineMet:     turnaround <= r.Deadline,
	}
	switch formula {
	case WaitFirstDispatch:
		m.WaitTime = r.FirstDispatchTime - r.ArrivalTime
	default:
		m.WaitTime = m.ReadyTicks
	}
	return m
}

// DeadlineFlag returns 1 when the deadline was met and 0 otherwise, as written to results rows.
func (m CompletionMetrics) DeadlineFlag() int {
	if m.DeadlineMet {
		return 1
	}
	return 0
}

// Result aggregates the outcome of one engine run. When a run aborts, Result
// still describes everything that happened up to the failing tick.
type Result struct {
	Engine      string
	EndClock    int64 // clock value when the run stopped
	BusyTicks   int64 // ticks during which some record was Running
	IdleTicks   int64 // ticks with nothing to run
	Admitted    int
	Completions []CompletionMetrics
}

func newResult(engine string) *Result {
	return &Result{
		Engine:      engine,
		Completions: make([]CompletionMetrics, 0),
	}
}

func (r *Result) complete(m CompletionMetrics) {
	r.Completions = append(r.Completions, m)
}
