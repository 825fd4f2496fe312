package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	Arrivals        int
	Dispatches      int
	Preemptions     int
	Completions     int
	ContextSwitches int            // dispatches that changed the running process
	DispatchCounts  map[string]int // process name → number of dispatch events
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DispatchCounts: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	last := ""
	for _, r := range st.Records {
		switch r.Kind {
		case KindArrival:
			summary.Arrivals++
		case KindDispatch:
			summary.Dispatches++
			summary.DispatchCounts[r.Process]++
			if r.Process != last {
				summary.ContextSwitches++
			}
			last = r.Process
		case KindPreempt:
			summary.Preemptions++
		case KindCompletion:
			summary.Completions++
		}
	}
	return summary
}
