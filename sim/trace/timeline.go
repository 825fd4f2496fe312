package trace

// Segment is one contiguous run of a process on the CPU, [Start, End).
type Segment struct {
	Process string
	Start   int64
	End     int64
}

// Timeline reconstructs the Gantt segments of a trace. A segment opens on the
// dispatch of a process that is not already running and closes on its
// preemption or completion. Re-confirmation dispatches do not split a segment.
// A segment still open at the end of the trace (aborted run) is dropped.
func Timeline(st *SimulationTrace) []Segment {
	segments := make([]Segment, 0)
	if st == nil {
		return segments
	}

	var open *Segment
	for _, r := range st.Records {
		switch r.Kind {
		case KindDispatch:
			if open != nil && open.Process == r.Process {
				continue
			}
			if open != nil {
				open.End = r.Clock
				segments = append(segments, *open)
			}
			open = &Segment{Process: r.Process, Start: r.Clock}
		case KindPreempt, KindCompletion:
			if open != nil && open.Process == r.Process {
				open.End = r.Clock
				segments = append(segments, *open)
				open = nil
			}
		}
	}
	return segments
}

// BusyTicks returns the total length of all segments.
func BusyTicks(segments []Segment) int64 {
	var total int64
	for _, s := range segments {
		total += s.End - s.Start
	}
	return total
}
