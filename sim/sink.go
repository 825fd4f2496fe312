package sim

// Sink receives the ordered output of an engine run.
// OnEvent is called in chronological order; OnCompletion is called exactly once
// per completed process, in completion order, right after its completion event.
// Sinks must not retain or mutate engine state.
type Sink interface {
	OnEvent(ev Event)
	OnCompletion(m CompletionMetrics)
}

// MultiSink fans out every notification to each sink in order.
type MultiSink []Sink

func (ms MultiSink) OnEvent(ev Event) {
	for _, s := range ms {
		s.OnEvent(ev)
	}
}

func (ms MultiSink) OnCompletion(m CompletionMetrics) {
	for _, s := range ms {
		s.OnCompletion(m)
	}
}

// Recorder is an in-memory Sink that keeps everything it is given.
type Recorder struct {
	Events      []Event
	Completions []CompletionMetrics
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		Events:      make([]Event, 0),
		Completions: make([]CompletionMetrics, 0),
	}
}

func (r *Recorder) OnEvent(ev Event) {
	r.Events = append(r.Events, ev)
}

func (r *Recorder) OnCompletion(m CompletionMetrics) {
	r.Completions = append(r.Completions, m)
}

// EventsOfKind returns the recorded events of the given kind, in order.
func (r *Recorder) EventsOfKind(kind EventKind) []Event {
	out := make([]Event, 0)
	for _, ev := range r.Events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

type nopSink struct{}

func (nopSink) OnEvent(Event)                  {}
func (nopSink) OnCompletion(CompletionMetrics) {}

// NopSink discards everything.
var NopSink Sink = nopSink{}
