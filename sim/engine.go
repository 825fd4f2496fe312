package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Engine runs one workload to completion under a fixed queue discipline.
// Run returns the Result and, on abort, the terminal error; the partial Result
// and every notification already delivered to sink remain valid.
type Engine interface {
	Name() string
	Run(workload []Descriptor, sink Sink) (*Result, error)
}

const (
	EngineFCFS = "fcfs"
	EngineSRTN = "srtn"
)

// ValidEngines is the set of recognized engine names.
var ValidEngines = map[string]bool{"": true, EngineFCFS: true, EngineSRTN: true}

// IsValidEngine returns true if name is a recognized engine name.
func IsValidEngine(name string) bool {
	return ValidEngines[name]
}

// EngineNames lists the engines in their canonical order.
func EngineNames() []string {
	return []string{EngineFCFS, EngineSRTN}
}

// NewEngine creates an Engine by name.
// Valid names: "fcfs" (default), "srtn".
// Empty string defaults to FCFS (for CLI flag default compatibility).
// Panics on unrecognized names.
func NewEngine(name string, cfg EngineConfig) Engine {
	if !IsValidEngine(name) {
		panic(fmt.Sprintf("unknown engine %q", name))
	}
	switch name {
	case "", EngineFCFS:
		return NewFCFSEngine(cfg)
	case EngineSRTN:
		return NewSRTNEngine(cfg)
	default:
		panic(fmt.Sprintf("unhandled engine %q", name))
	}
}

// runState is the state owned by a single engine invocation: clock, table,
// read cursor over the workload, and the output sink.
type runState struct {
	cfg     EngineConfig
	table   *ProcessTable
	pending []Descriptor
	next    int // index of the next unread descriptor
	clock   int64
	sink    Sink
	res     *Result
}

func newRunState(engine string, cfg EngineConfig, workload []Descriptor, sink Sink) *runState {
	if sink == nil {
		sink = NopSink
	}
	return &runState{
		cfg:     cfg,
		table:   NewProcessTable(cfg.Capacity),
		pending: workload,
		sink:    sink,
		res:     newResult(engine),
	}
}

func (rs *runState) hasPending() bool {
	return rs.next < len(rs.pending)
}

// admit admits unread descriptors whose arrival time has been reached, in file
// order, up to the per-tick limit. Only the next unread descriptor is ever
// compared against the clock. Returns the slots admitted this tick.
func (rs *runState) admit() ([]int, error) {
	admitted := make([]int, 0, 1)
	for rs.hasPending() {
		if rs.cfg.MaxAdmissionsPerTick > 0 && len(admitted) >= rs.cfg.MaxAdmissionsPerTick {
			break
		}
		d := rs.pending[rs.next]
		if d.ArrivalTime > rs.clock {
			break
		}
		r := NewRecord(d, rs.clock)
		slot, err := rs.table.Admit(r)
		if err != nil {
			logrus.Errorf("[tick %07d] %v", rs.clock, err)
			return admitted, err
		}
		rs.next++
		rs.res.Admitted++
		logrus.Debugf("[tick %07d] admitted %s into slot %d (arrival=%d, service=%d)", rs.clock, d.Name, slot, d.ArrivalTime, d.ServiceTime)
		rs.sink.OnEvent(newEvent(EventArrival, rs.clock, slot, r))
		admitted = append(admitted, slot)
	}
	return admitted, nil
}

// dispatch selects the record in slot to run. The first dispatch time is stamped
// exactly once; announce controls whether a Dispatch event is emitted.
func (rs *runState) dispatch(slot int, announce bool) *Record {
	r := rs.table.At(slot)
	r.dispatch(rs.clock)
	if announce {
		logrus.Debugf("[tick %07d] dispatch %s (remaining=%d)", rs.clock, r.Name, r.RemainingTime)
		rs.sink.OnEvent(newEvent(EventDispatch, rs.clock, slot, r))
	}
	return r
}

// runTick runs r for one tick and advances the clock.
func (rs *runState) runTick(r *Record) {
	r.runTick()
	rs.res.BusyTicks++
	rs.clock++
	logrus.Tracef("[tick %07d] ran %s (remaining=%d)", rs.clock, r.Name, r.RemainingTime)
}

// idle advances the clock while nothing is runnable. When no record is live it
// jumps straight to the next arrival; the tick-by-tick outcome is identical.
func (rs *runState) idle() {
	step := int64(1)
	if rs.table.Live() == 0 && rs.hasPending() {
		if gap := rs.pending[rs.next].ArrivalTime - rs.clock; gap > step {
			step = gap
		}
	}
	rs.res.IdleTicks += step
	rs.clock += step
}

// complete transitions the record in slot to Exited, reports it, and tombstones the slot.
func (rs *runState) complete(slot int, formula WaitFormula) CompletionMetrics {
	r := rs.table.Remove(slot)
	r.State = StateExited
	m := newCompletionMetrics(r, rs.clock, formula)
	logrus.Debugf("[tick %07d] completed %s (wait=%d, turnaround=%d, deadline met=%v)", rs.clock, r.Name, m.WaitTime, m.TurnaroundTime, m.DeadlineMet)
	rs.sink.OnEvent(newEvent(EventCompletion, rs.clock, slot, r))
	rs.sink.OnCompletion(m)
	rs.res.complete(m)
	return m
}

// finish stamps the end clock on the result.
func (rs *runState) finish() *Result {
	rs.res.EndClock = rs.clock
	return rs.res
}
