package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// FCFSEngine is the non-preemptive first-come-first-served simulator.
// Records run strictly in admission order and are never interrupted, so
// completion order equals admission order.
type FCFSEngine struct {
	cfg EngineConfig
}

// NewFCFSEngine creates an FCFS engine. Quantum is ignored.
func NewFCFSEngine(cfg EngineConfig) *FCFSEngine {
	return &FCFSEngine{cfg: cfg}
}

func (e *FCFSEngine) Name() string { return EngineFCFS }

// Run simulates workload tick by tick. head is the oldest admitted record,
// which is the one running; slots behind it wait in admission order.
func (e *FCFSEngine) Run(workload []Descriptor, sink Sink) (*Result, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("fcfs: %w", err)
	}
	rs := newRunState(EngineFCFS, e.cfg, workload, sink)
	head := 0

	for rs.hasPending() || head < rs.table.Len() {
		slots, err := rs.admit()
		if err != nil {
			return rs.finish(), err
		}
		for _, slot := range slots {
			// admitted into an empty table: it is the head and starts immediately
			if slot == head {
				rs.dispatch(head, true)
			}
		}

		r := rs.table.At(head)
		if r == nil {
			rs.idle()
			continue
		}
		rs.runTick(r)
		if !r.Done() {
			continue
		}
		rs.complete(head, WaitTurnaroundMinusService)
		head++
		if rs.table.At(head) != nil {
			rs.dispatch(head, true)
		}
	}

	res := rs.finish()
	logrus.Debugf("[tick %07d] fcfs drained: %d completed, busy=%d idle=%d", res.EndClock, len(res.Completions), res.BusyTicks, res.IdleTicks)
	return res, nil
}
