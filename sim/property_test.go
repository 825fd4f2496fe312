package sim

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomWorkload builds n descriptors with non-decreasing arrivals.
func randomWorkload(rng *rand.Rand, n int) []Descriptor {
	out := make([]Descriptor, n)
	var arrival int64
	for i := range out {
		arrival += int64(rng.Intn(4))
		out[i] = Descriptor{
			Name:        fmt.Sprintf("P%d", i+1),
			ArrivalTime: arrival,
			ServiceTime: int64(1 + rng.Intn(6)),
			Deadline:    int64(rng.Intn(20)),
		}
	}
	return out
}

type refOutcome struct {
	completion int64
	wait       int64
}

// referenceSchedule replays the workload with a linear scan over the table:
// one admission per tick, and for SRTN a re-selection of the leftmost record
// with the least remaining time every quantum ticks or when the CPU is free.
func referenceSchedule(workload []Descriptor, preemptive bool, quantum int64) map[string]refOutcome {
	type entry struct {
		d          Descriptor
		remaining  int64
		first      int64
		dispatched bool
		done       bool
	}
	table := make([]*entry, 0, len(workload))
	out := make(map[string]refOutcome, len(workload))
	next, live, running := 0, 0, -1
	var clock, q int64

	for next < len(workload) || live > 0 {
		if next < len(workload) && workload[next].ArrivalTime <= clock {
			table = append(table, &entry{d: workload[next], remaining: workload[next].ServiceTime})
			next++
			live++
		}
		if preemptive && q >= quantum {
			q = 0
		}
		if running < 0 || (preemptive && q == 0) {
			running = -1
			for i, e := range table {
				if e.done {
					continue
				}
				if running < 0 || (preemptive && e.remaining < table[running].remaining) {
					running = i
				}
			}
			if running >= 0 && !table[running].dispatched {
				table[running].dispatched = true
				table[running].first = clock
			}
		}
		if running < 0 {
			clock++
			q = 0
			continue
		}
		e := table[running]
		e.remaining--
		clock++
		q++
		if e.remaining == 0 {
			e.done = true
			live--
			turnaround := clock - e.d.ArrivalTime
			wait := turnaround - e.d.ServiceTime
			if preemptive {
				wait = e.first - e.d.ArrivalTime
			}
			out[e.d.Name] = refOutcome{completion: clock, wait: wait}
			running = -1
			q = 0
		}
	}
	return out
}

func TestEngines_MatchReferenceSchedule(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		workload := randomWorkload(rng, 1+rng.Intn(12))
		quantum := int64(1 + rng.Intn(4))
		for _, name := range EngineNames() {
			cfg := DefaultEngineConfig()
			cfg.Quantum = quantum
			res, err := NewEngine(name, cfg).Run(workload, nil)
			require.NoError(t, err)

			want := referenceSchedule(workload, name == EngineSRTN, quantum)
			require.Len(t, res.Completions, len(workload), "iter %d %s", iter, name)
			for _, m := range res.Completions {
				ref := want[m.Name]
				assert.Equal(t, ref.completion, m.CompletionClock, "iter %d %s %s completion", iter, name, m.Name)
				assert.Equal(t, ref.wait, m.WaitTime, "iter %d %s %s wait", iter, name, m.Name)
			}
		}
	}
}

func TestEngines_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 200; iter++ {
		workload := randomWorkload(rng, 1+rng.Intn(10))
		var totalService int64
		for _, d := range workload {
			totalService += d.ServiceTime
		}
		for _, name := range EngineNames() {
			rec := NewRecorder()
			res, err := NewEngine(name, DefaultEngineConfig()).Run(workload, rec)
			require.NoError(t, err)

			// conservation: every tick is either busy or idle, and busy ticks are exactly the service demand
			assert.Equal(t, totalService, res.BusyTicks, "iter %d %s busy", iter, name)
			assert.Equal(t, res.EndClock, res.BusyTicks+res.IdleTicks, "iter %d %s clock", iter, name)

			// each process completes exactly once and its metrics are consistent
			assert.Len(t, rec.EventsOfKind(EventArrival), len(workload))
			assert.Len(t, rec.EventsOfKind(EventCompletion), len(workload))
			seen := make(map[string]bool)
			for _, m := range res.Completions {
				assert.False(t, seen[m.Name], "completed twice: %s", m.Name)
				seen[m.Name] = true
				assert.Equal(t, m.CompletionClock-m.ArrivalTime, m.TurnaroundTime)
				assert.GreaterOrEqual(t, m.TurnaroundTime, m.ServiceTime)
				assert.Equal(t, m.TurnaroundTime-m.ServiceTime, m.ReadyTicks)
				assert.GreaterOrEqual(t, m.WaitTime, int64(0))
				assert.LessOrEqual(t, m.WaitTime, m.ReadyTicks)
				assert.Equal(t, m.TurnaroundTime <= m.Deadline, m.DeadlineMet)
			}

			// arrivals are admitted in file order
			for i, ev := range rec.EventsOfKind(EventArrival) {
				assert.Equal(t, workload[i].Name, ev.Process)
				assert.GreaterOrEqual(t, ev.Clock, ev.ArrivalTime)
			}

			if name == EngineFCFS {
				for i, m := range res.Completions {
					assert.Equal(t, workload[i].Name, m.Name, "fcfs completion order")
				}
				assert.Empty(t, rec.EventsOfKind(EventPreempt))
			}
		}
	}
}
