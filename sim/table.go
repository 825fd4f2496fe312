// Implements the ProcessTable, which holds every admitted-but-not-finished record.
// Records are appended on admission and tombstoned on completion.

package sim

import (
	"fmt"
	"strings"
)

// ProcessTable is an index-stable collection of Records.
// Slot indices are assigned in admission order and never reused within a run,
// so the slot index doubles as the FIFO tie-break key for equal remaining times.
// A nil slot is a tombstone: the process that occupied it has completed.
type ProcessTable struct {
	slots    []*Record
	capacity int // 0 = unbounded
	live     int
}

// NewProcessTable creates an empty table. capacity bounds the total number of
// slots a run may use; 0 means unbounded.
func NewProcessTable(capacity int) *ProcessTable {
	return &ProcessTable{capacity: capacity}
}

// Admit appends r to the next free slot and returns its index.
// Returns ErrCapacityExceeded when the table is full; r is not admitted.
func (pt *ProcessTable) Admit(r *Record) (int, error) {
	if r == nil {
		panic("Admit: record must not be nil")
	}
	if pt.capacity > 0 && len(pt.slots) >= pt.capacity {
		return -1, fmt.Errorf("admitting %s: %w (capacity %d)", r.Name, ErrCapacityExceeded, pt.capacity)
	}
	pt.slots = append(pt.slots, r)
	pt.live++
	return len(pt.slots) - 1, nil
}

// Remove tombstones slot and returns the record it held.
// Panics if the slot is out of range or already tombstoned.
func (pt *ProcessTable) Remove(slot int) *Record {
	r := pt.At(slot)
	if r == nil {
		panic(fmt.Sprintf("Remove: slot %d is empty", slot))
	}
	pt.slots[slot] = nil
	pt.live--
	return r
}

// At returns the record in slot, or nil for tombstones and out-of-range slots.
func (pt *ProcessTable) At(slot int) *Record {
	if slot < 0 || slot >= len(pt.slots) {
		return nil
	}
	return pt.slots[slot]
}

// Len returns the number of slots used so far, tombstones included.
func (pt *ProcessTable) Len() int {
	return len(pt.slots)
}

// Live returns the number of non-tombstoned slots.
func (pt *ProcessTable) Live() int {
	return pt.live
}

// Capacity returns the configured slot limit (0 = unbounded).
func (pt *ProcessTable) Capacity() int {
	return pt.capacity
}

func (pt *ProcessTable) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, r := range pt.slots {
		if r == nil {
			sb.WriteString("-")
		} else {
			sb.WriteString(fmt.Sprintf("%s:%d", r.Name, r.RemainingTime))
		}
		if i < len(pt.slots)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
