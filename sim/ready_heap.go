package sim

import "container/heap"

// readyEntry is a candidate for SRTN selection.
type readyEntry struct {
	slot   int
	record *Record
}

// readyHeap implements a priority queue of candidates with deterministic ordering.
// Ordering: remaining time → table slot (earliest admission first).
// The remaining time of a queued record never changes: only the running record,
// which is held outside the heap, is decremented.
type readyHeap struct {
	entries []readyEntry
}

func newReadyHeap() *readyHeap {
	h := &readyHeap{entries: make([]readyEntry, 0)}
	heap.Init(h)
	return h
}

// Len implements heap.Interface
func (h *readyHeap) Len() int {
	return len(h.entries)
}

// Less implements heap.Interface
func (h *readyHeap) Less(i, j int) bool {
	ei, ej := h.entries[i], h.entries[j]
	if ei.record.RemainingTime != ej.record.RemainingTime {
		return ei.record.RemainingTime < ej.record.RemainingTime
	}
	return ei.slot < ej.slot
}

// Swap implements heap.Interface
func (h *readyHeap) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
}

// Push implements heap.Interface
func (h *readyHeap) Push(x any) {
	h.entries = append(h.entries, x.(readyEntry))
}

// Pop implements heap.Interface
func (h *readyHeap) Pop() any {
	old := h.entries
	n := len(old)
	item := old[n-1]
	h.entries = old[0 : n-1]
	return item
}

// add queues the record in slot as a selection candidate.
func (h *readyHeap) add(slot int, r *Record) {
	heap.Push(h, readyEntry{slot: slot, record: r})
}

// takeMin removes and returns the slot with the smallest remaining time,
// or -1 when there are no candidates.
func (h *readyHeap) takeMin() int {
	if h.Len() == 0 {
		return -1
	}
	return heap.Pop(h).(readyEntry).slot
}
