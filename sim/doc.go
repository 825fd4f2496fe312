// Package sim provides the discrete-tick CPU scheduling kernel for schedsim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: Descriptor (immutable workload row) and Record (mutable lifecycle Ready → Running → Exited)
//   - table.go: ProcessTable, the index-stable slot collection holding admitted work
//   - event.go: Event kinds emitted to a Sink (Arrival, Dispatch, Preempt, Completion)
//   - fcfs.go / srtn.go: the two tick loops
//
// # Architecture
//
// The sim package defines the engines and the Sink interface; peripheral I/O lives
// in sub-packages:
//   - sim/workload/: Workload Loader (line and YAML formats, storage-backed reads) and
//     the seeded synthetic workload generator (see rng.go for its RNG streams)
//   - sim/report/: console trace writer, results file, summary tables
//   - sim/trace/: pure-data event trace with summary, Gantt timeline and CSV export
//   - sim/telemetry/: OpenTelemetry spans around runs
//
// # Clock Semantics
//
// The clock is a logical integer counter. A record selected at clock t runs during
// [t, t+1): its remaining time is decremented, the clock advances, and a record whose
// remaining time reached zero completes at the new clock value. Each engine run owns
// its table, clock and cursors, so independent runs may execute concurrently.
package sim
