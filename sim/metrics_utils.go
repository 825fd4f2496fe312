// sim/metrics_utils.go
package sim

import (
	"math"
	"slices"
)

type IntOrFloat64 interface {
	int | int64 | float64
}

// CalculatePercentile returns the p-th percentile of data using linear interpolation
// between closest ranks. data must be sorted ascending; empty data yields 0.
func CalculatePercentile[T IntOrFloat64](data []T, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}

	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))
	if upperIdx >= n {
		return float64(data[n-1])
	}
	if lowerIdx == upperIdx {
		return float64(data[lowerIdx])
	}
	lowerVal := float64(data[lowerIdx])
	upperVal := float64(data[upperIdx])
	return lowerVal + (upperVal-lowerVal)*(rank-float64(lowerIdx))
}

// CalculateMean returns the arithmetic mean of numbers, or 0 for an empty list.
func CalculateMean[T IntOrFloat64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, number := range numbers {
		sum += float64(number)
	}
	return sum / float64(len(numbers))
}

// Summary holds run-wide aggregates derived from a Result.
type Summary struct {
	Engine         string
	Completed      int
	DeadlinesMet   int
	MeanWait       float64
	MeanReady      float64
	MeanTurnaround float64
	P90Turnaround  float64
	MaxTurnaround  int64
	Throughput     float64 // completions per tick over the whole run
	Utilization    float64 // BusyTicks / EndClock
}

// Summarize computes aggregate statistics from a Result.
// Safe for nil or empty results (returns zero-value fields).
func Summarize(res *Result) Summary {
	if res == nil {
		return Summary{}
	}
	s := Summary{Engine: res.Engine, Completed: len(res.Completions)}
	if s.Completed == 0 {
		return s
	}

	waits := make([]int64, 0, s.Completed)
	readies := make([]int64, 0, s.Completed)
	turnarounds := make([]int64, 0, s.Completed)
	for _, m := range res.Completions {
		waits = append(waits, m.WaitTime)
		readies = append(readies, m.ReadyTicks)
		turnarounds = append(turnarounds, m.TurnaroundTime)
		if m.DeadlineMet {
			s.DeadlinesMet++
		}
	}
	slices.Sort(turnarounds)

	s.MeanWait = CalculateMean(waits)
	s.MeanReady = CalculateMean(readies)
	s.MeanTurnaround = CalculateMean(turnarounds)
	s.P90Turnaround = CalculatePercentile(turnarounds, 90)
	s.MaxTurnaround = turnarounds[len(turnarounds)-1]
	if res.EndClock > 0 {
		s.Throughput = float64(s.Completed) / float64(res.EndClock)
		s.Utilization = float64(res.BusyTicks) / float64(res.EndClock)
	}
	return s
}
