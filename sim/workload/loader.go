// Package workload converts workload descriptions into sim.Descriptor values.
//
// Two formats are accepted: the line format, one process per line as
// "<name> <arrival> <service> <deadline>", and a YAML document with a
// "processes" list. Both are validated the same way; any malformed record
// rejects the whole workload.
//
// Generate produces synthetic workloads in the same shape from a seeded GeneratorSpec.
package workload

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/schedsim/sim"
)

// Options controls ingestion.
type Options struct {
	// SortArrivals stable-sorts descriptors by arrival time (file order among
	// equals) instead of rejecting out-of-order input.
	SortArrivals bool
}

// RecordError describes a malformed workload record. It unwraps to sim.ErrMalformedRecord.
type RecordError struct {
	Line   int    // 1-based line number, or 1-based entry index for YAML
	Text   string // offending input
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%v: line %d %q: %s", sim.ErrMalformedRecord, e.Line, e.Text, e.Reason)
}

func (e *RecordError) Unwrap() error {
	return sim.ErrMalformedRecord
}

// ParseLines parses the line format. Blank lines and lines starting with '#'
// are skipped.
func ParseLines(lines []string, opts Options) ([]sim.Descriptor, error) {
	descs := make([]sim.Descriptor, 0, len(lines))
	lineNums := make([]int, 0, len(lines))
	for i, raw := range lines {
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		d, err := parseLine(text)
		if err != nil {
			return nil, &RecordError{Line: i + 1, Text: text, Reason: err.Error()}
		}
		descs = append(descs, d)
		lineNums = append(lineNums, i+1)
	}
	if err := finalize(descs, lineNums, opts); err != nil {
		return nil, err
	}
	return descs, nil
}

// ParseText splits data into lines and parses it with ParseLines.
func ParseText(data string, opts Options) ([]sim.Descriptor, error) {
	return ParseLines(strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n"), opts)
}

func parseLine(text string) (sim.Descriptor, error) {
	fields := strings.Fields(text)
	if len(fields) != 4 {
		return sim.Descriptor{}, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}
	var nums [3]int64
	for i, name := range []string{"arrival time", "service time", "deadline"} {
		v, err := strconv.ParseInt(fields[i+1], 10, 64)
		if err != nil {
			return sim.Descriptor{}, fmt.Errorf("%s %q is not an integer", name, fields[i+1])
		}
		nums[i] = v
	}
	d := sim.Descriptor{Name: fields[0], ArrivalTime: nums[0], ServiceTime: nums[1], Deadline: nums[2]}
	return d, validateDescriptor(d)
}

func validateDescriptor(d sim.Descriptor) error {
	switch {
	case d.Name == "":
		return errors.New("name is empty")
	case len(d.Name) > sim.MaxNameLength:
		return fmt.Errorf("name longer than %d characters", sim.MaxNameLength)
	case d.ArrivalTime < 0:
		return fmt.Errorf("arrival time must be >= 0, got %d", d.ArrivalTime)
	case d.ServiceTime <= 0:
		return fmt.Errorf("service time must be > 0, got %d", d.ServiceTime)
	case d.Deadline < 0:
		return fmt.Errorf("deadline must be >= 0, got %d", d.Deadline)
	}
	return nil
}

// finalize enforces name uniqueness and the non-decreasing arrival precondition.
func finalize(descs []sim.Descriptor, lineNums []int, opts Options) error {
	seen := make(map[string]int, len(descs))
	for i, d := range descs {
		if first, dup := seen[d.Name]; dup {
			return &RecordError{Line: lineNums[i], Text: d.String(), Reason: fmt.Sprintf("duplicate name, first defined on line %d", first)}
		}
		seen[d.Name] = lineNums[i]
	}

	for i := 1; i < len(descs); i++ {
		if descs[i].ArrivalTime >= descs[i-1].ArrivalTime {
			continue
		}
		if !opts.SortArrivals {
			return &RecordError{Line: lineNums[i], Text: descs[i].String(),
				Reason: fmt.Sprintf("arrival time %d precedes previous arrival %d", descs[i].ArrivalTime, descs[i-1].ArrivalTime)}
		}
		logrus.Infof("workload not ordered by arrival time; sorting %d descriptors", len(descs))
		sort.SliceStable(descs, func(a, b int) bool {
			return descs[a].ArrivalTime < descs[b].ArrivalTime
		})
		break
	}
	return nil
}
