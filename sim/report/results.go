package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/inference-sim/schedsim/sim"
)

// Default results destinations per engine.
const (
	DefaultFCFSResults = "results-1.txt"
	DefaultSRTNResults = "results-2.txt"
)

// DefaultResults returns the default results destination for engine.
func DefaultResults(engine string) string {
	if engine == sim.EngineSRTN {
		return DefaultSRTNResults
	}
	return DefaultFCFSResults
}

// FormatRow renders one results row: "<name> <wait> <turnaround> <0|1>".
func FormatRow(m sim.CompletionMetrics) string {
	return fmt.Sprintf("%s %d %d %d", m.Name, m.WaitTime, m.TurnaroundTime, m.DeadlineFlag())
}

// ResultsFile is a sim.Sink that collects results rows in completion order
// and writes them to a storage URL.
type ResultsFile struct {
	fs   afs.Service
	URL  string
	rows []string
}

// NewResultsFile creates a ResultsFile targeting URL.
func NewResultsFile(fs afs.Service, URL string) *ResultsFile {
	return &ResultsFile{fs: fs, URL: URL, rows: make([]string, 0)}
}

func (rf *ResultsFile) OnEvent(sim.Event) {}

func (rf *ResultsFile) OnCompletion(m sim.CompletionMetrics) {
	rf.rows = append(rf.rows, FormatRow(m))
}

// Rows returns the rows collected so far.
func (rf *ResultsFile) Rows() []string {
	return rf.rows
}

// Truncate empties the destination so a failed run never leaves stale rows behind.
func (rf *ResultsFile) Truncate(ctx context.Context) error {
	if err := rf.fs.Upload(ctx, rf.URL, file.DefaultFileOsMode, bytes.NewReader(nil)); err != nil {
		return fmt.Errorf("truncating results %s: %w", rf.URL, err)
	}
	return nil
}

// Flush writes every collected row to the destination, replacing its content.
// It is called after aborted runs as well, so completed rows are retained.
func (rf *ResultsFile) Flush(ctx context.Context) error {
	var sb strings.Builder
	for _, row := range rf.rows {
		sb.WriteString(row)
		sb.WriteString("\n")
	}
	if err := rf.fs.Upload(ctx, rf.URL, file.DefaultFileOsMode, strings.NewReader(sb.String())); err != nil {
		return fmt.Errorf("writing results %s: %w", rf.URL, err)
	}
	logrus.Debugf("Wrote %d result rows to %s", len(rf.rows), rf.URL)
	return nil
}
