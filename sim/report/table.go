package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/trace"
)

func outputTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

// RenderSummary prints a per-process schedule table with averages in the footer.
func RenderSummary(w io.Writer, res *sim.Result) {
	s := sim.Summarize(res)
	outputTitle(w, strings.ToUpper(res.Engine)+" schedule")

	rows := make([][]string, 0, len(res.Completions))
	for _, m := range res.Completions {
		rows = append(rows, []string{
			m.Name,
			fmt.Sprint(m.ArrivalTime),
			fmt.Sprint(m.ServiceTime),
			fmt.Sprint(m.Deadline),
			fmt.Sprint(m.WaitTime),
			fmt.Sprint(m.ReadyTicks),
			fmt.Sprint(m.TurnaroundTime),
			fmt.Sprint(m.CompletionClock),
			yesNo(m.DeadlineMet),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Process", "Arrival", "Service", "Deadline", "Wait", "Ready", "Turnaround", "Exit", "Met"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Average\n%.2f", s.MeanWait),
		fmt.Sprintf("Average\n%.2f", s.MeanReady),
		fmt.Sprintf("Average\n%.2f", s.MeanTurnaround),
		fmt.Sprintf("Throughput\n%.2f/t", s.Throughput),
		fmt.Sprintf("%d/%d", s.DeadlinesMet, s.Completed)})
	table.Render()
}

// RenderComparison prints one row per engine summary.
func RenderComparison(w io.Writer, summaries []sim.Summary) {
	outputTitle(w, "Engine comparison")

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Engine", "Completed", "Deadlines met", "Mean wait", "Mean ready", "Mean turnaround", "P90 turnaround", "Utilization"})
	for _, s := range summaries {
		table.Append([]string{
			s.Engine,
			fmt.Sprint(s.Completed),
			fmt.Sprintf("%d/%d", s.DeadlinesMet, s.Completed),
			fmt.Sprintf("%.2f", s.MeanWait),
			fmt.Sprintf("%.2f", s.MeanReady),
			fmt.Sprintf("%.2f", s.MeanTurnaround),
			fmt.Sprintf("%.2f", s.P90Turnaround),
			fmt.Sprintf("%.0f%%", s.Utilization*100),
		})
	}
	table.Render()
}

// RenderGantt prints the Gantt chart of segments: process names centred in
// their cells, then the tick scale.
func RenderGantt(w io.Writer, segments []trace.Segment) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	if len(segments) == 0 {
		_, _ = fmt.Fprintln(w, "(empty gantt)")
		return
	}
	var bars, scale strings.Builder
	bars.WriteString("|")
	last := segments[0].Start
	for _, s := range segments {
		if s.Start > last {
			gap := cellWidth(s.Start-last, "")
			bars.WriteString(strings.Repeat(".", gap) + "|")
			scale.WriteString(fmt.Sprintf("%-*d", gap+1, last))
		}
		width := cellWidth(s.End-s.Start, s.Process)
		bars.WriteString(centerString(s.Process, width) + "|")
		scale.WriteString(fmt.Sprintf("%-*d", width+1, s.Start))
		last = s.End
	}
	scale.WriteString(fmt.Sprint(last))
	_, _ = fmt.Fprintln(w, bars.String())
	_, _ = fmt.Fprintln(w, scale.String())
}

// cellWidth scales with the segment length and always fits label with a
// space on each side.
func cellWidth(ticks int64, label string) int {
	return max(4, int(ticks)*2, len(label)+2)
}

func centerString(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
