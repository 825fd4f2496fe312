package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/report"
	"github.com/inference-sim/schedsim/sim/telemetry"
	"github.com/inference-sim/schedsim/sim/trace"
	"github.com/inference-sim/schedsim/sim/workload"
)

var (
	// CLI flags shared by run and compare
	workloadPath      string // Workload URL (line format, or YAML by extension)
	capacity          int    // Max process table slots per run (0 = unbounded)
	quantum           int64  // SRTN re-selection interval in ticks
	admissionsPerTick int    // Descriptors admitted per tick (0 = unbounded)
	sortArrivals      bool   // Stable-sort the workload by arrival instead of rejecting disorder
	configPath        string // Optional YAML run config
	traceLevel        string // Event trace collection level
	traceCSV          string // Trace CSV destination URL
	gantt             bool   // Print a Gantt chart after the run
	table             bool   // Print a per-process summary table after the run
	otelOut           string // OpenTelemetry span output file

	// CLI flags for run only
	engineName  string // Queue discipline
	resultsPath string // Results destination URL

	logLevel string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "schedsim",
	Short: "Tick-driven CPU scheduling simulator (FCFS and SRTN)",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd simulates one engine over one workload
var runCmd = &cobra.Command{
	Use:   "run [workload]",
	Short: "Run one scheduling engine over a workload",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withTelemetry(func(ctx context.Context) error {
			return executeRun(ctx, cmd, args, cmd.OutOrStdout())
		})
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
	},
}

// compareCmd simulates every engine over the same workload
var compareCmd = &cobra.Command{
	Use:   "compare [workload]",
	Short: "Run every engine over a workload and compare their schedules",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withTelemetry(func(ctx context.Context) error {
			return executeCompare(ctx, cmd, args, cmd.OutOrStdout())
		})
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
	},
}

// withTelemetry installs the span exporter when --otel-out is set and flushes
// it after fn returns, whatever the outcome.
func withTelemetry(fn func(ctx context.Context) error) error {
	ctx := context.Background()
	if otelOut != "" {
		if err := telemetry.Init(otelOut); err != nil {
			return fmt.Errorf("initialising telemetry: %w", err)
		}
	}
	err := fn(ctx)
	if serr := telemetry.Shutdown(ctx); serr != nil {
		logrus.Warnf("Flushing telemetry: %v", serr)
	}
	return err
}

// executeRun loads the workload, runs the selected engine and writes its outputs.
// The console trace goes to out.
func executeRun(ctx context.Context, cmd *cobra.Command, args []string, out io.Writer) error {
	fs := afs.New()
	opts, err := resolveOptions(ctx, fs, cmd, args)
	if err != nil {
		return err
	}
	runID := uuid.NewString()
	log := logrus.WithFields(logrus.Fields{"run_id": runID, "engine": opts.EngineName, "workload": opts.Workload})

	ctx, span := telemetry.StartSpan(ctx, "schedsim.run")
	span.WithAttributes(map[string]string{"run_id": runID, "engine": opts.EngineName, "workload": opts.Workload})

	descs, err := loadWorkload(ctx, fs, opts)
	if err != nil {
		span.End(err)
		return err
	}
	log.Infof("Starting simulation of %d processes (capacity=%d, quantum=%d)", len(descs), opts.Engine.Capacity, opts.Engine.Quantum)

	res, st, err := simulate(ctx, fs, opts, opts.EngineName, runID, descs, out)
	if res != nil {
		if rerr := writeReports(ctx, fs, opts, res, st, out); rerr != nil {
			err = errors.Join(err, rerr)
		}
		log.Infof("Simulation ended at tick %d: %d completed, busy=%d idle=%d", res.EndClock, len(res.Completions), res.BusyTicks, res.IdleTicks)
	}
	span.End(err)
	if err != nil {
		return err
	}
	log.Info("Simulation complete.")
	return nil
}

// executeCompare runs every engine over the same workload, writes each engine's
// results file and prints the comparison table to out.
func executeCompare(ctx context.Context, cmd *cobra.Command, args []string, out io.Writer) error {
	fs := afs.New()
	opts, err := resolveOptions(ctx, fs, cmd, args)
	if err != nil {
		return err
	}
	runID := uuid.NewString()

	ctx, span := telemetry.StartSpan(ctx, "schedsim.compare")
	span.WithAttributes(map[string]string{"run_id": runID, "workload": opts.Workload})

	descs, err := loadWorkload(ctx, fs, opts)
	if err != nil {
		span.End(err)
		return err
	}

	summaries := make([]sim.Summary, 0, len(sim.EngineNames()))
	for _, name := range sim.EngineNames() {
		res, _, err := simulate(ctx, fs, opts, name, runID, descs, nil)
		if err != nil {
			span.End(err)
			return fmt.Errorf("%s: %w", name, err)
		}
		summaries = append(summaries, sim.Summarize(res))
	}
	report.RenderComparison(out, summaries)
	span.End(nil)
	return nil
}

func loadWorkload(ctx context.Context, fs afs.Service, opts runOptions) ([]sim.Descriptor, error) {
	ctx, span := telemetry.StartSpan(ctx, "schedsim.load")
	descs, err := workload.Load(ctx, fs, opts.Workload, opts.workloadOptions())
	span.End(err)
	return descs, err
}

// simulate runs engine over descs. The console trace goes to out when it is
// not nil; results rows go to the engine's results destination, which is
// truncated first and flushed even when the run aborts.
func simulate(ctx context.Context, fs afs.Service, opts runOptions, engine, runID string, descs []sim.Descriptor, out io.Writer) (*sim.Result, *trace.SimulationTrace, error) {
	ctx, span := telemetry.StartSpan(ctx, "schedsim.simulate")
	span.WithAttributes(map[string]string{"engine": engine, "run_id": runID})

	rf := report.NewResultsFile(fs, opts.resultsFor(engine))
	if err := rf.Truncate(ctx); err != nil {
		span.End(err)
		return nil, nil, err
	}
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: opts.TraceLevel, RunID: runID, Engine: engine})

	sinks := make(sim.MultiSink, 0, 4)
	if out != nil {
		sinks = append(sinks, report.NewTraceWriter(out))
	}
	sinks = append(sinks, rf, report.NewTraceSink(st), telemetry.NewSpanSink(span))

	res, runErr := sim.NewEngine(engine, opts.Engine).Run(descs, sinks)
	flushErr := rf.Flush(ctx)
	err := errors.Join(runErr, flushErr)
	if res != nil {
		span.SetInt("end_clock", res.EndClock)
		span.SetInt("completed", int64(len(res.Completions)))
	}
	span.End(err)
	return res, st, err
}

// writeReports prints the optional tables and exports the trace.
func writeReports(ctx context.Context, fs afs.Service, opts runOptions, res *sim.Result, st *trace.SimulationTrace, out io.Writer) error {
	if opts.Table {
		report.RenderSummary(out, res)
	}
	if opts.Gantt {
		report.RenderGantt(out, trace.Timeline(st))
	}
	if st.Config.Enabled() {
		ts := trace.Summarize(st)
		logrus.Infof("Trace: %d arrivals, %d dispatches, %d preemptions, %d completions, %d context switches",
			ts.Arrivals, ts.Dispatches, ts.Preemptions, ts.Completions, ts.ContextSwitches)
	}
	if opts.TraceCSV != "" {
		var buf bytes.Buffer
		if err := trace.ExportCSV(st, &buf); err != nil {
			return err
		}
		if err := fs.Upload(ctx, opts.TraceCSV, file.DefaultFileOsMode, &buf); err != nil {
			return fmt.Errorf("writing trace %s: %w", opts.TraceCSV, err)
		}
		logrus.Infof("Trace written to %s", opts.TraceCSV)
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerCommonFlags binds the flags shared by run and compare to cmd.
func registerCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&workloadPath, "workload", workload.DefaultSource, "Workload URL (YAML when it ends in .yaml or .yml)")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "Max process table slots per run (0 = unbounded)")
	cmd.Flags().Int64Var(&quantum, "quantum", sim.DefaultQuantum, "SRTN ticks between forced re-selections")
	cmd.Flags().IntVar(&admissionsPerTick, "admissions-per-tick", 1, "Processes admitted per tick, in file order (0 = unbounded)")
	cmd.Flags().BoolVar(&sortArrivals, "sort-arrivals", false, "Sort the workload by arrival time instead of rejecting out-of-order records")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML run config; explicit flags take precedence")
	cmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Event trace level (none, events)")
	cmd.Flags().StringVar(&traceCSV, "trace-csv", "", "Write the event trace as CSV to this URL")
	cmd.Flags().BoolVar(&gantt, "gantt", false, "Print a Gantt chart of the schedule")
	cmd.Flags().BoolVar(&table, "table", false, "Print a per-process summary table")
	cmd.Flags().StringVar(&otelOut, "otel-out", "", "Write OpenTelemetry spans to this file")
}

// registerRunFlags binds the run-only flags to cmd.
func registerRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&engineName, "engine", sim.EngineFCFS, fmt.Sprintf("Scheduling engine %v", sim.EngineNames()))
	cmd.Flags().StringVar(&resultsPath, "results", "", "Results URL (default results-1.txt for fcfs, results-2.txt for srtn)")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	registerCommonFlags(runCmd)
	registerRunFlags(runCmd)
	registerCommonFlags(compareCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
}
