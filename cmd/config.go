package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/report"
	"github.com/inference-sim/schedsim/sim/trace"
	"github.com/inference-sim/schedsim/sim/workload"
)

// RunConfig is the optional YAML run configuration passed with --config.
// Every field is optional; unset fields keep their flag defaults.
type RunConfig struct {
	Engine            string        `yaml:"engine"`
	Workload          string        `yaml:"workload"`
	Capacity          *int          `yaml:"capacity"`
	Quantum           *int64        `yaml:"quantum"`
	AdmissionsPerTick *int          `yaml:"admissions_per_tick"`
	SortArrivals      *bool         `yaml:"sort_arrivals"`
	Results           ResultsConfig `yaml:"results"`
	TraceLevel        string        `yaml:"trace_level"`
}

// ResultsConfig names the results destination per engine.
type ResultsConfig struct {
	FCFS string `yaml:"fcfs"`
	SRTN string `yaml:"srtn"`
}

// ParseRunConfig decodes a run configuration with strict field checking, so
// typos are rejected instead of silently ignored.
func ParseRunConfig(data []byte) (*RunConfig, error) {
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	if !sim.IsValidEngine(cfg.Engine) {
		return nil, fmt.Errorf("unknown engine %q in run config; valid: %v", cfg.Engine, sim.EngineNames())
	}
	if !trace.IsValidTraceLevel(cfg.TraceLevel) {
		return nil, fmt.Errorf("unknown trace_level %q in run config", cfg.TraceLevel)
	}
	return &cfg, nil
}

// runOptions is the fully resolved configuration of one invocation.
type runOptions struct {
	EngineName   string
	Workload     string
	Results      ResultsConfig
	Engine       sim.EngineConfig
	SortArrivals bool
	TraceLevel   trace.TraceLevel
	TraceCSV     string
	Gantt        bool
	Table        bool
}

// resultsFor returns the results destination for engine.
func (o runOptions) resultsFor(engine string) string {
	if engine == sim.EngineSRTN {
		return o.Results.SRTN
	}
	return o.Results.FCFS
}

func (o runOptions) workloadOptions() workload.Options {
	return workload.Options{SortArrivals: o.SortArrivals}
}

// resolveOptions merges flag defaults, the --config file and explicitly set
// flags, in increasing order of precedence. A positional argument names the workload.
func resolveOptions(ctx context.Context, fs afs.Service, cmd *cobra.Command, args []string) (runOptions, error) {
	opts := runOptions{
		EngineName: engineName,
		Workload:   workloadPath,
		Results: ResultsConfig{
			FCFS: report.DefaultFCFSResults,
			SRTN: report.DefaultSRTNResults,
		},
		Engine: sim.EngineConfig{
			Capacity:             capacity,
			Quantum:              quantum,
			MaxAdmissionsPerTick: admissionsPerTick,
		},
		SortArrivals: sortArrivals,
		TraceLevel:   trace.TraceLevel(traceLevel),
		TraceCSV:     traceCSV,
		Gantt:        gantt,
		Table:        table,
	}
	flags := cmd.Flags()

	if configPath != "" {
		data, err := fs.DownloadWithURL(ctx, configPath)
		if err != nil {
			return opts, fmt.Errorf("reading run config %s: %w", configPath, err)
		}
		rc, err := ParseRunConfig(data)
		if err != nil {
			return opts, fmt.Errorf("%s: %w", configPath, err)
		}
		if rc.Engine != "" && !flags.Changed("engine") {
			opts.EngineName = rc.Engine
		}
		if rc.Workload != "" && !flags.Changed("workload") {
			opts.Workload = rc.Workload
		}
		if rc.Capacity != nil && !flags.Changed("capacity") {
			opts.Engine.Capacity = *rc.Capacity
		}
		if rc.Quantum != nil && !flags.Changed("quantum") {
			opts.Engine.Quantum = *rc.Quantum
		}
		if rc.AdmissionsPerTick != nil && !flags.Changed("admissions-per-tick") {
			opts.Engine.MaxAdmissionsPerTick = *rc.AdmissionsPerTick
		}
		if rc.SortArrivals != nil && !flags.Changed("sort-arrivals") {
			opts.SortArrivals = *rc.SortArrivals
		}
		if rc.Results.FCFS != "" {
			opts.Results.FCFS = rc.Results.FCFS
		}
		if rc.Results.SRTN != "" {
			opts.Results.SRTN = rc.Results.SRTN
		}
		if rc.TraceLevel != "" && !flags.Changed("trace-level") {
			opts.TraceLevel = trace.TraceLevel(rc.TraceLevel)
		}
	}

	if len(args) > 0 {
		if flags.Changed("workload") && args[0] != workloadPath {
			return opts, fmt.Errorf("workload given both as --workload %q and argument %q", workloadPath, args[0])
		}
		opts.Workload = args[0]
	}
	if opts.EngineName == "" {
		opts.EngineName = sim.EngineFCFS
	}
	if flags.Lookup("results") != nil && flags.Changed("results") {
		if opts.EngineName == sim.EngineSRTN {
			opts.Results.SRTN = resultsPath
		} else {
			opts.Results.FCFS = resultsPath
		}
	}
	// the Gantt chart is rebuilt from the event trace
	if opts.Gantt || opts.TraceCSV != "" {
		opts.TraceLevel = trace.TraceLevelEvents
	}

	if !sim.IsValidEngine(opts.EngineName) {
		return opts, fmt.Errorf("unknown engine %q; valid: %v", opts.EngineName, sim.EngineNames())
	}
	if !trace.IsValidTraceLevel(string(opts.TraceLevel)) {
		return opts, fmt.Errorf("unknown trace level %q", opts.TraceLevel)
	}
	if err := opts.Engine.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
