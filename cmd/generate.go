package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/inference-sim/schedsim/sim/workload"
)

var (
	// CLI flags for generate
	generatorSpecPath string  // Optional YAML generator spec
	genSeed           int64   // Seed for the synthetic workload
	genCount          int     // Number of processes
	genRate           float64 // Mean arrivals per tick
	genOut            string  // Destination URL; empty prints to stdout
)

// generateCmd writes a synthetic workload in the line format
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic workload file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := executeGenerate(context.Background(), cmd, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
	},
}

// executeGenerate builds the generator spec from --spec and explicit flags and
// writes the workload to --out, or to out when --out is empty.
func executeGenerate(ctx context.Context, cmd *cobra.Command, out io.Writer) error {
	fs := afs.New()
	spec := workload.DefaultGeneratorSpec()
	if generatorSpecPath != "" {
		data, err := fs.DownloadWithURL(ctx, generatorSpecPath)
		if err != nil {
			return fmt.Errorf("reading generator spec %s: %w", generatorSpecPath, err)
		}
		if spec, err = workload.ParseGeneratorSpec(data); err != nil {
			return fmt.Errorf("%s: %w", generatorSpecPath, err)
		}
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		spec.Seed = genSeed
	}
	if flags.Changed("count") {
		spec.Count = genCount
	}
	if flags.Changed("rate") {
		spec.Rate = genRate
	}

	descs, err := workload.Generate(spec)
	if err != nil {
		return err
	}
	text := workload.FormatLines(descs)
	if genOut == "" {
		_, err = io.WriteString(out, text)
		return err
	}
	if err := fs.Upload(ctx, genOut, file.DefaultFileOsMode, strings.NewReader(text)); err != nil {
		return fmt.Errorf("writing workload %s: %w", genOut, err)
	}
	logrus.Infof("Wrote %d processes to %s (seed=%d)", len(descs), genOut, spec.Seed)
	return nil
}

// registerGenerateFlags binds the generate flags to cmd.
func registerGenerateFlags(cmd *cobra.Command) {
	def := workload.DefaultGeneratorSpec()
	cmd.Flags().StringVar(&generatorSpecPath, "spec", "", "YAML generator spec; explicit flags take precedence")
	cmd.Flags().Int64Var(&genSeed, "seed", def.Seed, "Seed for the synthetic workload")
	cmd.Flags().IntVar(&genCount, "count", def.Count, "Number of processes")
	cmd.Flags().Float64Var(&genRate, "rate", def.Rate, "Mean arrivals per tick")
	cmd.Flags().StringVar(&genOut, "out", "", "Destination URL (default stdout)")
}

func init() {
	registerGenerateFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}
