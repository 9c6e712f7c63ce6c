package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/zoom/search"
	"github.com/inference-sim/zoom/search/trace"
)

var (
	// CLI flags shared by run and experiment
	muStar      float64 // Target response rate
	budget      int     // Total number of probes T
	gridSize    int     // Grid coarseness K (0 = derive from budget)
	minInterval float64 // Lower edge of the searched range
	maxInterval float64 // Upper edge of the searched range
	coefCI      float64 // Hoeffding radius scale
	boundPolicy string  // "default" or "swapped" optimistic/pessimistic pairing
	logLevel    string  // Log verbosity level

	// CLI flags for the demo driver
	threshold  float64 // Step position of the synthetic response
	flipEvery  int     // Invert every N-th answer (0 disables)
	traceLevel string  // Decision trace level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "zoom",
	Short: "Budget-constrained threshold search over noisy yes/no feedback",
}

// setupLogging applies --log to the global logger.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// parseBoundPolicy resolves --bound-policy.
func parseBoundPolicy(name string) (search.BoundPolicy, error) {
	switch name {
	case "", "default":
		return search.DefaultBoundPolicy(), nil
	case "swapped":
		return search.SwappedBoundPolicy(), nil
	default:
		return search.BoundPolicy{}, fmt.Errorf("unknown bound policy %q; valid: default, swapped", name)
	}
}

// searchConfigFromFlags builds a search.Config from the shared flags.
func searchConfigFromFlags() search.Config {
	return search.Config{
		MuStar:      muStar,
		Budget:      budget,
		GridSize:    gridSize,
		MinInterval: minInterval,
		MaxInterval: maxInterval,
		CoefCI:      coefCI,
	}
}

// runCmd drives a search with a deterministic step response and periodic
// answer flips, printing every probe.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a demo search against a step response with injected errors",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}
		policy, err := parseBoundPolicy(boundPolicy)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		var st *trace.SearchTrace
		opts := []search.Option{search.WithLogger(logrus.StandardLogger()), search.WithBoundPolicy(policy)}
		if tc := (trace.TraceConfig{Level: trace.TraceLevel(traceLevel)}); tc.Enabled() {
			st = trace.NewSearchTrace(tc)
			opts = append(opts, search.WithTrace(st))
		}

		ctrl, err := search.NewController(searchConfigFromFlags(), opts...)
		if err != nil {
			logrus.Fatalf("Invalid search configuration: %v", err)
		}
		logrus.Infof("Starting search with muStar=%v, T=%d, K=%d, range=[%v, %v)",
			muStar, budget, ctrl.GridSize(), minInterval, maxInterval)

		startTime := time.Now()
		report, err := runDemo(ctrl, threshold, flipEvery)
		if err != nil {
			logrus.Fatalf("Search failed: %v", err)
		}
		for _, p := range report.Probes {
			mark := ""
			if p.Flipped {
				mark = "*"
			}
			fmt.Printf("%d) value=%v %t%s\n", p.Step+1, p.Value, p.Answer, mark)
		}
		fmt.Printf("Result=%v\n", report.Final)
		fmt.Printf("Promising=%v\n", report.Promising)

		if st != nil {
			summary := trace.Summarize(st)
			fmt.Printf("Trace: samples=%d zooms=%d successes=%d max_depth=%d nodes=%d\n",
				summary.Samples, summary.Zooms, summary.Successes, summary.MaxDepth, summary.NodesVisited)
		}

		logrus.Infof("Search complete in %v (%d nodes).", time.Since(startTime), ctrl.Tree().Len())
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerSearchFlags adds the shared search flags to cmd.
func registerSearchFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&muStar, "mu-star", 0.5, "Target response rate, in (0, 1)")
	cmd.Flags().IntVar(&budget, "budget", 50, "Total number of probes")
	cmd.Flags().IntVar(&gridSize, "grid", 0, "Grid coarseness K (0 = derive from budget)")
	cmd.Flags().Float64Var(&minInterval, "min", 0.0, "Lower (inclusive) edge of the searched range")
	cmd.Flags().Float64Var(&maxInterval, "max", 1.0, "Upper (exclusive) edge of the searched range")
	cmd.Flags().Float64Var(&coefCI, "coef-ci", search.DefaultCoefCI, "Hoeffding confidence radius scale")
	cmd.Flags().StringVar(&boundPolicy, "bound-policy", "default", "Optimistic/pessimistic bound pairing (default: KL optimistic, swapped: CI optimistic)")
	cmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

// init sets up CLI flags and subcommands
func init() {
	registerSearchFlags(runCmd)
	runCmd.Flags().Float64Var(&threshold, "threshold", 0.65, "Input value above which the synthetic response answers yes")
	runCmd.Flags().IntVar(&flipEvery, "flip-every", 7, "Invert every N-th answer, starting with the first (0 disables)")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")

	registerSearchFlags(experimentCmd)
	registerExperimentFlags(experimentCmd)

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(experimentCmd)
}
