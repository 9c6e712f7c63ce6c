package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/inference-sim/zoom/search/experiment"
	"github.com/inference-sim/zoom/search/response"
)

var (
	// CLI flags for the experiment harness
	repeats           int     // Number of independent searches
	seed              int64   // Master seed for answer generation
	curveAlpha        float64 // Psychometric slope exponent
	curveDelta        float64 // Psychometric saturation distance
	crossing          float64 // Psychometric crossing point
	randomizeCrossing bool    // Redraw the crossing point from the seed
	experimentFlips   int     // Invert every N-th answer (0 disables)
	estimator         string  // Recommendation each repeat is scored on
	presetName        string  // Preset from presetsFilePath
	presetsFilePath   string  // Path to experiments.yaml
)

// experimentCmd runs repeated searches against a psychometric response and
// reports the regret of the final estimates.
var experimentCmd = &cobra.Command{
	Use:   "experiment",
	Short: "Run repeated searches against a psychometric response and report regret",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if presetName != "" {
			pf, err := LoadPresets(presetsFilePath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			preset, err := pf.Lookup(presetName)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			applyPreset(cmd.Flags(), preset)
			logrus.Infof("Loaded preset %q from %s", presetName, presetsFilePath)
		}

		spec, err := buildExperimentSpec()
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("using alpha = %v, delta = %v, mu_star = %v", curveAlpha, curveDelta, muStar)

		startTime := time.Now()
		result, err := experiment.Run(spec)
		if err != nil {
			logrus.Fatalf("Experiment failed: %v", err)
		}
		fmt.Printf("Crossing : %v\n", result.Crossing)
		fmt.Printf("Achieved Regret : %v  (+- %v )\n", result.Summary.MeanRegret, result.Summary.StdDevRegret)
		fmt.Printf("Median Regret : %v, Max Regret : %v\n", result.Summary.MedianRegret, result.Summary.MaxRegret)

		logrus.Infof("Experiment complete in %v.", time.Since(startTime))
	},
}

// buildExperimentSpec assembles an experiment.Spec from the current flag values.
func buildExperimentSpec() (experiment.Spec, error) {
	policy, err := parseBoundPolicy(boundPolicy)
	if err != nil {
		return experiment.Spec{}, err
	}
	if !experiment.IsValidEstimator(estimator) {
		return experiment.Spec{}, fmt.Errorf("unknown estimator %q; valid: %s, %s",
			estimator, experiment.EstimatorFinal, experiment.EstimatorPromising)
	}
	return experiment.Spec{
		Search:    searchConfigFromFlags(),
		Policy:    policy,
		Estimator: experiment.Estimator(estimator),
		Curve: response.Psychometric{
			MuStar: muStar,
			SStar:  crossing,
			Delta:  curveDelta,
			Alpha:  curveAlpha,
		},
		Repeats:           repeats,
		RandomizeCrossing: randomizeCrossing,
		FlipEvery:         experimentFlips,
		Seed:              seed,
	}, nil
}

// applyPreset copies non-zero preset fields into flag variables the user did
// not set explicitly. Explicit flags always win over the preset.
func applyPreset(flags *pflag.FlagSet, p Preset) {
	setFloat := func(name string, dst *float64, v float64) {
		if v != 0 && !flags.Changed(name) {
			*dst = v
		}
	}
	setInt := func(name string, dst *int, v int) {
		if v != 0 && !flags.Changed(name) {
			*dst = v
		}
	}
	setFloat("mu-star", &muStar, p.MuStar)
	setInt("budget", &budget, p.Budget)
	setInt("grid", &gridSize, p.GridSize)
	setFloat("coef-ci", &coefCI, p.CoefCI)
	setInt("repeats", &repeats, p.Repeats)
	setFloat("alpha", &curveAlpha, p.Alpha)
	setFloat("delta", &curveDelta, p.Delta)
	setFloat("crossing", &crossing, p.Crossing)
	setInt("flip-every", &experimentFlips, p.FlipEvery)
	if p.MinInterval != 0 || p.MaxInterval != 0 {
		setFloat("min", &minInterval, p.MinInterval)
		setFloat("max", &maxInterval, p.MaxInterval)
	}
	if p.RandomizeCrossing && !flags.Changed("randomize-crossing") {
		randomizeCrossing = true
	}
	if p.Seed != 0 && !flags.Changed("seed") {
		seed = p.Seed
	}
	if p.Estimator != "" && !flags.Changed("estimator") {
		estimator = p.Estimator
	}
}

// registerExperimentFlags adds the experiment-only flags to cmd.
func registerExperimentFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&repeats, "repeats", 20, "Number of independent searches")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for answer generation")
	cmd.Flags().Float64Var(&curveAlpha, "alpha", 0.5, "Psychometric slope exponent")
	cmd.Flags().Float64Var(&curveDelta, "delta", 0.1, "Psychometric saturation distance")
	cmd.Flags().Float64Var(&crossing, "crossing", 0.5, "Input value where the response equals mu-star")
	cmd.Flags().BoolVar(&randomizeCrossing, "randomize-crossing", false, "Draw the crossing uniformly from [0.15, 0.85]")
	cmd.Flags().IntVar(&experimentFlips, "flip-every", 0, "Invert every N-th answer (0 disables)")
	cmd.Flags().StringVar(&estimator, "estimator", string(experiment.EstimatorPromising), "Recommendation scored per repeat (final, promising)")
	cmd.Flags().StringVar(&presetName, "preset", "", "Named preset from the presets file")
	cmd.Flags().StringVar(&presetsFilePath, "presets-file", "experiments.yaml", "Path to the experiment presets file")
}
