package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/zoom/search/experiment"
)

// Preset describes a named experiment configuration in experiments.yaml.
type Preset struct {
	MuStar            float64 `yaml:"mu_star"`
	Budget            int     `yaml:"budget"`
	GridSize          int     `yaml:"grid"`
	MinInterval       float64 `yaml:"min"`
	MaxInterval       float64 `yaml:"max"`
	CoefCI            float64 `yaml:"coef_ci"`
	Repeats           int     `yaml:"repeats"`
	Alpha             float64 `yaml:"alpha"`
	Delta             float64 `yaml:"delta"`
	Crossing          float64 `yaml:"crossing"`
	RandomizeCrossing bool    `yaml:"randomize_crossing"`
	FlipEvery         int     `yaml:"flip_every"`
	Seed              int64   `yaml:"seed"`
	Estimator         string  `yaml:"estimator"`
}

// PresetFile represents the full experiments.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type PresetFile struct {
	Version string            `yaml:"version"`
	Presets map[string]Preset `yaml:"presets"`
}

// LoadPresets parses a presets file. Unknown fields are errors so that typos
// never silently fall back to defaults.
func LoadPresets(path string) (*PresetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets file: %w", err)
	}
	var pf PresetFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&pf); err != nil {
		return nil, fmt.Errorf("parsing presets file %s: %w", path, err)
	}
	if err := pf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid presets file %s: %w", path, err)
	}
	return &pf, nil
}

// Validate checks the parameter ranges of every preset. Zero values are
// allowed where the CLI supplies a default.
func (pf *PresetFile) Validate() error {
	for name, p := range pf.Presets {
		if p.MuStar != 0 && (p.MuStar <= 0 || p.MuStar >= 1) {
			return fmt.Errorf("preset %q: mu_star must be in (0, 1), got %v", name, p.MuStar)
		}
		if p.Budget < 0 {
			return fmt.Errorf("preset %q: budget must be non-negative, got %d", name, p.Budget)
		}
		if p.GridSize < 0 {
			return fmt.Errorf("preset %q: grid must be non-negative, got %d", name, p.GridSize)
		}
		if p.Repeats < 0 {
			return fmt.Errorf("preset %q: repeats must be non-negative, got %d", name, p.Repeats)
		}
		if p.Alpha < 0 || p.Delta < 0 || p.CoefCI < 0 {
			return fmt.Errorf("preset %q: alpha, delta and coef_ci must be non-negative", name)
		}
		if p.FlipEvery < 0 {
			return fmt.Errorf("preset %q: flip_every must be non-negative, got %d", name, p.FlipEvery)
		}
		if p.MinInterval != 0 || p.MaxInterval != 0 {
			if p.MinInterval >= p.MaxInterval || p.MinInterval < 0 || p.MaxInterval > 1 {
				return fmt.Errorf("preset %q: need 0 <= min < max <= 1, got [%v, %v)", name, p.MinInterval, p.MaxInterval)
			}
		}
		if p.Estimator != "" && !experiment.IsValidEstimator(p.Estimator) {
			return fmt.Errorf("preset %q: unknown estimator %q", name, p.Estimator)
		}
	}
	return nil
}

// Lookup returns the named preset.
func (pf *PresetFile) Lookup(name string) (Preset, error) {
	p, ok := pf.Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q", name)
	}
	return p, nil
}
