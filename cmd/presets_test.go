package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// presetsPath locates experiments.yaml from the package directory.
func presetsPath(t *testing.T) string {
	t.Helper()
	path := "experiments.yaml"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		path = filepath.Join("..", "experiments.yaml")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Skip("experiments.yaml not found, skipping integration test")
		}
	}
	return path
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPresets_ShippedFile(t *testing.T) {
	// GIVEN the experiments.yaml shipped with the repository
	pf, err := LoadPresets(presetsPath(t))
	require.NoError(t, err)

	// THEN the reference preset matches the published setting
	p, err := pf.Lookup("paper-default")
	require.NoError(t, err)
	assert.Equal(t, 0.2, p.MuStar)
	assert.Equal(t, 50, p.Budget)
	assert.Equal(t, 20, p.Repeats)
	assert.Equal(t, 0.5, p.Alpha)
	assert.Equal(t, 0.1, p.Delta)
	assert.True(t, p.RandomizeCrossing)

	_, err = pf.Lookup("noisy-answers")
	assert.NoError(t, err)
}

func TestLoadPresets_UnknownFieldRejected(t *testing.T) {
	// GIVEN a preset with a typo in a field name
	path := writeTemp(t, `
version: "1"
presets:
  typo:
    mu_stra: 0.3
`)

	// WHEN loaded
	_, err := LoadPresets(path)

	// THEN strict parsing reports the unknown field
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mu_stra")
}

func TestLoadPresets_InvalidRanges(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"mu_star above one", "presets:\n  p:\n    mu_star: 1.5\n"},
		{"negative budget", "presets:\n  p:\n    budget: -1\n"},
		{"negative repeats", "presets:\n  p:\n    repeats: -3\n"},
		{"reversed interval", "presets:\n  p:\n    min: 2\n    max: 1\n"},
		{"negative flips", "presets:\n  p:\n    flip_every: -7\n"},
		{"interval outside response domain", "presets:\n  p:\n    min: 2\n    max: 4\n"},
		{"unknown estimator", "presets:\n  p:\n    estimator: median\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPresets(writeTemp(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadPresets_MissingFile(t *testing.T) {
	_, err := LoadPresets(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestPresetFile_LookupUnknown(t *testing.T) {
	pf := &PresetFile{Presets: map[string]Preset{}}
	_, err := pf.Lookup("missing")
	assert.Error(t, err)
}
