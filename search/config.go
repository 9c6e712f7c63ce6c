package search

import (
	"fmt"
	"math"
)

// Config groups the parameters of one threshold search.
type Config struct {
	MuStar      float64 // target response, in (0, 1)
	Budget      int     // total number of probes T (must be >= 1)
	GridSize    int     // grid coarseness K; 0 derives it from Budget
	MinInterval float64 // lower (inclusive) edge of the searched range
	MaxInterval float64 // upper (exclusive) edge of the searched range
	CoefCI      float64 // Hoeffding radius scale; 0 means DefaultCoefCI
}

// DefaultConfig searches [0, 1) with an automatically sized grid.
func DefaultConfig(muStar float64, budget int) Config {
	return Config{
		MuStar:      muStar,
		Budget:      budget,
		MinInterval: 0,
		MaxInterval: 1,
		CoefCI:      DefaultCoefCI,
	}
}

// ValidateConfig returns an error if the config is invalid.
func ValidateConfig(cfg Config) error {
	if cfg.MuStar <= 0 || cfg.MuStar >= 1 || math.IsNaN(cfg.MuStar) {
		return fmt.Errorf("MuStar must be in (0, 1), got %v", cfg.MuStar)
	}
	if cfg.Budget < 1 {
		return fmt.Errorf("Budget must be >= 1, got %d", cfg.Budget)
	}
	if cfg.GridSize < 0 {
		return fmt.Errorf("GridSize must be non-negative, got %d", cfg.GridSize)
	}
	if !isFinite(cfg.MinInterval) || !isFinite(cfg.MaxInterval) {
		return fmt.Errorf("interval bounds must be finite, got [%v, %v)", cfg.MinInterval, cfg.MaxInterval)
	}
	if cfg.MinInterval >= cfg.MaxInterval {
		return fmt.Errorf("MinInterval must be below MaxInterval, got [%v, %v)", cfg.MinInterval, cfg.MaxInterval)
	}
	if cfg.CoefCI < 0 || !isFinite(cfg.CoefCI) {
		return fmt.Errorf("CoefCI must be a finite non-negative number, got %v", cfg.CoefCI)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
