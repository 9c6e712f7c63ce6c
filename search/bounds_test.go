package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKLDivergence_BoundaryConventions(t *testing.T) {
	for _, b := range []float64{0.05, 0.2, 0.5, 0.65, 0.99} {
		assert.InDelta(t, -math.Log(1-b), KLDivergence(0, b), 1e-12, "d(0, %v)", b)
		assert.InDelta(t, -math.Log(b), KLDivergence(1, b), 1e-12, "d(1, %v)", b)
		assert.Equal(t, 0.0, KLDivergence(b, b), "d(%v, %v)", b, b)
	}
}

func TestKLDivergence_InteriorMatchesFormula(t *testing.T) {
	a, b := 0.3, 0.5
	want := a*math.Log(a/b) + (1-a)*math.Log((1-a)/(1-b))
	assert.InDelta(t, want, KLDivergence(a, b), 1e-12)
	// divergence is non-negative and grows away from b
	assert.Greater(t, KLDivergence(0.1, b), KLDivergence(0.3, b))
	assert.Greater(t, KLDivergence(0.9, b), KLDivergence(0.7, b))
}

func TestHoeffdingRadius_ShrinksWithPulls(t *testing.T) {
	r1 := HoeffdingRadius(DefaultCoefCI, 50, 1)
	r4 := HoeffdingRadius(DefaultCoefCI, 50, 4)
	assert.InDelta(t, math.Sqrt(1.5*math.Log(50)), r1, 1e-12)
	assert.InDelta(t, r1/2, r4, 1e-12)
}

func TestKLThreshold_Formula(t *testing.T) {
	assert.InDelta(t, math.Log(50.0/4)/4, KLThreshold(50, 4), 1e-12)
	// pulls beyond the budget give a negative threshold
	assert.Less(t, KLThreshold(10, 20), 0.0)
}

func TestAutoGridSize_AlwaysEvenAndAtLeastFour(t *testing.T) {
	for budget := 1; budget <= 20000; budget++ {
		k := AutoGridSize(budget)
		if k%2 != 0 || k < 4 {
			t.Fatalf("AutoGridSize(%d) = %d, want even and >= 4", budget, k)
		}
	}
}

func TestAutoGridSize_KnownBudgets(t *testing.T) {
	tests := []struct {
		budget int
		want   int
	}{
		{1, 4},
		{2, 4},
		{3, 4},
		{50, 4},
		{100, 4},
		{1000, 8},
		{10000, 22},
		{1000000, 166},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AutoGridSize(tt.budget), "budget=%d", tt.budget)
	}
}

func TestNormalizeGridSize(t *testing.T) {
	assert.Equal(t, AutoGridSize(1000), NormalizeGridSize(0, 1000))
	assert.Equal(t, 6, NormalizeGridSize(7, 1000), "odd K is decremented")
	assert.Equal(t, 4, NormalizeGridSize(2, 1000), "small K is clamped")
	assert.Equal(t, 4, NormalizeGridSize(5, 1000))
	assert.Equal(t, 32, NormalizeGridSize(32, 10))
}
