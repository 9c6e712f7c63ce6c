package search

import "math"

// DefaultCoefCI scales the Hoeffding radius for every node of a tree.
const DefaultCoefCI = 1.5

// minGridSize is the smallest grid coarseness; smaller grids hit edge cases
// where both neighbours of the focus arm are sentinels.
const minGridSize = 4

// KLDivergence returns the Bernoulli Kullback-Leibler divergence d(a, b).
//
// Boundary conventions: d(a, a) = 0, d(0, b) = -ln(1-b), d(1, b) = -ln(b).
// b must lie in (0, 1).
func KLDivergence(a, b float64) float64 {
	if a == b {
		return 0
	}
	if a <= 0 {
		return -math.Log(1 - b)
	}
	if a >= 1 {
		return -math.Log(b)
	}
	return a*math.Log(a/b) + (1-a)*math.Log((1-a)/(1-b))
}

// HoeffdingRadius returns sqrt(coefCI * ln(T) / n), the half-width of the
// confidence interval around an empirical mean built from n pulls.
func HoeffdingRadius(coefCI float64, budget, pulls int) float64 {
	return math.Sqrt(coefCI * math.Log(float64(budget)) / float64(pulls))
}

// KLThreshold returns ln(T/n)/n, the divergence an empirical mean must reach
// before the KL test declares it confidently separated from muStar.
func KLThreshold(budget, pulls int) float64 {
	n := float64(pulls)
	return math.Log(float64(budget)/n) / n
}

// AutoGridSize derives K from the budget as floor(sqrt(T / (ln T * ln ln T))),
// forced even and clamped to at least 4.
//
// For T <= 2 the denominator is zero or negative; those budgets clamp to 4.
func AutoGridSize(budget int) int {
	t := float64(budget)
	raw := math.Sqrt(t / (math.Log(t) * math.Log(math.Log(t))))
	if math.IsNaN(raw) || math.IsInf(raw, 0) || raw < minGridSize {
		return minGridSize
	}
	return evenAtLeastMin(int(raw))
}

// NormalizeGridSize resolves a caller-supplied K: zero selects AutoGridSize,
// anything else is forced even and clamped to at least 4.
func NormalizeGridSize(k, budget int) int {
	if k == 0 {
		return AutoGridSize(budget)
	}
	return evenAtLeastMin(k)
}

func evenAtLeastMin(k int) int {
	if k%2 == 1 {
		k--
	}
	if k < minGridSize {
		k = minGridSize
	}
	return k
}
