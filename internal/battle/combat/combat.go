// Package combat contains the stateless battle math: mitigation formulas,
// range rotation and distance tests. Every function is pure.
package combat

import "math"

// Damage returns base mitigated by defense. Negative defense counts as zero,
// so the result is always within [0, base] for non-negative base.
func Damage(base, defense float64) float64 {
	return mitigate(base, math.Max(defense, 0))
}

// Buildup returns status potency mitigated by resistance.
// Negative resistance is honored and amplifies the potency.
func Buildup(potency, resistance float64) float64 {
	// Floor keeps the denominator positive for pathological authoring.
	return mitigate(potency, math.Max(resistance, -99))
}

func mitigate(x, d float64) float64 {
	if x <= 0 {
		return 0
	}
	return x * 100 / (100 + d)
}

// LineOfSight always reports a clear line. Occlusion is not modelled.
func LineOfSight(from, to Vec2) bool {
	return true
}
