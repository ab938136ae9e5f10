package engine

import "skyherald/internal/types"

// PickWeighted selects one condition from an ordered weighted candidate list
// using a single draw from src. The draw r = src.Next() * totalWeight walks
// the list subtracting each entry's weight until r falls below the current
// entry, so both the weights and the list order define the distribution and
// its tie-break behavior.
//
// A zero or negative weight counts as 1 (configuration defaults unspecified
// weights to 1 before they reach the engine; this mirrors that defensively).
// If floating error lets r overrun the list, the last entry is returned.
// Callers must not pass an empty list; configuration validation rejects
// empty condition lists before they reach the engine.
func PickWeighted(src *Source, entries []types.ConditionWeight) types.WeatherCondition {
	if len(entries) == 0 {
		return ""
	}

	var total float64
	for _, e := range entries {
		total += effectiveWeight(e.Weight)
	}

	r := src.Next() * total
	for _, e := range entries {
		w := effectiveWeight(e.Weight)
		if r < w {
			return e.Condition
		}
		r -= w
	}

	// Floating-point overrun fallback.
	return entries[len(entries)-1].Condition
}

func effectiveWeight(w float64) float64 {
	if w <= 0 {
		return 1
	}
	return w
}
