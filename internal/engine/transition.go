package engine

import "skyherald/internal/types"

// Path is an ordered sequence of intermediate conditions displayed on
// successive days while moving between two climatically distant base
// conditions. A path never contains the destination itself; once it is
// exhausted the epoch's rolled base takes over.
type Path []types.WeatherCondition

// transitionPaths is the static directed graph over condition pairs that
// require smoothing. The absence of an entry for a (from, to) pair means the
// jump is a permitted direct change; self-transitions never need a path.
//
// Loaded once at init, never mutated.
var transitionPaths = map[types.WeatherCondition]map[types.WeatherCondition][]Path{
	types.ConditionHeatwave: {
		types.ConditionBlizzard: {
			{types.ConditionHot, types.ConditionSnow},
			{types.ConditionClearSkies, types.ConditionSnow},
		},
		types.ConditionSnow: {
			{types.ConditionHot, types.ConditionClearSkies},
		},
		types.ConditionStorm: {
			{types.ConditionHot, types.ConditionHeavyRain},
		},
		types.ConditionHeavyRain: {
			{types.ConditionLightRain},
		},
	},
	types.ConditionHot: {
		types.ConditionBlizzard: {
			{types.ConditionSnow, types.ConditionClearSkies},
		},
		types.ConditionSnow: {
			{types.ConditionClearSkies},
		},
	},
	types.ConditionBlizzard: {
		types.ConditionHeatwave: {
			{types.ConditionSnow, types.ConditionHot},
		},
		types.ConditionHot: {
			{types.ConditionSnow, types.ConditionClearSkies},
		},
		types.ConditionClearSkies: {
			{types.ConditionSnow},
		},
	},
	types.ConditionSnow: {
		types.ConditionHeatwave: {
			{types.ConditionClearSkies, types.ConditionHot},
		},
		types.ConditionHot: {
			{types.ConditionClearSkies},
		},
	},
	types.ConditionStorm: {
		types.ConditionHeatwave: {
			{types.ConditionLightRain, types.ConditionClearSkies},
		},
	},
	types.ConditionClearSkies: {
		types.ConditionBlizzard: {
			{types.ConditionSnow},
		},
	},
}

// PathsBetween returns the registered alternative transition paths for a
// (from, to) pair, or nil when the jump is a permitted direct change.
func PathsBetween(from, to types.WeatherCondition) []Path {
	if from == to {
		return nil
	}
	targets, ok := transitionPaths[from]
	if !ok {
		return nil
	}
	return targets[to]
}

// pickPath chooses uniformly among the alternative paths for a transition,
// seeded per epoch and region. Returns nil when no smoothing is required.
func pickPath(from, to types.WeatherCondition, epochNumber int, regionOffset int32) Path {
	paths := PathsBetween(from, to)
	if len(paths) == 0 {
		return nil
	}
	src := NewSource(TransitionPathSeed(epochNumber, regionOffset))
	idx := int(src.Next() * float64(len(paths)))
	if idx >= len(paths) {
		idx = len(paths) - 1
	}
	return paths[idx]
}
