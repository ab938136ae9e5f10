package engine

import "skyherald/internal/types"

// impactCatalog is the static per-condition gameplay impact table.
// Loaded once at init, never mutated.
//
// Heatwave follows the current table revision: forced marches remain
// impossible but night marches are allowed (travelling by night is the
// sensible response to a heatwave).
var impactCatalog = map[types.WeatherCondition]types.ImpactProfile{
	types.ConditionClearSkies: {
		RoadSpeed:      1,
		OffRoadSpeed:   1,
		CanForcedMarch: true,
		CanNightMarch:  true,
		CanFordRivers:  true,
		Severity:       types.SeverityNone,
	},
	types.ConditionLightRain: {
		RoadSpeed:      1,
		OffRoadSpeed:   0.75,
		CanForcedMarch: true,
		CanNightMarch:  true,
		CanFordRivers:  true,
		Severity:       types.SeverityNone,
	},
	types.ConditionHeavyRain: {
		RoadSpeed:      0.75,
		OffRoadSpeed:   0.5,
		CanForcedMarch: true,
		CanNightMarch:  false,
		CanFordRivers:  false,
		Severity:       types.SeverityBad,
	},
	types.ConditionStorm: {
		RoadSpeed:      0.5,
		OffRoadSpeed:   0.25,
		CanForcedMarch: false,
		CanNightMarch:  false,
		CanFordRivers:  false,
		Severity:       types.SeverityVeryBad,
		SpecialRule:    "Ranged attacks are impossible; units in open terrain risk lightning strikes.",
	},
	types.ConditionHot: {
		RoadSpeed:      1,
		OffRoadSpeed:   1,
		CanForcedMarch: true,
		CanNightMarch:  true,
		CanFordRivers:  true,
		Severity:       types.SeverityNone,
		SpecialRule:    "Water consumption is doubled during daytime travel.",
	},
	types.ConditionHeatwave: {
		RoadSpeed:      0.75,
		OffRoadSpeed:   0.75,
		CanForcedMarch: false,
		CanNightMarch:  true,
		CanFordRivers:  true,
		Severity:       types.SeverityBad,
		SpecialRule:    "Midday travel causes exhaustion; water consumption is doubled.",
	},
	types.ConditionSnow: {
		RoadSpeed:      0.75,
		OffRoadSpeed:   0.5,
		CanForcedMarch: true,
		CanNightMarch:  false,
		CanFordRivers:  true,
		Severity:       types.SeverityBad,
	},
	types.ConditionBlizzard: {
		RoadSpeed:      0.5,
		OffRoadSpeed:   0,
		CanForcedMarch: false,
		CanNightMarch:  false,
		ZeroVisibility: true,
		CanFordRivers:  false,
		Severity:       types.SeverityVeryBad,
		SpecialRule:    "Characters outside shelter risk frostbite.",
	},
	types.ConditionFog: {
		RoadSpeed:      0.75,
		OffRoadSpeed:   0.5,
		CanForcedMarch: true,
		CanNightMarch:  false,
		ZeroVisibility: true,
		CanFordRivers:  true,
		Severity:       types.SeverityBad,
	},
}

// ImpactFor returns the impact profile for a condition. Unknown conditions
// return the zero-impact Clear Skies profile; the closed enum makes that
// unreachable in practice.
func ImpactFor(condition types.WeatherCondition) types.ImpactProfile {
	if p, ok := impactCatalog[condition]; ok {
		return p
	}
	return impactCatalog[types.ConditionClearSkies]
}
