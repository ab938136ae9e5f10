package engine

import "skyherald/internal/types"

// FormatImpacts renders an impact profile into an ordered list of
// human-readable effect strings. The ordering rule is fixed: road speed,
// off-road speed, forced march, night march, visibility, fording, severity
// penalties, then any free-text special rule last. Fields with no effect
// emit nothing, so the list's length varies by condition.
func FormatImpacts(p types.ImpactProfile) []string {
	out := []string{}

	if p.RoadSpeed < 1 {
		out = append(out, "Road travel at "+fractionLabel(p.RoadSpeed)+" speed.")
	}
	if p.OffRoadSpeed == 0 {
		out = append(out, "Off-road travel is impossible.")
	} else if p.OffRoadSpeed < 1 {
		out = append(out, "Off-road travel at "+fractionLabel(p.OffRoadSpeed)+" speed.")
	}
	if !p.CanForcedMarch {
		out = append(out, "Forced marches are not possible.")
	}
	if !p.CanNightMarch {
		out = append(out, "Night marches are not possible.")
	}
	if p.ZeroVisibility {
		out = append(out, "Visibility is reduced to zero.")
	}
	if !p.CanFordRivers {
		out = append(out, "Rivers cannot be forded.")
	}

	switch p.Severity {
	case types.SeverityBad:
		out = append(out, "-1 to battle rolls, -1 hex to scouting range.")
	case types.SeverityVeryBad:
		out = append(out, "-1 to battle rolls, -2 hexes to scouting range.")
	}

	if p.SpecialRule != "" {
		out = append(out, p.SpecialRule)
	}

	return out
}

// fractionLabel renders the catalog's rational multipliers as fractions.
// The catalog only uses quarters; anything else falls back to "reduced".
func fractionLabel(m float64) string {
	switch m {
	case 0.75:
		return "3/4"
	case 0.5:
		return "1/2"
	case 0.25:
		return "1/4"
	default:
		return "reduced"
	}
}
