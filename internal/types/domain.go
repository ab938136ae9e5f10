package types

import "time"

// ConditionWeight is a single weighted candidate in a seasonal condition list.
// A zero Weight means "unspecified" and is treated as 1 when loading config.
type ConditionWeight struct {
	Condition WeatherCondition `json:"condition" validate:"required"`
	Weight    float64          `json:"weight,omitempty" validate:"gte=0"`
}

// SeasonalConfig maps each season to its ordered, weighted candidate
// conditions. Order matters: it defines the tie-break order of the weighted
// selection and must be preserved exactly from the configuration source.
//
// The engine treats this as read-only input. A season missing from the map
// is a caller configuration error surfaced at resolve time.
type SeasonalConfig map[Season][]ConditionWeight

// Region is one named area of the campaign world. The ID is an opaque but
// stable identifier; all per-region determinism hangs off its hash, so
// renaming a region rerolls its entire weather history.
type Region struct {
	ID         string         `json:"id" validate:"required"`
	Name       string         `json:"name"`
	WebhookURL string         `json:"webhook_url" validate:"omitempty,url"`
	Seasons    SeasonalConfig `json:"seasons" validate:"required"`
}

// DisplayName returns the human-facing name, falling back to the ID.
func (r Region) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// ImpactProfile describes the mechanical consequences of a weather condition.
// Speed multipliers are rationals in [0,1]; an off-road multiplier of 0 means
// off-road travel is impossible.
type ImpactProfile struct {
	RoadSpeed      float64       `json:"road_speed"`
	OffRoadSpeed   float64       `json:"offroad_speed"`
	CanForcedMarch bool          `json:"can_forced_march"`
	CanNightMarch  bool          `json:"can_night_march"`
	ZeroVisibility bool          `json:"zero_visibility"`
	CanFordRivers  bool          `json:"can_ford_rivers"`
	Severity       SeverityClass `json:"severity"`
	SpecialRule    string        `json:"special_rule,omitempty"`
}

// CometEvent is the payload attached to the single fixed calendar date on
// which the comet passes. There is exactly one such event.
type CometEvent struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Effect      string `json:"effect"`
}

// WeatherResult is the sole value the engine returns to callers. For a fixed
// (date, region, configuration) it is byte-identical across invocations and
// process restarts.
type WeatherResult struct {
	Date      string           `json:"date"`
	DayOfWeek string           `json:"day_of_week"`
	Season    Season           `json:"season"`
	Condition WeatherCondition `json:"condition"`
	Impacts   []string         `json:"impacts"`
	Profile   ImpactProfile    `json:"profile"`
	Comet     *CometEvent      `json:"comet,omitempty"`
}

// HasComet reports whether the comet override fired for this result.
func (w *WeatherResult) HasComet() bool {
	return w.Comet != nil
}

// DeliveryResult captures the outcome of a single webhook delivery attempt.
type DeliveryResult struct {
	DeliveryID string
	Kind       DeliveryResultKind
	StatusCode int
	Duration   time.Duration
	Err        error
}
