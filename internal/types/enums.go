package types

// WeatherCondition is the closed set of weather states the engine can produce.
// The string values are display values and are also the keys used in region
// configuration files; they must never be renamed once campaigns depend on them.
type WeatherCondition string

const (
	ConditionClearSkies WeatherCondition = "Clear Skies"
	ConditionLightRain  WeatherCondition = "Light Rain"
	ConditionHeavyRain  WeatherCondition = "Heavy Rain"
	ConditionStorm      WeatherCondition = "Storm"
	ConditionHot        WeatherCondition = "Hot"
	ConditionHeatwave   WeatherCondition = "Heatwave"
	ConditionSnow       WeatherCondition = "Snow"
	ConditionBlizzard   WeatherCondition = "Blizzard"
	ConditionFog        WeatherCondition = "Fog"
)

// AllConditions lists every valid WeatherCondition in a stable order.
// Used by configuration validation and by the impact catalog completeness test.
var AllConditions = []WeatherCondition{
	ConditionClearSkies,
	ConditionLightRain,
	ConditionHeavyRain,
	ConditionStorm,
	ConditionHot,
	ConditionHeatwave,
	ConditionSnow,
	ConditionBlizzard,
	ConditionFog,
}

// Valid reports whether c is one of the nine known conditions.
func (c WeatherCondition) Valid() bool {
	for _, known := range AllConditions {
		if c == known {
			return true
		}
	}
	return false
}

// Season identifies one of the four fixed seasons (Northern-Hemisphere convention).
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// AllSeasons lists every Season in calendar order starting at spring.
var AllSeasons = []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}

// Valid reports whether s is one of the four known seasons.
func (s Season) Valid() bool {
	for _, known := range AllSeasons {
		if s == known {
			return true
		}
	}
	return false
}

// SeverityClass grades how punishing a condition is for battles and scouting.
type SeverityClass string

const (
	SeverityNone    SeverityClass = "none"
	SeverityBad     SeverityClass = "bad"
	SeverityVeryBad SeverityClass = "very_bad"
)

// DeliveryResultKind categorizes the outcome of a webhook delivery attempt.
type DeliveryResultKind string

const (
	DeliverySuccess DeliveryResultKind = "success"
	DeliveryFailure DeliveryResultKind = "failure"
	DeliverySkipped DeliveryResultKind = "skipped"
)
