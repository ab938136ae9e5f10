package engine

import (
	"time"

	"skyherald/internal/types"
)

// ResolveSeason maps a month/day pair to a season using fixed
// Northern-Hemisphere boundaries: spring runs Mar 20 – Jun 20, summer
// Jun 21 – Sep 21, autumn Sep 22 – Dec 20, and winter covers the rest.
// Year-independent.
func ResolveSeason(month time.Month, day int) types.Season {
	switch {
	case afterOrOn(month, day, time.March, 20) && beforeOrOn(month, day, time.June, 20):
		return types.SeasonSpring
	case afterOrOn(month, day, time.June, 21) && beforeOrOn(month, day, time.September, 21):
		return types.SeasonSummer
	case afterOrOn(month, day, time.September, 22) && beforeOrOn(month, day, time.December, 20):
		return types.SeasonAutumn
	default:
		return types.SeasonWinter
	}
}

// SeasonOf resolves the season of a calendar date's UTC month and day.
func SeasonOf(date time.Time) types.Season {
	u := date.UTC()
	return ResolveSeason(u.Month(), u.Day())
}

func afterOrOn(m time.Month, d int, bm time.Month, bd int) bool {
	return m > bm || (m == bm && d >= bd)
}

func beforeOrOn(m time.Month, d int, bm time.Month, bd int) bool {
	return m < bm || (m == bm && d <= bd)
}
