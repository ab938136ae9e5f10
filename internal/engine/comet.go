package engine

import (
	"time"

	"skyherald/internal/types"
)

// The Gunhilde comet passes on exactly one calendar date. On that date every
// region, regardless of configuration, sees clear skies and the comet payload;
// the check runs before any RNG draw and bypasses the whole pipeline.
const (
	cometYear  = 2025
	cometMonth = time.September
	cometDay   = 23
)

// cometEvent is the fixed singleton payload attached on the comet date.
var cometEvent = types.CometEvent{
	Name:        "Gunhilde",
	Description: "The comet Gunhilde blazes across the night sky, visible from every corner of the realm.",
	Effect:      "All navigation checks made under the open sky automatically succeed tonight.",
}

// cometOverride returns the comet payload if the date (UTC) is the comet
// date, or nil otherwise.
func cometOverride(date time.Time) *types.CometEvent {
	u := date.UTC()
	if u.Year() == cometYear && u.Month() == cometMonth && u.Day() == cometDay {
		ev := cometEvent
		return &ev
	}
	return nil
}
