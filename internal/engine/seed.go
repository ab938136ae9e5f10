package engine

import "time"

// Seed multipliers decorrelating the independent per-epoch random decisions.
// Each purpose gets its own multiplier so a freshly constructed Source is
// consumed exactly once for that purpose; generators are never shared across
// purposes.
const (
	epochLengthMultiplier     = 7919
	epochBaseWeatherMultiplier = 31337
	transitionPathMultiplier  = 54321
)

// RegionHash maps a region identifier to a stable signed 32-bit hash using a
// rolling shift-and-add: h = (h << 5) - h + ch, with 32-bit wraparound. It is
// order-sensitive and case-sensitive; changing any character changes the hash.
func RegionHash(regionID string) int32 {
	var h int32
	for _, ch := range regionID {
		h = (h << 5) - h + int32(ch)
	}
	return h
}

// RegionOffset is RegionHash reduced mod 1000 (sign-preserving remainder),
// used to decorrelate per-region seed streams cheaply.
func RegionOffset(regionID string) int32 {
	return RegionHash(regionID) % 1000
}

// DirectSeed derives a seed straight from a calendar date and region,
// bypassing the epoch machinery. Used for draws outside the smoothing system.
func DirectSeed(date time.Time, regionID string) int32 {
	y, m, d := date.UTC().Date()
	return int32(y*10000+int(m)*100+d) + RegionOffset(regionID)
}

// EpochLengthSeed seeds the draw that fixes the length of epoch n for a region.
func EpochLengthSeed(n int, regionOffset int32) int32 {
	return int32(n)*epochLengthMultiplier + regionOffset
}

// EpochBaseWeatherSeed seeds the draw that rolls epoch n's base condition.
// Note it mixes in the full region hash, not the reduced offset.
func EpochBaseWeatherSeed(n int, regionHash int32) int32 {
	return int32(n)*epochBaseWeatherMultiplier + regionHash
}

// TransitionPathSeed seeds the draw that picks among alternative transition
// paths entering epoch n.
func TransitionPathSeed(n int, regionOffset int32) int32 {
	return int32(n)*transitionPathMultiplier + regionOffset
}
