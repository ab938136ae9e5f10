package engine

import (
	"fmt"
	"time"

	"skyherald/internal/types"
)

// Epoch length bounds: every weather spell lasts between 2 and 5 days.
const (
	minEpochLength  = 2
	epochLengthSpan = 4 // lengths are uniform in {2, 3, 4, 5}
)

// anchorEpoch is the fixed base case of the continuity walk: epoch 0 starts
// at day 0 with a known preceding condition of Clear Skies.
const anchorEpoch = 0

// timelineZero is the fixed epoch-zero reference: day 0 is 1970-01-01 UTC.
var timelineZero = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Epoch is a derived, never-stored value describing one contiguous weather
// spell. Epochs for a region partition the timeline: contiguous and
// non-overlapping by construction, re-derivable identically from the epoch
// number and region alone.
type Epoch struct {
	Number   int
	StartDay int
	Length   int
}

// Scheduler partitions the timeline into epochs for one region.
// It carries no mutable state; all methods are pure.
type Scheduler struct {
	regionID string
	offset   int32
}

// NewScheduler returns the epoch scheduler for a region.
func NewScheduler(regionID string) *Scheduler {
	return &Scheduler{
		regionID: regionID,
		offset:   RegionOffset(regionID),
	}
}

// Length returns the length of epoch n: a uniform integer in {2..5} drawn
// from a fresh Source seeded for exactly this purpose.
func (s *Scheduler) Length(n int) int {
	src := NewSource(EpochLengthSeed(n, s.offset))
	return minEpochLength + int(src.Next()*epochLengthSpan)
}

// DayNumber converts a calendar date to whole days since the timeline zero
// reference (1970-01-01 UTC). Dates before the reference are rejected; the
// campaign calendar sits far above it.
func DayNumber(date time.Time) (int, error) {
	u := date.UTC()
	midnight := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	days := int(midnight.Sub(timelineZero).Hours() / 24)
	if days < 0 {
		return 0, types.NewAppError(types.ErrCodeValidationDateTooEarly,
			fmt.Sprintf("date %s precedes the weather timeline", u.Format("2006-01-02")), nil)
	}
	return days, nil
}

// DateOfDay converts a day number back to the calendar date it denotes.
func DateOfDay(day int) time.Time {
	return timelineZero.AddDate(0, 0, day)
}

// Locate finds the epoch containing targetDay and the zero-based day offset
// within it. It walks forward from the anchor epoch accumulating lengths;
// the walk is O(targetDay) and correctness-only — callers needing frequent
// far-apart lookups layer memoization on top (see Resolver).
//
// An InvariantViolation is returned if the scan passes the target day without
// containing it, which indicates an algorithm defect, not a recoverable state.
func (s *Scheduler) Locate(targetDay int) (Epoch, int, error) {
	if targetDay < 0 {
		return Epoch{}, 0, types.NewAppError(types.ErrCodeValidationDateTooEarly,
			"target day precedes the weather timeline", nil)
	}

	start := 0
	for n := anchorEpoch; start <= targetDay; n++ {
		length := s.Length(n)
		if targetDay < start+length {
			return Epoch{Number: n, StartDay: start, Length: length}, targetDay - start, nil
		}
		start += length
	}

	return Epoch{}, 0, types.NewAppError(types.ErrCodeInternalInvariant,
		fmt.Sprintf("epoch scan passed day %d without containing it (region %q)", targetDay, s.regionID), nil)
}
