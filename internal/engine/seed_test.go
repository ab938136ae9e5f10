package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegionHashGoldenValues(t *testing.T) {
	tests := []struct {
		regionID string
		want     int32
	}{
		{"Patlania Southern Point", 1512526710},
		{"Patlania southern point", -1750894730}, // case-sensitive
		{"Ironmoor", -244879379},
		{"Gloomwood Reach", 592541576},
		{"a", 97},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.regionID, func(t *testing.T) {
			assert.Equal(t, tt.want, RegionHash(tt.regionID))
		})
	}
}

func TestRegionHashOrderSensitive(t *testing.T) {
	assert.NotEqual(t, RegionHash("ab"), RegionHash("ba"))
}

func TestRegionHashSingleCharacterChange(t *testing.T) {
	assert.NotEqual(t, RegionHash("Patlania Southern Point"), RegionHash("Patlania Southern Poinu"))
}

func TestRegionOffset(t *testing.T) {
	// The remainder keeps the dividend's sign, matching the hash's signedness.
	assert.Equal(t, int32(710), RegionOffset("Patlania Southern Point"))
	assert.Equal(t, int32(-379), RegionOffset("Ironmoor"))
	assert.Equal(t, int32(0), RegionOffset(""))
}

func TestDirectSeed(t *testing.T) {
	date := time.Date(2025, time.August, 12, 0, 0, 0, 0, time.UTC)
	// 2025*10000 + 8*100 + 12 + 710
	assert.Equal(t, int32(20250812+710), DirectSeed(date, "Patlania Southern Point"))
}

func TestPurposeSeedsAreDecorrelated(t *testing.T) {
	const n = 17
	off := RegionOffset("Patlania Southern Point")
	hash := RegionHash("Patlania Southern Point")

	seeds := map[int32]string{}
	for seed, purpose := range map[int32]string{
		EpochLengthSeed(n, off):       "length",
		EpochBaseWeatherSeed(n, hash): "base",
		TransitionPathSeed(n, off):    "path",
	} {
		if prior, dup := seeds[seed]; dup {
			t.Fatalf("seed collision between %s and %s", prior, purpose)
		}
		seeds[seed] = purpose
	}
}

func TestEpochSeedFormulas(t *testing.T) {
	assert.Equal(t, int32(7919*3+100), EpochLengthSeed(3, 100))
	assert.Equal(t, int32(31337*3-7), EpochBaseWeatherSeed(3, -7))
	assert.Equal(t, int32(54321*3+100), TransitionPathSeed(3, 100))
}
