package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyherald/internal/types"
)

func TestImpactCatalogCoversAllConditions(t *testing.T) {
	for _, c := range types.AllConditions {
		p, ok := impactCatalog[c]
		require.True(t, ok, "missing impact profile for %s", c)
		assert.GreaterOrEqual(t, p.RoadSpeed, 0.0)
		assert.LessOrEqual(t, p.RoadSpeed, 1.0)
		assert.GreaterOrEqual(t, p.OffRoadSpeed, 0.0)
		assert.LessOrEqual(t, p.OffRoadSpeed, 1.0)
	}
}

func TestHeatwaveMarchingRevision(t *testing.T) {
	p := ImpactFor(types.ConditionHeatwave)
	assert.False(t, p.CanForcedMarch)
	assert.True(t, p.CanNightMarch)
}

func TestFormatImpactsClearSkies(t *testing.T) {
	assert.Empty(t, FormatImpacts(ImpactFor(types.ConditionClearSkies)))
}

func TestFormatImpactsBlizzardOrdering(t *testing.T) {
	got := FormatImpacts(ImpactFor(types.ConditionBlizzard))
	want := []string{
		"Road travel at 1/2 speed.",
		"Off-road travel is impossible.",
		"Forced marches are not possible.",
		"Night marches are not possible.",
		"Visibility is reduced to zero.",
		"Rivers cannot be forded.",
		"-1 to battle rolls, -2 hexes to scouting range.",
		"Characters outside shelter risk frostbite.",
	}
	assert.Equal(t, want, got)
}

func TestFormatImpactsSeverityBad(t *testing.T) {
	got := FormatImpacts(ImpactFor(types.ConditionSnow))
	assert.Contains(t, got, "-1 to battle rolls, -1 hex to scouting range.")
}

func TestFormatImpactsSpecialRuleLast(t *testing.T) {
	got := FormatImpacts(ImpactFor(types.ConditionStorm))
	require.NotEmpty(t, got)
	assert.Equal(t, "Ranged attacks are impossible; units in open terrain risk lightning strikes.", got[len(got)-1])
}

func TestFormatImpactsHotOnlySpecialRule(t *testing.T) {
	got := FormatImpacts(ImpactFor(types.ConditionHot))
	assert.Equal(t, []string{"Water consumption is doubled during daytime travel."}, got)
}
