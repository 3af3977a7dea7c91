package bazi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraitsFor(t *testing.T) {
	wood := TraitsFor(Wood)
	assert.Contains(t, wood.Characteristics, "growth-oriented")
	assert.Contains(t, wood.WorkStyle, "mentoring")

	// Unknown elements resolve to the Earth profile.
	unknown := TraitsFor(Element("Aether"))
	assert.Equal(t, TraitsFor(Earth), unknown)
}

func TestDominanceDescription(t *testing.T) {
	assert.Contains(t, DominanceDescription(string(Yin)), "Yin-dominant")
	assert.Contains(t, DominanceDescription(string(Yang)), "Yang-dominant")
	assert.Contains(t, DominanceDescription(DominanceBalanced), "well-balanced")
	assert.Contains(t, DominanceDescription("garbage"), "well-balanced")
}

func TestPillarInsight(t *testing.T) {
	for _, pillar := range []string{"year", "month", "day", "hour"} {
		assert.NotEmpty(t, PillarInsight(pillar), pillar)
	}
	assert.Empty(t, PillarInsight("minute"))
}

func TestFavorableDescriptions(t *testing.T) {
	assert.Equal(t, "No specific favorable elements identified.", FavorableDescription(nil))
	assert.Equal(t, "Favorable elements are Fire and Earth; these support natural strengths.",
		FavorableDescription([]Element{Fire, Earth}))

	assert.Equal(t, "No specific unfavorable elements identified.", UnfavorableDescription(nil))
	assert.Contains(t, UnfavorableDescription([]Element{Water}), "Water")
}
