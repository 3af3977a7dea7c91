package bazi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_KnownScenario(t *testing.T) {
	// 1990-05-15 08:30: year 1990%10=0 / 1990%12=10, month 5/5,
	// day 15%10=5 / 15%12=3, hour 8/8.
	profile, err := Compute(BirthInput{
		Name:     "Alice",
		Date:     "1990-05-15",
		Time:     "08:30",
		City:     "Berlin",
		Timezone: "Europe/Berlin",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jia", profile.Pillars.Year.Stem)
	assert.Equal(t, "Xu", profile.Pillars.Year.Branch)
	assert.Equal(t, "Ji", profile.Pillars.Month.Stem)
	assert.Equal(t, "Si", profile.Pillars.Month.Branch)
	assert.Equal(t, "Ji", profile.Pillars.Day.Stem)
	assert.Equal(t, "Mao", profile.Pillars.Day.Branch)
	assert.Equal(t, "Ren", profile.Pillars.Hour.Stem)
	assert.Equal(t, "Shen", profile.Pillars.Hour.Branch)

	assert.Equal(t, Earth, profile.DayMaster.Element)
	assert.Equal(t, Yin, profile.DayMaster.Polarity)

	// Full-weight stems: 2 Yang, 2 Yin. Hidden stems at half weight tilt
	// the balance to 61% Yang / 39% Yin, a gap over ten points.
	assert.Equal(t, 39, profile.Balance.YinPercent)
	assert.Equal(t, 61, profile.Balance.YangPercent)
	assert.Equal(t, string(Yang), profile.Balance.Dominance)

	assert.Equal(t, ElementDistribution{Wood: 17, Fire: 11, Earth: 39, Metal: 17, Water: 17}, profile.Elements)

	assert.Equal(t, []Element{Fire, Earth}, profile.FavorableElements)
	assert.Equal(t, []Element{Wood, Water}, profile.UnfavorableElements)
}

func TestCompute_Deterministic(t *testing.T) {
	in := BirthInput{Name: "Bob", Date: "1984-11-02", Time: "23:45", City: "Austin", Timezone: "America/Chicago"}

	first, err := Compute(in)
	require.NoError(t, err)
	second, err := Compute(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompute_Normalization(t *testing.T) {
	inputs := []BirthInput{
		{Name: "a", Date: "1990-05-15", Time: "08:30"},
		{Name: "b", Date: "1975-01-01", Time: "00:00"},
		{Name: "c", Date: "2001-12-31", Time: "23:59"},
		{Name: "d", Date: "1988-02-29", Time: "12:00"},
		{Name: "e", Date: "1969-07-20", Time: "20:17"},
		{Name: "f", Date: "2010-10-10", Time: "10:10"},
	}

	for _, in := range inputs {
		profile, err := Compute(in)
		require.NoError(t, err, in.Date)

		polaritySum := profile.Balance.YinPercent + profile.Balance.YangPercent
		assert.InDelta(t, 100, polaritySum, 1, "polarity sum for %s", in.Date)

		elems := profile.Elements
		elementSum := elems.Wood + elems.Fire + elems.Earth + elems.Metal + elems.Water
		assert.InDelta(t, 100, elementSum, 1, "element sum for %s", in.Date)
	}
}

func TestCompute_DominanceThreshold(t *testing.T) {
	// Classification must be Balanced whenever the gap is ten points or
	// fewer, and must match the larger side otherwise.
	inputs := []BirthInput{
		{Name: "a", Date: "1990-05-15", Time: "08:30"},
		{Name: "b", Date: "1982-03-08", Time: "06:15"},
		{Name: "c", Date: "1995-09-21", Time: "17:40"},
		{Name: "d", Date: "2000-01-01", Time: "01:00"},
		{Name: "e", Date: "1977-06-30", Time: "13:05"},
	}

	for _, in := range inputs {
		profile, err := Compute(in)
		require.NoError(t, err)

		gap := profile.Balance.YinPercent - profile.Balance.YangPercent
		if gap < 0 {
			gap = -gap
		}

		switch {
		case gap <= 10:
			assert.Equal(t, DominanceBalanced, profile.Balance.Dominance, in.Date)
		case profile.Balance.YinPercent > profile.Balance.YangPercent:
			assert.Equal(t, string(Yin), profile.Balance.Dominance, in.Date)
		default:
			assert.Equal(t, string(Yang), profile.Balance.Dominance, in.Date)
		}
	}
}

func TestCompute_MalformedInput(t *testing.T) {
	_, err := Compute(BirthInput{Name: "x", Date: "not-a-date", Time: "08:30"})
	assert.Error(t, err)

	_, err = Compute(BirthInput{Name: "x", Date: "1990-05-15", Time: "8:30am"})
	assert.Error(t, err)
}

func TestCycleTables_Shape(t *testing.T) {
	require.Len(t, HeavenlyStems, 10)
	require.Len(t, EarthlyBranches, 12)

	for _, b := range EarthlyBranches {
		assert.GreaterOrEqual(t, len(b.HiddenStems), 1, b.Name)
		assert.LessOrEqual(t, len(b.HiddenStems), 3, b.Name)
		for _, h := range b.HiddenStems {
			_, ok := stemsByName[h]
			assert.True(t, ok, "hidden stem %s of %s must be a heavenly stem", h, b.Name)
		}
	}
}

func TestElementDistribution_Primary(t *testing.T) {
	d := ElementDistribution{Wood: 10, Fire: 40, Earth: 20, Metal: 15, Water: 15}
	assert.Equal(t, Fire, d.Primary())

	// Ties resolve in generation order.
	tie := ElementDistribution{Wood: 30, Fire: 30, Earth: 20, Metal: 10, Water: 10}
	assert.Equal(t, Wood, tie.Primary())
}
