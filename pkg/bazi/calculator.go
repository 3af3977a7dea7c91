// Package bazi implements a simplified Four Pillars (BaZi) profile
// calculation. The calendar mapping indexes the stem and branch cycles
// directly with `value % 10` and `value % 12` per calendar component.
// This is an intentional simplification, not a lunisolar conversion, and
// downstream compatibility scoring is calibrated against it. Do not
// "correct" it toward astronomical accuracy.
package bazi

import (
	"fmt"
	"math"
	"time"
)

// BirthInput identifies a subject's birth moment and place. Timezone is
// carried for display and prompting; the cyclical mapping operates on the
// local wall-clock components as given.
type BirthInput struct {
	Name     string
	Date     string // "2006-01-02"
	Time     string // "15:04"
	City     string
	Timezone string // IANA id, informational only
}

// Pillar is one calendar-derived slot carrying a stem and a branch.
type Pillar struct {
	Stem           string   `json:"stem"`
	Branch         string   `json:"branch"`
	StemElement    Element  `json:"stem_element"`
	StemPolarity   Polarity `json:"stem_yin_yang"`
	BranchElement  Element  `json:"branch_element"`
	BranchPolarity Polarity `json:"branch_yin_yang"`
	HiddenStems    []Stem   `json:"hidden_stems"`
}

// Pillars holds the four pillars of a profile.
type Pillars struct {
	Year  Pillar `json:"year"`
	Month Pillar `json:"month"`
	Day   Pillar `json:"day"`
	Hour  Pillar `json:"hour"`
}

// DayMaster is the element and polarity of the day pillar's stem, the
// single most significant attribute of a profile.
type DayMaster struct {
	Element  Element  `json:"element"`
	Polarity Polarity `json:"yin_yang"`
}

// PolarityBalance is the aggregate yin/yang split across all stems (full
// weight) and hidden stems (half weight), normalized to percentages.
type PolarityBalance struct {
	YinPercent  int    `json:"yin_percent"`
	YangPercent int    `json:"yang_percent"`
	Dominance   string `json:"dominance"` // "Yin", "Yang", or "Balanced"
}

// DominanceBalanced is the classification when the yin/yang split differs
// by ten points or fewer.
const DominanceBalanced = "Balanced"

// ElementDistribution is the normalized percentage weight of each element
// using the same full/half weighting as PolarityBalance.
type ElementDistribution struct {
	Wood  int `json:"wood"`
	Fire  int `json:"fire"`
	Earth int `json:"earth"`
	Metal int `json:"metal"`
	Water int `json:"water"`
}

// Get returns the percentage for an element.
func (d ElementDistribution) Get(e Element) int {
	switch e {
	case Wood:
		return d.Wood
	case Fire:
		return d.Fire
	case Earth:
		return d.Earth
	case Metal:
		return d.Metal
	case Water:
		return d.Water
	}
	return 0
}

// Primary returns the element with the largest share. Ties resolve in
// generation order (Wood first) so the result is deterministic.
func (d ElementDistribution) Primary() Element {
	primary := Wood
	best := d.Wood
	for _, e := range Elements[1:] {
		if v := d.Get(e); v > best {
			primary, best = e, v
		}
	}
	return primary
}

// Profile is the full computed astrological profile for one subject.
// Profiles are pure derivations of BirthInput and are never persisted;
// they are recomputed on demand.
type Profile struct {
	Name                string              `json:"name"`
	Pillars             Pillars             `json:"pillars"`
	DayMaster           DayMaster           `json:"day_master"`
	Balance             PolarityBalance     `json:"yin_yang"`
	Elements            ElementDistribution `json:"elements"`
	FavorableElements   []Element           `json:"favorable_elements"`
	UnfavorableElements []Element           `json:"unfavorable_elements"`
}

// Compute derives the four pillars and all aggregate figures from a birth
// moment. Same input always yields the same output; there is no I/O and no
// randomness. The only error condition is a syntactically malformed date or
// time, which callers are expected to reject upstream.
func Compute(in BirthInput) (*Profile, error) {
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, fmt.Errorf("parse birth date: %w", err)
	}
	clock, err := time.Parse("15:04", in.Time)
	if err != nil {
		return nil, fmt.Errorf("parse birth time: %w", err)
	}

	year := date.Year()
	month := int(date.Month())
	day := date.Day()
	hour := clock.Hour()

	pillars := Pillars{
		Year:  buildPillar(year),
		Month: buildPillar(month),
		Day:   buildPillar(day),
		Hour:  buildPillar(hour),
	}

	dayMaster := DayMaster{
		Element:  pillars.Day.StemElement,
		Polarity: pillars.Day.StemPolarity,
	}

	return &Profile{
		Name:                in.Name,
		Pillars:             pillars,
		DayMaster:           dayMaster,
		Balance:             polarityBalance(pillars),
		Elements:            elementDistribution(pillars),
		FavorableElements:   favorableByDayMaster[dayMaster.Element],
		UnfavorableElements: unfavorableByDayMaster[dayMaster.Element],
	}, nil
}

// buildPillar indexes the stem and branch cycles independently for one
// calendar component and resolves the branch's hidden stems.
func buildPillar(value int) Pillar {
	stem := HeavenlyStems[value%10]
	branch := EarthlyBranches[value%12]

	hidden := make([]Stem, 0, len(branch.HiddenStems))
	for _, name := range branch.HiddenStems {
		hidden = append(hidden, stemsByName[name])
	}

	return Pillar{
		Stem:           stem.Name,
		Branch:         branch.Name,
		StemElement:    stem.Element,
		StemPolarity:   stem.Polarity,
		BranchElement:  branch.Element,
		BranchPolarity: branch.Polarity,
		HiddenStems:    hidden,
	}
}

// polarityBalance counts each pillar's primary stem at full weight and
// every hidden stem at half weight, then normalizes to percentages.
// Dominance is classified only when the gap exceeds ten points.
func polarityBalance(pillars Pillars) PolarityBalance {
	var yin, yang float64

	for _, p := range pillars.all() {
		if p.StemPolarity == Yin {
			yin++
		} else {
			yang++
		}
		for _, h := range p.HiddenStems {
			if h.Polarity == Yin {
				yin += 0.5
			} else {
				yang += 0.5
			}
		}
	}

	total := yin + yang
	yinPct := roundPercent(yin, total)
	yangPct := roundPercent(yang, total)

	dominance := DominanceBalanced
	if diff := yinPct - yangPct; diff > 10 {
		dominance = string(Yin)
	} else if diff < -10 {
		dominance = string(Yang)
	}

	return PolarityBalance{YinPercent: yinPct, YangPercent: yangPct, Dominance: dominance}
}

// elementDistribution applies the identical weighting scheme over the
// five-element axis, normalized to 100.
func elementDistribution(pillars Pillars) ElementDistribution {
	counts := make(map[Element]float64, len(Elements))

	for _, p := range pillars.all() {
		counts[p.StemElement]++
		for _, h := range p.HiddenStems {
			counts[h.Element] += 0.5
		}
	}

	var total float64
	for _, c := range counts {
		total += c
	}

	return ElementDistribution{
		Wood:  roundPercent(counts[Wood], total),
		Fire:  roundPercent(counts[Fire], total),
		Earth: roundPercent(counts[Earth], total),
		Metal: roundPercent(counts[Metal], total),
		Water: roundPercent(counts[Water], total),
	}
}

func (p Pillars) all() [4]Pillar {
	return [4]Pillar{p.Year, p.Month, p.Day, p.Hour}
}

func roundPercent(count, total float64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(count / total * 100))
}
