// Package services contains the business logic for harmony-engine:
// profile computation, compatibility synthesis, and reading generation.
package services

import (
	"fmt"

	"github.com/harmonyhq/harmony-engine/pkg/bazi"
	"github.com/harmonyhq/harmony-engine/pkg/models"
)

// defaultBirthTime stands in for an organization's unknown founding time.
const defaultBirthTime = "12:00"

// ProfileForSubject computes the astrological profile for a subject.
// Profiles are pure functions of birth data and are recomputed on demand
// rather than persisted.
func ProfileForSubject(subject *models.Subject) (*bazi.Profile, error) {
	birthTime := subject.BirthTime
	if birthTime == "" {
		birthTime = defaultBirthTime
	}

	profile, err := bazi.Compute(bazi.BirthInput{
		Name:     subject.Name,
		Date:     subject.BirthDate,
		Time:     birthTime,
		City:     subject.BirthCity,
		Timezone: subject.Timezone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute profile for subject %s: %w", subject.ID, err)
	}

	return profile, nil
}

// figuresFromProfile extracts the deterministic chart figures that get
// embedded verbatim into a persisted analysis.
func figuresFromProfile(p *bazi.Profile) models.ProfileFigures {
	return models.ProfileFigures{
		YinYang: models.YinYangFigures{
			Yin:       p.Balance.YinPercent,
			Yang:      p.Balance.YangPercent,
			Dominance: p.Balance.Dominance,
		},
		Elements: models.ElementShares{
			Wood:  p.Elements.Wood,
			Fire:  p.Elements.Fire,
			Earth: p.Elements.Earth,
			Metal: p.Elements.Metal,
			Water: p.Elements.Water,
		},
		DayMaster: models.DayMasterInfo{
			Element: string(p.DayMaster.Element),
			YinYang: string(p.DayMaster.Polarity),
		},
	}
}
