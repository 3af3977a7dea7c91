package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonyhq/harmony-engine/pkg/bazi"
	"github.com/harmonyhq/harmony-engine/pkg/models"
)

func subjectContext(t *testing.T, name, date, tm string, kind models.SubjectKind) SubjectContext {
	t.Helper()

	profile, err := bazi.Compute(bazi.BirthInput{
		Name: name, Date: date, Time: tm, City: "Berlin", Timezone: "Europe/Berlin",
	})
	require.NoError(t, err)

	return SubjectContext{
		Subject: &models.Subject{
			Kind: kind, Name: name,
			BirthDate: date, BirthTime: tm,
			BirthCity: "Berlin", Timezone: "Europe/Berlin",
		},
		Profile: profile,
	}
}

func TestBuildCompatibilityPrompt_Candidate(t *testing.T) {
	a := subjectContext(t, "Alex Manager", "1990-05-15", "08:30", models.SubjectPerson)
	b := subjectContext(t, "Bea Candidate", "1985-11-02", "14:00", models.SubjectPerson)

	prompt := BuildCompatibilityPrompt(a, b, models.MatchCandidate)

	assert.Contains(t, prompt, "Manager:")
	assert.Contains(t, prompt, "Candidate:")
	assert.Contains(t, prompt, "- Name: Alex Manager")
	assert.Contains(t, prompt, "- Name: Bea Candidate")
	assert.Contains(t, prompt, "recommendations for the manager")

	// Exact computed figures must be spelled out.
	assert.Contains(t, prompt, "39% Yin, 61% Yang")
	assert.Contains(t, prompt, "Day Master: Earth Yin")

	// Trait context derived from the day master rides along.
	assert.Contains(t, prompt, "Day Master Traits: stable, practical")
	assert.Contains(t, prompt, "Yang-dominant energy")
	assert.Contains(t, prompt, "Favorable elements are")

	// The JSON contract uses role-neutral keys.
	assert.Contains(t, prompt, `"subject_a": "<Yin or Yang dominant>"`)
	assert.Contains(t, prompt, `"subject_a_primary"`)
	assert.NotContains(t, prompt, `"manager":`)

	assert.Contains(t, prompt, "Only output valid JSON")
}

func TestBuildCompatibilityPrompt_Organization(t *testing.T) {
	a := subjectContext(t, "Alex Manager", "1990-05-15", "08:30", models.SubjectPerson)
	b := subjectContext(t, "Acme Corp", "2005-03-01", "12:00", models.SubjectOrganization)

	prompt := BuildCompatibilityPrompt(a, b, models.MatchOrganization)

	assert.Contains(t, prompt, "organizational alignment")
	assert.Contains(t, prompt, "Individual:")
	assert.Contains(t, prompt, "Organization:")
	assert.Contains(t, prompt, "- Founding Date: 2005-03-01")
	assert.Contains(t, prompt, "recommendations for the individual")
}

func TestBuildCompatibilityPrompt_OmitsEmptyBirthTime(t *testing.T) {
	a := subjectContext(t, "Alex", "1990-05-15", "08:30", models.SubjectPerson)
	b := subjectContext(t, "Acme Corp", "2005-03-01", "12:00", models.SubjectOrganization)
	b.Subject.BirthTime = ""

	prompt := BuildCompatibilityPrompt(a, b, models.MatchOrganization)

	blocks := strings.Split(prompt, "Organization:")
	require.Len(t, blocks, 2)
	assert.NotContains(t, blocks[1][:200], "Birth Time")
}
