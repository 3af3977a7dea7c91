package prompts

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonyhq/harmony-engine/pkg/models"
	"github.com/harmonyhq/harmony-engine/pkg/tarot"
)

func testMatch() *models.Match {
	return &models.Match{
		Score: 78,
		Analysis: &models.Analysis{
			Summary:    "A promising pairing.",
			Strengths:  []string{"mutual respect", "complementary elements"},
			Challenges: []string{"pace mismatch"},
		},
	}
}

func TestBuildReadingPrompt(t *testing.T) {
	card := tarot.Find("Horse Spirit")
	require.NotNil(t, card)

	prompt := BuildReadingPrompt(card, testMatch())

	assert.Contains(t, prompt, `"Horse Spirit"`)
	assert.Contains(t, prompt, card.Meaning)
	assert.Contains(t, prompt, "78%")
	assert.Contains(t, prompt, "A promising pairing.")
	assert.Contains(t, prompt, "mutual respect, complementary elements")
	assert.Contains(t, prompt, "mystical yet practical tone")
}

func TestBuildReadingPrompt_NilAnalysis(t *testing.T) {
	card := tarot.Find("Sun Spirit")
	require.NotNil(t, card)

	match := &models.Match{Score: 50}
	prompt := BuildReadingPrompt(card, match)
	assert.Contains(t, prompt, "50%")
}

func TestFallbackInterpretation(t *testing.T) {
	card := tarot.Find("Wolf Spirit")
	require.NotNil(t, card)

	out := FallbackInterpretation(card, testMatch())

	assert.Contains(t, out, "Wolf Spirit")
	assert.Contains(t, out, card.Meaning)
	assert.Contains(t, out, card.Affirmation)
	assert.Contains(t, out, "78%")
	assert.NotEmpty(t, out)
}

func TestBuildNarrationText(t *testing.T) {
	out := BuildNarrationText("Moon Spirit", "Trust the cycles.", "A fine\nreading\twith   gaps.", "Bea")

	assert.True(t, strings.HasPrefix(out, "The card you have drawn is Moon Spirit."))
	assert.Contains(t, out, "Your reading for Bea:")
	assert.Contains(t, out, "A fine reading with gaps.")
	assert.Contains(t, out, "May this guidance illuminate your path.")
	assert.NotContains(t, out, "\n")
}

func TestSanitizeForSpeech_CapsLength(t *testing.T) {
	long := strings.Repeat("om ", 1000)
	out := sanitizeForSpeech(long)
	assert.LessOrEqual(t, len(out), maxSpeechSegment)
}

func TestSanitizeForSpeech_TruncatesOnRuneBoundary(t *testing.T) {
	// Each em-dash is three bytes, so a byte-index cut lands mid-rune for
	// two out of three alignments.
	for offset := 0; offset < 3; offset++ {
		long := strings.Repeat("x", offset) + strings.Repeat("—", maxSpeechSegment)
		out := sanitizeForSpeech(long)
		assert.True(t, utf8.ValidString(out), "offset %d", offset)
		assert.LessOrEqual(t, len(out), maxSpeechSegment)
	}
}
