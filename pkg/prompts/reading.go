package prompts

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/harmonyhq/harmony-engine/pkg/models"
	"github.com/harmonyhq/harmony-engine/pkg/tarot"
)

// ReadingSystemMessage is the system message for card interpretation.
const ReadingSystemMessage = "You are a mystical tarot reader who specializes in workplace compatibility and hiring decisions. Provide insightful, practical interpretations that blend tarot wisdom with professional guidance."

// BuildReadingPrompt renders the interpretation prompt for a drawn card in
// the context of an existing compatibility analysis.
func BuildReadingPrompt(card *tarot.Card, match *models.Match) string {
	var strengths, challenges []string
	summary := ""
	if match.Analysis != nil {
		strengths = match.Analysis.Strengths
		challenges = match.Analysis.Challenges
		summary = match.Analysis.Summary
	}

	return fmt.Sprintf(`I've drawn the tarot card "%s" (meaning: %s) in the context of a hiring decision.

Here is the compatibility analysis between the manager and candidate:
- Overall compatibility score: %d%%
- Summary: %s
- Strengths: %s
- Challenges: %s

Please provide a tarot reading that:
1. Interprets what this card means for this specific hiring decision
2. Connects the card's energy to the compatibility dynamics
3. Offers guidance on how to proceed with this candidate
4. Keeps a mystical yet practical tone (3-4 paragraphs)`,
		card.Name, card.Meaning, match.Score, summary,
		strings.Join(strengths, ", "), strings.Join(challenges, ", "))
}

// FallbackInterpretation composes a static interpretation from the card's
// own text. Used when every text provider fails so a reading never lacks an
// interpretation.
func FallbackInterpretation(card *tarot.Card, match *models.Match) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s has appeared in your reading. %s\n\n", card.Name, card.Meaning)
	fmt.Fprintf(&sb, "In its upright position this card speaks of %s. %s\n\n",
		strings.ToLower(card.Upright), card.Essence)
	fmt.Fprintf(&sb, "With a compatibility score of %d%%, let the card's guidance color how you weigh the strengths and challenges already revealed. %s",
		match.Score, card.Affirmation)

	return sb.String()
}

// BuildNarrationText assembles the spoken narration for a completed reading.
// Control characters are stripped and each segment is capped because the
// speech provider rejects very long or oddly formed inputs.
func BuildNarrationText(cardName, meaning, interpretation, subjectName string) string {
	return fmt.Sprintf("The card you have drawn is %s. %s. Your reading for %s: %s. May this guidance illuminate your path.",
		sanitizeForSpeech(cardName), sanitizeForSpeech(meaning),
		sanitizeForSpeech(subjectName), sanitizeForSpeech(interpretation))
}

const maxSpeechSegment = 1400

func sanitizeForSpeech(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")

	var sb strings.Builder
	sb.Grow(len(collapsed))
	for _, r := range collapsed {
		if r < 0x20 || r == 0x7f {
			continue
		}
		sb.WriteRune(r)
	}

	out := sb.String()
	if len(out) > maxSpeechSegment {
		cut := maxSpeechSegment
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = out[:cut]
	}
	return out
}
