// Package prompts builds the text prompts sent to the synthesis providers.
package prompts

import (
	"fmt"
	"strings"

	"github.com/harmonyhq/harmony-engine/pkg/bazi"
	"github.com/harmonyhq/harmony-engine/pkg/models"
)

// CompatibilitySystemMessage is the system message for compatibility synthesis.
const CompatibilitySystemMessage = "You are an expert in BaZi astrology and workplace compatibility analysis. Always respond with valid JSON."

// SubjectContext bundles a subject with its computed profile for prompting.
type SubjectContext struct {
	Subject *models.Subject
	Profile *bazi.Profile
}

// roleLabels returns the narrative labels for the two subjects given the
// match kind.
func roleLabels(kind models.MatchKind) (string, string) {
	if kind == models.MatchOrganization {
		return "Individual", "Organization"
	}
	return "Manager", "Candidate"
}

// BuildCompatibilityPrompt renders the full analysis prompt. The computed
// profile figures are spelled out so the model reasons from the same numbers
// that get persisted alongside its narrative.
func BuildCompatibilityPrompt(a, b SubjectContext, kind models.MatchKind) string {
	labelA, labelB := roleLabels(kind)

	var sb strings.Builder

	if kind == models.MatchOrganization {
		sb.WriteString("You are an expert in BaZi (Chinese astrology) and organizational alignment.\n\n")
		fmt.Fprintf(&sb, "Assess alignment between an individual and an organization based on their birth data and BaZi calculations:\n\n")
	} else {
		sb.WriteString("You are an expert in BaZi (Chinese astrology) and workplace compatibility analysis.\n\n")
		fmt.Fprintf(&sb, "Analyze the compatibility between a manager and a candidate based on their birth data and BaZi calculations:\n\n")
	}

	writeSubjectBlock(&sb, labelA, a)
	sb.WriteString("\n")
	writeSubjectBlock(&sb, labelB, b)

	fmt.Fprintf(&sb, `
Provide a comprehensive compatibility analysis including:

1. Overall compatibility score (0-100)
2. Four category ratings (0-100 each): Communication, Decision Style, Teamwork, Leadership Harmony
3. Key strengths in their working relationship (3-5 points)
4. Potential challenges to be aware of (3-5 points)
5. A narrative summary (2-3 paragraphs)
6. Yin-Yang balance analysis for both parties
7. Five Elements analysis (Wood, Fire, Earth, Metal, Water)
8. Detailed recommendations for the %s including:
   - Best communication style (do's and don'ts)
   - Most effective ways to work together
   - Motivators and demotivators
   - Interview focus areas and suggested questions

Return your analysis in JSON format with this exact structure:
{
  "score": <overall score 0-100>,
  "overall_compatibility": "<detailed 2-3 paragraph description>",
  "categories": {
    "communication": <score 0-100>,
    "decision_style": <score 0-100>,
    "teamwork": <score 0-100>,
    "leadership_harmony": <score 0-100>
  },
  "strengths": ["<strength 1>", "<strength 2>", ...],
  "challenges": ["<challenge 1>", "<challenge 2>", ...],
  "summary": "<2-3 sentence executive summary>",
  "recommendations": {
    "communication_style": {
      "do": ["<do 1>", "<do 2>", "<do 3>"],
      "dont": ["<dont 1>", "<dont 2>", "<dont 3>"]
    },
    "effective_work_approach": ["<approach 1>", "<approach 2>", "<approach 3>"],
    "motivators": ["<motivator 1>", "<motivator 2>", "<motivator 3>"],
    "demotivators": ["<demotivator 1>", "<demotivator 2>", "<demotivator 3>"],
    "interview_focus": {
      "areas": ["<area 1>", "<area 2>", "<area 3>"],
      "suggested_questions": ["<question 1>", "<question 2>", "<question 3>"]
    }
  },
  "yin_yang_balance": {
    "subject_a": "<Yin or Yang dominant>",
    "subject_b": "<Yin or Yang dominant>",
    "compatibility_note": "<brief note on how their energies interact>"
  },
  "five_elements": {
    "subject_a_primary": "<primary element>",
    "subject_b_primary": "<primary element>",
    "interaction": "<how these elements interact in a work context>"
  }
}

Only output valid JSON with the exact fields and types specified.`, strings.ToLower(labelA))

	return sb.String()
}

func writeSubjectBlock(sb *strings.Builder, label string, sc SubjectContext) {
	p := sc.Profile
	s := sc.Subject

	dateLabel := "Date of Birth"
	if s.Kind == models.SubjectOrganization {
		dateLabel = "Founding Date"
	}

	fmt.Fprintf(sb, "%s:\n", label)
	fmt.Fprintf(sb, "- Name: %s\n", s.Name)
	fmt.Fprintf(sb, "- %s: %s\n", dateLabel, s.BirthDate)
	if s.BirthTime != "" {
		fmt.Fprintf(sb, "- Birth Time: %s\n", s.BirthTime)
	}
	fmt.Fprintf(sb, "- Birth City: %s\n", s.BirthCity)
	fmt.Fprintf(sb, "- Timezone: %s\n", s.Timezone)
	fmt.Fprintf(sb, "- BaZi Analysis:\n")
	fmt.Fprintf(sb, "  - Yin-Yang: %d%% Yin, %d%% Yang (%s dominant)\n",
		p.Balance.YinPercent, p.Balance.YangPercent, p.Balance.Dominance)
	fmt.Fprintf(sb, "  - Day Master: %s %s\n", p.DayMaster.Element, p.DayMaster.Polarity)
	fmt.Fprintf(sb, "  - Five Elements: Wood %d%%, Fire %d%%, Earth %d%%, Metal %d%%, Water %d%%\n",
		p.Elements.Wood, p.Elements.Fire, p.Elements.Earth, p.Elements.Metal, p.Elements.Water)

	traits := bazi.TraitsFor(p.DayMaster.Element)
	fmt.Fprintf(sb, "  - Day Master Traits: %s\n", strings.Join(traits.Characteristics, ", "))
	fmt.Fprintf(sb, "  - Work Style: %s\n", strings.Join(traits.WorkStyle, ", "))
	fmt.Fprintf(sb, "  - Energy: %s\n", bazi.DominanceDescription(p.Balance.Dominance))
	fmt.Fprintf(sb, "  - %s\n", bazi.FavorableDescription(p.FavorableElements))
	fmt.Fprintf(sb, "  - %s\n", bazi.UnfavorableDescription(p.UnfavorableElements))
}
