package bazi

import "fmt"

// ElementTraits describes the working characteristics associated with one
// element. Used for prompt context and for deterministic fallback text when
// no text provider is available.
type ElementTraits struct {
	Characteristics []string `json:"characteristics"`
	Personality     []string `json:"personality"`
	WorkStyle       []string `json:"work_style"`
	Challenges      []string `json:"challenges"`
}

var elementTraits = map[Element]ElementTraits{
	Wood: {
		Characteristics: []string{"growth-oriented", "creative", "flexible", "visionary"},
		Personality:     []string{"innovative", "idealistic", "compassionate", "determined"},
		WorkStyle:       []string{"collaborative", "mentoring", "long-term planning", "team building"},
		Challenges:      []string{"can be overly idealistic", "may struggle with rigid structures", "tends to take on too much"},
	},
	Fire: {
		Characteristics: []string{"energetic", "passionate", "inspiring", "dynamic"},
		Personality:     []string{"enthusiastic", "charismatic", "spontaneous", "optimistic"},
		WorkStyle:       []string{"motivating", "presentation-focused", "quick decisions", "inspiring others"},
		Challenges:      []string{"can be impulsive", "may lack patience for details", "can burn out quickly"},
	},
	Earth: {
		Characteristics: []string{"stable", "practical", "reliable", "grounded"},
		Personality:     []string{"patient", "methodical", "loyal", "consistent"},
		WorkStyle:       []string{"systematic", "detail-oriented", "process improvement", "steady progress"},
		Challenges:      []string{"can be resistant to change", "may move too slowly", "tends to overthink decisions"},
	},
	Metal: {
		Characteristics: []string{"precise", "analytical", "structured", "efficient"},
		Personality:     []string{"disciplined", "focused", "perfectionist", "logical"},
		WorkStyle:       []string{"quality-focused", "systematic", "efficiency-driven", "standards-oriented"},
		Challenges:      []string{"can be overly critical", "may lack flexibility", "tends to be perfectionist"},
	},
	Water: {
		Characteristics: []string{"adaptable", "intuitive", "flowing", "resourceful"},
		Personality:     []string{"flexible", "empathetic", "strategic", "persistent"},
		WorkStyle:       []string{"adaptive", "research-focused", "strategic thinking", "relationship building"},
		Challenges:      []string{"can be indecisive", "may avoid confrontation", "tends to overthink"},
	},
}

// TraitsFor returns the working characteristics for an element. Unknown
// elements fall back to Earth, the most neutral profile.
func TraitsFor(e Element) ElementTraits {
	if t, ok := elementTraits[e]; ok {
		return t
	}
	return elementTraits[Earth]
}

// DominanceDescription summarizes what a yin/yang dominance classification
// means for how the subject works.
func DominanceDescription(dominance string) string {
	switch dominance {
	case string(Yin):
		return "A Yin-dominant energy brings introspection, intuition, and a collaborative approach to work, with a preference for supportive roles."
	case string(Yang):
		return "A Yang-dominant energy brings assertiveness, leadership qualities, and a results-driven approach, with a preference for direct action."
	default:
		return "A well-balanced yin-yang energy adapts between supportive and leadership roles as team dynamics require."
	}
}

// PillarInsight describes what one of the four pillars represents in a
// workplace reading.
func PillarInsight(pillar string) string {
	switch pillar {
	case "year":
		return "The Year Pillar represents public image and reputation, influencing career trajectory and social standing."
	case "month":
		return "The Month Pillar represents authority figures and the relationship with management and hierarchy."
	case "day":
		return "The Day Pillar represents the core self and is the most important pillar for understanding work style and decision-making."
	case "hour":
		return "The Hour Pillar represents creativity and self-expression, influencing communication style."
	}
	return ""
}

// FavorableDescription renders a one-line summary of a favorable element set.
func FavorableDescription(favorable []Element) string {
	if len(favorable) == 0 {
		return "No specific favorable elements identified."
	}
	return fmt.Sprintf("Favorable elements are %s; these support natural strengths.", joinElements(favorable))
}

// UnfavorableDescription renders a one-line summary of an unfavorable element set.
func UnfavorableDescription(unfavorable []Element) string {
	if len(unfavorable) == 0 {
		return "No specific unfavorable elements identified."
	}
	return fmt.Sprintf("Elements to be mindful of are %s; these may require more effort to work with.", joinElements(unfavorable))
}

func joinElements(elems []Element) string {
	out := ""
	for i, e := range elems {
		if i > 0 {
			out += " and "
		}
		out += string(e)
	}
	return out
}
