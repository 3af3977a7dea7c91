package tarot

import "strings"

// PromptSpec is the positive and negative prompt pair sent to the image
// provider for one card. Kept concise for fast generation.
type PromptSpec struct {
	Prompt   string
	Negative string
}

var baseStyle = strings.Join([]string{
	"tarot card, mystical, ethereal lighting, intricate linework, golden accents",
	"high detail, volumetric light, cinematic, soft bokeh",
	"hand-painted look, textured paper, rich color grading",
}, ", ")

var baseNegative = strings.Join([]string{
	"lowres, blurry, noisy, pixelated, jpeg artifacts, watermark, signature",
	"extra limbs, deformed anatomy, text, logo, frame, border",
	"nsfw, gore, violence, disfigured, mutated, duplicate subject",
}, ", ")

var cardConcepts = map[string]string{
	"Cow Spirit":            "benevolent sacred cow in a meadow at golden hour, symbols of abundance and flow",
	"Emperor Spirit":        "regal figure embodying structure and leadership, throne, geometric motifs, steady gaze",
	"Empress Spirit":        "nurturing sovereign in a blooming garden, fertility, creation, flowing fabrics",
	"Hierophant Spirit":     "wise mentor in sacred temple, candles, ritual objects, tradition and guidance",
	"High Priestess Spirit": "mystic oracle, crescent moon, veils, hidden knowledge, serene expression",
	"Horse Spirit":          "majestic horse in motion, wind-swept mane, open plains, freedom and momentum",
	"Strength Spirit":       "gentle strength, calm figure with guardian animal, compassion and courage",
	"Moon Spirit":           "luminous moonlit scene, tides and cycles, dreamy atmosphere, intuition",
	"Sun Spirit":            "radiant sun, warmth and clarity, joyful motifs, illumination and vitality",
	"Star Spirit":           "cosmic starlight, guidance and hope, celestial symbols, tranquil night sky",
	"Phoenix Spirit":        "phoenix rebirth in luminous embers, transformation, rising energy",
	"Wolf Spirit":           "wise wolf, night forest, pack and community, instinct and balance",
}

// PromptFor builds the image prompt for a card. Cards without a registered
// concept get a generic archetype composition.
func PromptFor(cardName string) PromptSpec {
	concept, ok := cardConcepts[cardName]
	if !ok {
		concept = "mystical archetype in tarot card composition"
	}
	return PromptSpec{
		Prompt:   concept + ", " + baseStyle,
		Negative: baseNegative,
	}
}
