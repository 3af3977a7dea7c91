// Package tarot holds the static card deck and the image prompt templates
// used by the reading pipeline.
package tarot

// Card is one symbolic card in the deck. All fields are static descriptive
// data; generated assets reference them but never replace them.
type Card struct {
	Name        string `json:"name"`
	Mantra      string `json:"mantra"`
	Essence     string `json:"essence"`
	Meaning     string `json:"meaning"`
	Upright     string `json:"upright"`
	Affirmation string `json:"affirmation"`
	Image       string `json:"image"`     // static fallback asset
	Animation   string `json:"animation"` // static animated asset
}

// Deck is the full card set, in display order.
var Deck = []Card{
	{
		Name:        "Cow Spirit",
		Mantra:      "The miracles are endless.",
		Essence:     "Abundance, gratitude, and grounded blessings.",
		Meaning:     "Cow Spirit reminds you that the universe is generous beyond measure. What you nourish with love and patience will multiply — in work, relationships, or creative pursuits. Abundance isn't a sudden windfall but a steady flow when you trust life's rhythm.",
		Upright:     "Prosperity, comfort, generosity, gratitude",
		Affirmation: "I am supported by endless miracles.",
		Image:       "/tarot/cards/cow-spirit-static.jpg",
		Animation:   "/tarot/cards/cow-spirit-animated.mp4",
	},
	{
		Name:        "Emperor Spirit",
		Mantra:      "Authority and strength.",
		Essence:     "Leadership, structure, and mastery of one's domain.",
		Meaning:     "Emperor Spirit calls you to step into your authority. Build the systems, make the tough calls, and lead with clarity. True strength is calm, not forceful — it creates order out of chaos and stability for others to grow.",
		Upright:     "Leadership, boundaries, control, responsibility",
		Affirmation: "I lead with wisdom and unwavering purpose.",
		Image:       "/tarot/cards/emperor-spirit-static.jpg",
		Animation:   "/tarot/cards/emperor-spirit-animated.mp4",
	},
	{
		Name:        "Empress Spirit",
		Mantra:      "Abundance & creation flourish.",
		Essence:     "Fertility, creativity, sensual joy, and growth.",
		Meaning:     "The Empress Spirit invites you to create — not just things, but experiences, beauty, and love. Nurture your ideas like a garden and watch them bloom. This is the card of embodiment and flow: a reminder to receive as much as you give.",
		Upright:     "Creativity, nurturing, pleasure, abundance",
		Affirmation: "I bloom effortlessly in the rhythm of life.",
		Image:       "/tarot/cards/empress-spirit-static.jpg",
		Animation:   "/tarot/cards/empress-spirit-animated.mp4",
	},
	{
		Name:        "Hierophant Spirit",
		Mantra:      "Tradition guides wisdom.",
		Essence:     "Teaching, mentorship, sacred systems, spiritual discipline.",
		Meaning:     "Hierophant Spirit reminds you that wisdom often lives in structure — in rituals, mentors, or traditions that stand the test of time. Learn before you innovate. Respect lineage while shaping your own truth.",
		Upright:     "Guidance, learning, spiritual order, community",
		Affirmation: "I honor the wisdom that came before me.",
		Image:       "/tarot/cards/hierophant-spirit-static.jpg",
		Animation:   "/tarot/cards/hierophant-spirit-animated.mp4",
	},
	{
		Name:        "High Priestess Spirit",
		Mantra:      "Intuition holds the cosmic keys.",
		Essence:     "Mystery, intuition, inner knowing, unseen realms.",
		Meaning:     "The High Priestess Spirit invites you to trust your intuition, even when logic resists. The answers are within — quiet your mind and listen. This card asks you to be still before acting, to move from deep awareness.",
		Upright:     "Intuition, mystery, divine timing, hidden truths",
		Affirmation: "I trust the wisdom of my inner voice.",
		Image:       "/tarot/cards/high-priestess-spirit-static.jpg",
		Animation:   "/tarot/cards/high-priestess-spirit-animated.mp4",
	},
	{
		Name:        "Horse Spirit",
		Mantra:      "Freedom is yours.",
		Essence:     "Movement, independence, power in motion.",
		Meaning:     "Horse Spirit gallops in to remind you that freedom is both a choice and a responsibility. Break free from self-imposed limits — the open field is yours to run. Trust your direction, and don't let fear tether your wild heart.",
		Upright:     "Freedom, confidence, travel, progress",
		Affirmation: "I move boldly toward my own horizon.",
		Image:       "/tarot/cards/horse-spirit-static.jpg",
		Animation:   "/tarot/cards/horse-spirit-animated.mp4",
	},
	{
		Name:        "Strength Spirit",
		Mantra:      "Inner power transforms all.",
		Essence:     "Courage, compassion, resilience, and quiet power.",
		Meaning:     "Strength Spirit teaches that true power comes from grace under pressure. When you meet challenges with patience and love — toward yourself and others — you transform them into growth.",
		Upright:     "Inner strength, compassion, courage, calm resilience",
		Affirmation: "My calm heart is stronger than any storm.",
		Image:       "/tarot/cards/strength-spirit-static.jpg",
		Animation:   "/tarot/cards/strength-spirit-animated.mp4",
	},
	{
		Name:        "Moon Spirit",
		Mantra:      "Trust the cycles of change.",
		Essence:     "Intuition, mystery, and transformation.",
		Meaning:     "Moon Spirit guides you through transitions and uncertainty. Trust the natural cycles of growth and release. Embrace the unknown with faith in your inner wisdom.",
		Upright:     "Intuition, cycles, mystery, reflection",
		Affirmation: "I trust the wisdom of natural rhythms.",
		Image:       "/tarot/cards/moon-spirit-static.jpg",
		Animation:   "/tarot/cards/moon-spirit-animated.mp4",
	},
	{
		Name:        "Sun Spirit",
		Mantra:      "Radiance illuminates your path.",
		Essence:     "Joy, vitality, and enlightenment.",
		Meaning:     "Sun Spirit brings light to all corners of your life. Embrace optimism and let your authentic self shine. This is a time of clarity and positive energy.",
		Upright:     "Joy, vitality, clarity, optimism",
		Affirmation: "I radiate light and warmth wherever I go.",
		Image:       "/tarot/cards/sun-spirit-static.jpg",
		Animation:   "/tarot/cards/sun-spirit-animated.mp4",
	},
	{
		Name:        "Star Spirit",
		Mantra:      "Hope guides through darkness.",
		Essence:     "Hope, inspiration, and divine guidance.",
		Meaning:     "Star Spirit appears when you need hope most. Trust that guidance is available even in the darkest times. Your dreams are within reach.",
		Upright:     "Hope, inspiration, guidance, dreams",
		Affirmation: "I am guided by the light of possibility.",
		Image:       "/tarot/cards/star-spirit-static.jpg",
		Animation:   "/tarot/cards/star-spirit-animated.mp4",
	},
	{
		Name:        "Phoenix Spirit",
		Mantra:      "Rise from transformation.",
		Essence:     "Rebirth, renewal, and transformation.",
		Meaning:     "Phoenix Spirit signals a time of profound change and renewal. What once was must end for something new to begin. Trust the process of transformation.",
		Upright:     "Transformation, rebirth, renewal, rising",
		Affirmation: "I rise stronger from every challenge.",
		Image:       "/tarot/cards/phoenix-spirit-static.jpg",
		Animation:   "/tarot/cards/phoenix-spirit-animated.mp4",
	},
	{
		Name:        "Wolf Spirit",
		Mantra:      "Pack wisdom strengthens you.",
		Essence:     "Loyalty, instinct, and community.",
		Meaning:     "Wolf Spirit reminds you of the power of community and intuition. Trust your instincts while valuing the support of your pack. Balance independence with connection.",
		Upright:     "Loyalty, instinct, community, independence",
		Affirmation: "I trust my instincts and cooperate with my pack.",
		Image:       "/tarot/cards/wolf-spirit-static.jpg",
		Animation:   "/tarot/cards/wolf-spirit-animated.mp4",
	},
}

// Find returns the card with the given name, or nil if the name is not in
// the deck.
func Find(name string) *Card {
	for i := range Deck {
		if Deck[i].Name == name {
			return &Deck[i]
		}
	}
	return nil
}
