package models

import (
	"time"

	"github.com/google/uuid"
)

// Reading is a card drawn against a match, with its generated
// interpretation and optional media. At most one reading per (match, card)
// pair exists; re-selecting the same card returns the stored row.
type Reading struct {
	ID             uuid.UUID `json:"id"`
	MatchID        uuid.UUID `json:"match_id"`
	CardName       string    `json:"card_name"`
	Meaning        string    `json:"meaning"`
	Interpretation string    `json:"interpretation"`
	ImageURL       string    `json:"image_url"`
	AudioData      []byte    `json:"-"`
	AudioMime      string    `json:"audio_mime,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// HasAudio reports whether narration has been synthesized and stored.
func (r *Reading) HasAudio() bool {
	return len(r.AudioData) > 0
}
