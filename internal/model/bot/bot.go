package bot

import "time"

// AgeCategory gates how permissive a bot's persona prompt is.
type AgeCategory string

const (
	AgeSFW  AgeCategory = "SFW"
	AgeNSFW AgeCategory = "NSFW"
)

// Tone selects the conversational style clause and sampling temperature.
type Tone string

const (
	ToneNormal   Tone = "Normal"
	ToneRomantic Tone = "Romantic"
	ToneFlirty   Tone = "Flirty"
	ToneSpicy    Tone = "Spicy"
)

// Bot is a user-authored chatbot persona. Updates replace the whole value
// by id; there is no partial patch.
type Bot struct {
	ID          string      `json:"id"`
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description" validate:"required"`
	AgeCategory AgeCategory `json:"ageCategory" validate:"required,oneof=SFW NSFW"`
	ChatTone    Tone        `json:"chatTone" validate:"required,oneof=Normal Romantic Flirty Spicy"`
	Image       *string     `json:"image,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
