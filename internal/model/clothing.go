package model

import "time"

// Clothing represents a single item in a user's digital closet.
type Clothing struct {
	ID                  int64      `json:"id"`
	UserID              int64      `json:"user_id"`
	Name                string     `json:"name"`
	Image               string     `json:"image,omitempty"`
	PhotoMIME           string     `json:"photo_mime,omitempty"`
	Material            string     `json:"material"`
	Category            string     `json:"category"`
	Color               string     `json:"color,omitempty"`
	Brand               string     `json:"brand,omitempty"`
	PurchaseDate        *time.Time `json:"purchase_date,omitempty"`
	TimesWorn           int        `json:"times_worn"`
	SustainabilityScore int        `json:"sustainability_score"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// UnknownAttribute is stored when material or category is not provided.
const UnknownAttribute = "N/A"

// WearRecord is one entry in an item's wear history.
type WearRecord struct {
	ID         int64     `json:"id"`
	ClothingID int64     `json:"clothing_id"`
	WornAt     time.Time `json:"worn_at"`
	ScoreAfter int       `json:"score_after"`
}
