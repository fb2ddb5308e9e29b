package model

import "time"

// Dream is a persisted visualization record owned by a single user.
type Dream struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Style       string    `json:"style"`
	Mood        string    `json:"mood"`
	Elements    []string  `json:"elements"`
	IsFavorite  bool      `json:"is_favorite"`
	CreatedAt   time.Time `json:"created_at"`
}

// GenerateDreamRequest is the ephemeral payload for the generate endpoint.
// It is validated at the boundary and never stored verbatim.
type GenerateDreamRequest struct {
	Description string `json:"description"`
	Style       string `json:"style"`
	Mood        string `json:"mood"`
}

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}
