// Package post holds the hydrated post record returned by search.
package post

import "time"

// Summary is a post as it appears in a search result page: the listing
// fields only, never the full content body.
type Summary struct {
	ID           int64     `json:"id"`
	UserUsername string    `json:"user_username"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
