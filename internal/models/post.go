package models

import "time"

// Post is a published article with an uploaded thumbnail image.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"` // uploaded filename, served from /uploads
	Creator     string    `json:"creator"`   // owning user id
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
