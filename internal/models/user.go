package models

import "time"

// User is a registered author. The password hash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"` // stored lowercase
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar,omitempty"` // uploaded filename, served from /uploads
	Posts        int       `json:"posts"`            // denormalized post count
	CreatedAt    time.Time `json:"created_at"`
}
