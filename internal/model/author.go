// Package model defines domain entities for the application.
package model

// Author represents a blog author who can log in and compose entries.
// Authors are created once through the first-author bootstrap flow and
// never modified or deleted afterwards.
type Author struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	HashedPassword string `json:"-"`
}
