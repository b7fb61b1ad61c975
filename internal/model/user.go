package model

import "time"

// UserSummary is the minimal identity of a GitHub account as returned by the
// search endpoint.
type UserSummary struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	Type      string `json:"type,omitempty"` // "User" or "Organization"
}

// UserDetail is a UserSummary plus the extended profile fields from
// GET /users/{login}.
//
// Email is empty when the user has hidden it in their GitHub settings.
type UserDetail struct {
	UserSummary

	Name        string    `json:"name"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Email       string    `json:"email"`
	Bio         string    `json:"bio"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
	PublicRepos int       `json:"public_repos"`
}
