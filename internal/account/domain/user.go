package domain

import "time"

// User is the single persisted account record. RefreshToken holds the one
// currently valid refresh token for the account, or empty when no session is
// active.
type User struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	Avatar       string
	CoverImage   string
	PasswordHash string
	RefreshToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
