package domain

import "time"

// User represents a registered lounge user
type User struct {
	ID           int64
	Username     string
	PasswordHash string

	// Optional profile data, filled in during booking
	DisplayName *string
	DiscordID   *string

	IsAdmin bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Name returns the best available display name for notifications and lists
func (u *User) Name() string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	return u.Username
}
