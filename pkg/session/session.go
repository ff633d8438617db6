package session

import "time"

// Session is an issued token bound to a user.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}
