package store

import "time"

// Session represents an active authenticated session held in memory.
type Session struct {
	ID        string    `json:"id"` // token id (jti)
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
