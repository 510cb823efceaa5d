package models

import "time"

// RefreshToken represents a row of the refresh_tokens table. revoked_at is set
// once on logout and never cleared.
type RefreshToken struct {
	TokenID   string     `db:"token_id"`
	UserID    string     `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
	CreatedAt time.Time  `db:"created_at"`
}
