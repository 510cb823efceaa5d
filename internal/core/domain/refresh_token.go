package domain

import "time"

// RefreshToken is the persisted side of a refresh credential. The credential
// itself is a signed token held by the client; only its SHA-256 hash is stored,
// so a database leak does not yield usable credentials.
type RefreshToken struct {
	TokenID   string     `json:"tokenID"` // Primary Key (e.g., UUID)
	UserID    string     `json:"userID"`  // FK -> User.userID (Not Null)
	TokenHash string     `json:"-"`       // SHA-256 hex of the signed token
	ExpiresAt time.Time  `json:"expiresAt"`
	RevokedAt *time.Time `json:"revokedAt,omitempty"` // Set once on logout, never cleared
	CreatedAt time.Time  `json:"createdAt"`
}

// IsLive reports whether the token can still mint access credentials at now.
func (t RefreshToken) IsLive(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

// TokenPair is a freshly minted credential pair with the expiry of each half.
type TokenPair struct {
	AccessToken      string    `json:"accessToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}
