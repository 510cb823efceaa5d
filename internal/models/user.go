package models

import "time"

// User represents a row of the users table. Lockout counters and the pending
// verification code live here alongside the credentials.
type User struct {
	UserID              string     `db:"user_id"`
	CompanyID           string     `db:"company_id"`
	Name                string     `db:"name"`
	Email               string     `db:"email"`
	PasswordHash        string     `db:"password_hash"`
	Role                string     `db:"role"`
	Verified            bool       `db:"verified"`
	IsActive            bool       `db:"is_active"`
	VerificationCode    *string    `db:"verification_code"`
	VerificationSentAt  *time.Time `db:"verification_sent_at"`
	FailedLoginAttempts int        `db:"failed_login_attempts"`
	LockedUntil         *time.Time `db:"locked_until"`
	LastLoginAt         *time.Time `db:"last_login_at"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
