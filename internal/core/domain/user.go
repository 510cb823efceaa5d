package domain

import "time"

// UserRole defines the possible roles a user can have within their company.
type UserRole string

const (
	RoleDirector   UserRole = "DIRECTOR"   // Full control, including user administration
	RoleAccountant UserRole = "ACCOUNTANT" // Ledger writes plus everything below
	RoleAgent      UserRole = "AGENT"      // Shipment operations plus read access
	RoleClient     UserRole = "CLIENT"     // Read-only access
)

// roleRank orders roles by privilege; higher covers lower.
var roleRank = map[UserRole]int{
	RoleClient:     1,
	RoleAgent:      2,
	RoleAccountant: 3,
	RoleDirector:   4,
}

// IsValid reports whether the role is one of the known values.
func (r UserRole) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether the role carries at least the privileges of min.
func (r UserRole) AtLeast(min UserRole) bool {
	return roleRank[r] >= roleRank[min]
}

// User represents a member of a company.
type User struct {
	UserID              string     `json:"userID"`    // Primary Key (e.g., UUID)
	CompanyID           string     `json:"companyID"` // FK -> Company.companyID (Not Null)
	Name                string     `json:"name"`
	Email               string     `json:"email"` // Unique, stored lower-cased and trimmed
	PasswordHash        string     `json:"-"`     // bcrypt hash, never serialized
	Role                UserRole   `json:"role"`
	Verified            bool       `json:"verified"` // Email verification completed
	IsActive            bool       `json:"isActive"` // Disabled users cannot authenticate
	VerificationCode    *string    `json:"-"`        // Pending 6-digit code, nil once verified
	VerificationSentAt  *time.Time `json:"-"`        // When the pending code was issued
	FailedLoginAttempts int        `json:"-"`        // Consecutive failures since last success
	LockedUntil         *time.Time `json:"-"`        // Lockout expiry, nil when not locked
	LastLoginAt         *time.Time `json:"lastLoginAt,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// Identity is the immutable authenticated principal attached to a request after
// the credential has been validated and the user re-fetched.
type Identity struct {
	UserID    string   `json:"userID"`
	CompanyID string   `json:"companyID"`
	Role      UserRole `json:"role"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
}
