package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kushtati/TRANSG/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email (stored lower-cased).
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's profile details.
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserAuthWriter defines the narrow mutations used by the login and
// verification flows. The failure-path methods map to a single UPDATE so
// concurrent attempts cannot interleave partial state; the success-path
// methods additionally store the new session's refresh token in the same
// transaction as the user-row update.
type UserAuthWriter interface {
	// IncrementFailedLogin bumps the failure counter and returns the new count.
	IncrementFailedLogin(ctx context.Context, userID string) (int, error)

	// LockUntil sets the lockout expiry after too many failures.
	LockUntil(ctx context.Context, userID string, until time.Time) error

	// RecordLoginWithToken clears the failure counter and lockout, stamps a
	// successful login and persists the session's refresh token, all in one
	// transaction.
	RecordLoginWithToken(ctx context.Context, userID string, lastLoginAt time.Time, token domain.RefreshToken) error

	// SetVerificationCode stores a fresh pending code and its issue time.
	SetVerificationCode(ctx context.Context, userID string, code string, sentAt time.Time) error

	// MarkVerifiedWithToken flips the user to verified and active, clears the
	// pending code and persists the first session's refresh token, all in one
	// transaction. Flipping happens exactly once.
	MarkVerifiedWithToken(ctx context.Context, userID string, verifiedAt time.Time, token domain.RefreshToken) error
}

// UserTransactionSupport defines operations other repositories run inside
// their own transactions.
type UserTransactionSupport interface {
	// SaveUserInTx persists a new user within an already open transaction.
	SaveUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserAuthWriter
	UserTransactionSupport
}
