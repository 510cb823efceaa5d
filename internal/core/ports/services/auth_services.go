package services

import (
	"context"
	"time"

	"github.com/kushtati/TRANSG/internal/core/domain"
	"github.com/kushtati/TRANSG/internal/dto"
)

// TokenSvcFacade defines the interface for credential management.
type TokenSvcFacade interface {
	// MintPair mints an access and a refresh credential for the user and
	// returns the refresh-token row to store. It persists nothing; the caller
	// saves the row in the same transaction as its own state change.
	MintPair(ctx context.Context, user domain.User) (*domain.TokenPair, domain.RefreshToken, error)

	// RefreshAccess validates a refresh credential against its stored,
	// unrevoked hash and mints a new access credential. The refresh
	// credential itself is not rotated. Every failure surfaces as
	// apperrors.ErrUnauthorized.
	RefreshAccess(ctx context.Context, refreshToken string) (string, time.Time, error)

	// RevokeAll revokes every live refresh token of the user.
	RevokeAll(ctx context.Context, userID string) error
}

// AuthSvcFacade defines the interface for registration, verification and login.
type AuthSvcFacade interface {
	// Register creates a company and its DIRECTOR user and sends a
	// verification code. Re-registering an unverified email refreshes the
	// code instead of failing, so the response never discloses whether the
	// email was known.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// VerifyEmail confirms a pending code, activates the user and issues the
	// first credential pair.
	VerifyEmail(ctx context.Context, email string, code string) (*domain.User, *domain.TokenPair, error)

	// ResendCode re-issues a verification code. It reports success whether or
	// not the email maps to a pending account.
	ResendCode(ctx context.Context, email string) error

	// Login authenticates an email/password pair, enforcing lockout and
	// verification gates, and issues a credential pair.
	Login(ctx context.Context, email string, password string) (*domain.User, *domain.TokenPair, error)

	// Logout revokes all refresh credentials of the user.
	Logout(ctx context.Context, userID string) error
}
