package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kushtati/TRANSG/internal/core/domain"
)

// RefreshTokenReader defines read operations for refresh token data
type RefreshTokenReader interface {
	// FindRefreshTokenByHash retrieves a stored token by the SHA-256 hash of
	// the presented credential.
	FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
}

// RefreshTokenWriter defines write operations for refresh token data
type RefreshTokenWriter interface {
	// SaveRefreshTokenInTx persists a freshly issued token within an already
	// open transaction. The user repository runs it inside its login and
	// verification units so session state and credential storage commit
	// together.
	SaveRefreshTokenInTx(ctx context.Context, tx pgx.Tx, token domain.RefreshToken) error

	// RevokeAllForUser stamps revoked_at on every live token of the user and
	// returns how many were revoked. Revocation is monotonic: the stamp is
	// never cleared.
	RevokeAllForUser(ctx context.Context, userID string, revokedAt time.Time) (int64, error)
}

// RefreshTokenRepositoryFacade combines all refresh-token repository interfaces
type RefreshTokenRepositoryFacade interface {
	RefreshTokenReader
	RefreshTokenWriter
}
