package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kushtati/TRANSG/internal/apperrors"
	"github.com/kushtati/TRANSG/internal/core/domain"
	portsrepo "github.com/kushtati/TRANSG/internal/core/ports/repositories"
	"github.com/kushtati/TRANSG/internal/models"
	"github.com/kushtati/TRANSG/internal/utils/mapping"
)

type PgxRefreshTokenRepository struct {
	BaseRepository
}

func newPgxRefreshTokenRepository(pool *pgxpool.Pool) portsrepo.RefreshTokenRepositoryFacade {
	return &PgxRefreshTokenRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxRefreshTokenRepository implements portsrepo.RefreshTokenRepositoryFacade
var _ portsrepo.RefreshTokenRepositoryFacade = (*PgxRefreshTokenRepository)(nil)

// SaveRefreshTokenInTx persists a token within an already open transaction,
// so the caller's state change and the stored hash commit together.
func (r *PgxRefreshTokenRepository) SaveRefreshTokenInTx(ctx context.Context, tx pgx.Tx, token domain.RefreshToken) error {
	modelToken := mapping.ToModelRefreshToken(token)
	query := `
        INSERT INTO refresh_tokens (token_id, user_id, token_hash, expires_at, revoked_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := tx.Exec(ctx, query,
		modelToken.TokenID,
		modelToken.UserID,
		modelToken.TokenHash,
		modelToken.ExpiresAt,
		modelToken.RevokedAt,
		modelToken.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

func (r *PgxRefreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	query := `
		SELECT token_id, user_id, token_hash, expires_at, revoked_at, created_at
		FROM refresh_tokens
		WHERE token_hash = $1;
	`
	var m models.RefreshToken
	err := r.Pool.QueryRow(ctx, query, tokenHash).Scan(
		&m.TokenID,
		&m.UserID,
		&m.TokenHash,
		&m.ExpiresAt,
		&m.RevokedAt,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}

	domainToken := mapping.ToDomainRefreshToken(m)
	return &domainToken, nil
}

// RevokeAllForUser stamps revoked_at on every live token of the user. The
// revoked_at IS NULL guard keeps the stamp monotonic.
func (r *PgxRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string, revokedAt time.Time) (int64, error) {
	query := `
        UPDATE refresh_tokens
        SET revoked_at = $1
        WHERE user_id = $2 AND revoked_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, revokedAt, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
