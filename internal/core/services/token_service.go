package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kushtati/TRANSG/internal/apperrors"
	"github.com/kushtati/TRANSG/internal/core/domain"
	portsrepo "github.com/kushtati/TRANSG/internal/core/ports/repositories"
	portssvc "github.com/kushtati/TRANSG/internal/core/ports/services"
	"github.com/kushtati/TRANSG/internal/platform/config"
	"github.com/kushtati/TRANSG/internal/utils"
)

// tokenService implements TokenSvcFacade. Access tokens are stateless JWTs;
// refresh tokens are JWTs signed with a separate secret and additionally
// persisted by hash so logout can revoke them.
type tokenService struct {
	BaseService
	cfg       *config.Config
	userSvc   portssvc.UserSvcFacade
	tokenRepo portsrepo.RefreshTokenRepositoryFacade
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userSvc portssvc.UserSvcFacade, tokenRepo portsrepo.RefreshTokenRepositoryFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:       cfg,
		userSvc:   userSvc,
		tokenRepo: tokenRepo,
	}
}

// MintPair mints both credentials and returns the refresh-token row to store.
// It deliberately persists nothing: the auth flow saves the row in the same
// transaction as the login or verification update, so a stored credential
// never outlives a failed state change. An unstored refresh token is inert
// because RefreshAccess requires the hash to be on record.
func (s *tokenService) MintPair(ctx context.Context, user domain.User) (*domain.TokenPair, domain.RefreshToken, error) {
	now := time.Now()
	accessExpiresAt := now.Add(s.cfg.JWTExpiryDuration)
	refreshExpiresAt := now.Add(s.cfg.RefreshTokenExpiryDuration)

	accessToken, err := utils.GenerateAccessJWT(user, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, domain.RefreshToken{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshJWT(user.UserID, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, domain.RefreshToken{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	stored := domain.RefreshToken{
		TokenID:   uuid.NewString(),
		UserID:    user.UserID,
		TokenHash: utils.HashRefreshToken(refreshToken),
		ExpiresAt: refreshExpiresAt,
		CreatedAt: now,
	}

	pair := &domain.TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiresAt,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiresAt,
	}
	return pair, stored, nil
}

// RefreshAccess validates the refresh credential end to end and mints a new
// access token. The refresh token itself is not rotated. Every failure mode
// collapses into ErrUnauthorized so callers cannot probe token state.
func (s *tokenService) RefreshAccess(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := utils.ParseRefreshJWT(refreshToken, s.cfg.RefreshTokenSecret)
	if err != nil {
		s.LogDebug(ctx, "refresh token failed signature or expiry check", slog.String("error", err.Error()))
		return "", time.Time{}, apperrors.ErrUnauthorized
	}

	stored, err := s.tokenRepo.FindRefreshTokenByHash(ctx, utils.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", time.Time{}, apperrors.ErrUnauthorized
		}
		return "", time.Time{}, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	now := time.Now()
	if !stored.IsLive(now) {
		return "", time.Time{}, apperrors.ErrUnauthorized
	}
	if stored.UserID != claims.Subject {
		// A signed token presented against someone else's stored hash.
		s.LogWarn(ctx, "refresh token subject mismatch", slog.String("stored_user_id", stored.UserID))
		return "", time.Time{}, apperrors.ErrUnauthorized
	}

	user, err := s.userSvc.GetUserByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", time.Time{}, apperrors.ErrUnauthorized
		}
		return "", time.Time{}, fmt.Errorf("failed to load user for refresh: %w", err)
	}
	if !user.Verified || !user.IsActive {
		return "", time.Time{}, apperrors.ErrUnauthorized
	}

	expiresAt := now.Add(s.cfg.JWTExpiryDuration)
	accessToken, err := utils.GenerateAccessJWT(*user, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token on refresh: %w", err)
	}
	return accessToken, expiresAt, nil
}

// RevokeAll stamps revoked_at on every live refresh token of the user.
func (s *tokenService) RevokeAll(ctx context.Context, userID string) error {
	count, err := s.tokenRepo.RevokeAllForUser(ctx, userID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	s.LogInfo(ctx, "revoked refresh tokens", slog.String("user_id", userID), slog.Int64("count", count))
	return nil
}
