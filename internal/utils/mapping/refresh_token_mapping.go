package mapping

import (
	"github.com/kushtati/TRANSG/internal/core/domain"
	"github.com/kushtati/TRANSG/internal/models"
)

// ToModelRefreshToken converts a domain RefreshToken to a model RefreshToken
func ToModelRefreshToken(d domain.RefreshToken) models.RefreshToken {
	return models.RefreshToken{
		TokenID:   d.TokenID,
		UserID:    d.UserID,
		TokenHash: d.TokenHash,
		ExpiresAt: d.ExpiresAt,
		RevokedAt: d.RevokedAt,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainRefreshToken converts a model RefreshToken to a domain RefreshToken
func ToDomainRefreshToken(m models.RefreshToken) domain.RefreshToken {
	return domain.RefreshToken{
		TokenID:   m.TokenID,
		UserID:    m.UserID,
		TokenHash: m.TokenHash,
		ExpiresAt: m.ExpiresAt,
		RevokedAt: m.RevokedAt,
		CreatedAt: m.CreatedAt,
	}
}
