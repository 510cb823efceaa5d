package mapping

import (
	"github.com/kushtati/TRANSG/internal/core/domain"
	"github.com/kushtati/TRANSG/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:              d.UserID,
		CompanyID:           d.CompanyID,
		Name:                d.Name,
		Email:               d.Email,
		PasswordHash:        d.PasswordHash,
		Role:                string(d.Role),
		Verified:            d.Verified,
		IsActive:            d.IsActive,
		VerificationCode:    d.VerificationCode,
		VerificationSentAt:  d.VerificationSentAt,
		FailedLoginAttempts: d.FailedLoginAttempts,
		LockedUntil:         d.LockedUntil,
		LastLoginAt:         d.LastLoginAt,
		AuditFields:         ToModelAuditFields(d.AuditFields),
		DeletedAt:           d.DeletedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:              m.UserID,
		CompanyID:           m.CompanyID,
		Name:                m.Name,
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		Role:                domain.UserRole(m.Role),
		Verified:            m.Verified,
		IsActive:            m.IsActive,
		VerificationCode:    m.VerificationCode,
		VerificationSentAt:  m.VerificationSentAt,
		FailedLoginAttempts: m.FailedLoginAttempts,
		LockedUntil:         m.LockedUntil,
		LastLoginAt:         m.LastLoginAt,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
		DeletedAt:           m.DeletedAt,
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
