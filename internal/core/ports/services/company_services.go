package services

import (
	"context"

	"github.com/kushtati/TRANSG/internal/core/domain"
)

// CompanySvcFacade defines the interface for company data access.
type CompanySvcFacade interface {
	// GetCompanyByID retrieves a company by ID.
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
}
