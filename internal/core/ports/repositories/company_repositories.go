package repositories

import (
	"context"

	"github.com/kushtati/TRANSG/internal/core/domain"
)

// CompanyReader defines read operations for company data
type CompanyReader interface {
	// FindCompanyByID retrieves a specific company by its ID.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// FindCompanyBySlug retrieves a company by its unique slug.
	FindCompanyBySlug(ctx context.Context, slug string) (*domain.Company, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	// SaveCompany persists a new company.
	SaveCompany(ctx context.Context, company domain.Company) error

	// SaveCompanyWithDirector persists a new company together with its first
	// DIRECTOR user in a single transaction, so registration can never leave
	// a company without an owner.
	SaveCompanyWithDirector(ctx context.Context, company domain.Company, director domain.User) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
