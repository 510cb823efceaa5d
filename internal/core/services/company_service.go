package services

import (
	"context"
	"fmt"

	"github.com/kushtati/TRANSG/internal/core/domain"
	portsrepo "github.com/kushtati/TRANSG/internal/core/ports/repositories"
	portssvc "github.com/kushtati/TRANSG/internal/core/ports/services"
)

// companyService implements the CompanySvcFacade interface
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new instance of companyService.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{
		companyRepo: companyRepo,
	}
}

// GetCompanyByID retrieves a company by ID.
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company %s: %w", companyID, err)
	}
	return company, nil
}
