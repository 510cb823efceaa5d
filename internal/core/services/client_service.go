package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kushtati/TRANSG/internal/core/domain"
	portsrepo "github.com/kushtati/TRANSG/internal/core/ports/repositories"
	portssvc "github.com/kushtati/TRANSG/internal/core/ports/services"
	"github.com/kushtati/TRANSG/internal/dto"
)

// clientService implements the ClientSvcFacade interface
type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new instance of clientService.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{
		clientRepo: clientRepo,
	}
}

// CreateClient creates a client in the caller's company.
func (s *clientService) CreateClient(ctx context.Context, identity domain.Identity, req dto.CreateClientRequest) (*domain.Client, error) {
	now := time.Now()
	client := domain.Client{
		ClientID:  uuid.NewString(),
		CompanyID: identity.CompanyID,
		Name:      strings.TrimSpace(req.Name),
		Email:     NormalizeEmail(req.Email),
		Phone:     req.Phone,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     identity.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: identity.UserID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	s.LogInfo(ctx, "client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

// ListClients lists the caller company's clients with the total count.
func (s *clientService) ListClients(ctx context.Context, identity domain.Identity, params dto.ListClientsParams) ([]domain.Client, int, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	clients, total, err := s.clientRepo.FindClients(ctx, identity.CompanyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, total, nil
}
