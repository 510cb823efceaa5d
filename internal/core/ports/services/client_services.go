package services

import (
	"context"

	"github.com/kushtati/TRANSG/internal/core/domain"
	"github.com/kushtati/TRANSG/internal/dto"
)

// ClientSvcFacade defines the interface for client management.
type ClientSvcFacade interface {
	// CreateClient creates a client in the caller's company.
	CreateClient(ctx context.Context, identity domain.Identity, req dto.CreateClientRequest) (*domain.Client, error)

	// ListClients lists the caller company's clients with the total count.
	ListClients(ctx context.Context, identity domain.Identity, params dto.ListClientsParams) ([]domain.Client, int, error)
}
