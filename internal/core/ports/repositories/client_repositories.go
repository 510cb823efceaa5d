package repositories

import (
	"context"

	"github.com/kushtati/TRANSG/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a client scoped to a company. A client of
	// another company reads as not found.
	FindClientByID(ctx context.Context, clientID string, companyID string) (*domain.Client, error)

	// FindClients retrieves a paginated list of a company's clients together
	// with the total count.
	FindClients(ctx context.Context, companyID string, limit int, offset int) ([]domain.Client, int, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
