package repositories

import (
	"context"

	"github.com/kushtati/TRANSG/internal/core/domain"
)

// ShipmentListFilter narrows a shipment listing. Search matches tracking
// number, bill-of-lading number and client name, case-insensitively.
type ShipmentListFilter struct {
	CompanyID string
	Status    *domain.ShipmentStatus
	Search    string
	Limit     int
	Offset    int
}

// ShipmentReader defines read operations for shipment data
type ShipmentReader interface {
	// FindShipmentByID retrieves a shipment with its containers, scoped to a
	// company. A shipment of another company reads as not found.
	FindShipmentByID(ctx context.Context, shipmentID string, companyID string) (*domain.Shipment, error)

	// FindShipments retrieves a filtered, paginated list together with the
	// total count matching the filter.
	FindShipments(ctx context.Context, filter ShipmentListFilter) ([]domain.Shipment, int, error)

	// FindTimelineEvents retrieves a shipment's status history, oldest first.
	FindTimelineEvents(ctx context.Context, shipmentID string) ([]domain.TimelineEvent, error)
}

// ShipmentWriter defines write operations for shipment data
type ShipmentWriter interface {
	// SaveShipment persists a new shipment, its containers and the initial
	// timeline event in a single transaction.
	SaveShipment(ctx context.Context, shipment domain.Shipment, containers []domain.Container, event domain.TimelineEvent) error

	// UpdateShipment updates a shipment's fields and, when event is non-nil,
	// appends the status-transition event in the same transaction.
	UpdateShipment(ctx context.Context, shipment domain.Shipment, event *domain.TimelineEvent) error

	// ReplaceContainers swaps a shipment's container list in one transaction.
	ReplaceContainers(ctx context.Context, shipmentID string, containers []domain.Container) error
}

// DocumentReader defines read operations for shipment documents
type DocumentReader interface {
	// FindDocuments retrieves a shipment's documents, newest first.
	FindDocuments(ctx context.Context, shipmentID string) ([]domain.Document, error)
}

// DocumentWriter defines write operations for shipment documents
type DocumentWriter interface {
	// SaveDocument persists a new document reference.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// DeleteDocument removes a document reference from a shipment.
	DeleteDocument(ctx context.Context, documentID string, shipmentID string) error
}

// ShipmentRepositoryFacade combines all shipment-related repository interfaces
type ShipmentRepositoryFacade interface {
	ShipmentReader
	ShipmentWriter
	DocumentReader
	DocumentWriter
}
