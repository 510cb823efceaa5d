package services

import (
	"context"

	"github.com/kushtati/TRANSG/internal/core/domain"
	"github.com/kushtati/TRANSG/internal/dto"
)

// ShipmentReaderSvc defines read operations for shipments
type ShipmentReaderSvc interface {
	// GetShipmentByID retrieves a shipment, scoped to the caller's company.
	GetShipmentByID(ctx context.Context, identity domain.Identity, shipmentID string) (*domain.Shipment, error)

	// ListShipments lists the company's shipments with filtering and paging.
	ListShipments(ctx context.Context, identity domain.Identity, params dto.ListShipmentsParams) ([]domain.Shipment, int, error)

	// ListTimeline returns a shipment's status history, oldest first.
	ListTimeline(ctx context.Context, identity domain.Identity, shipmentID string) ([]domain.TimelineEvent, error)
}

// ShipmentWriterSvc defines write operations for shipments
type ShipmentWriterSvc interface {
	// CreateShipment creates a shipment with a generated tracking number,
	// defaults applied, containers and the initial timeline event.
	CreateShipment(ctx context.Context, identity domain.Identity, req dto.CreateShipmentRequest) (*domain.Shipment, error)

	// UpdateShipment patches a shipment; a status change appends a timeline
	// event in the same transaction.
	UpdateShipment(ctx context.Context, identity domain.Identity, shipmentID string, req dto.UpdateShipmentRequest) (*domain.Shipment, error)

	// ArchiveShipment soft-deletes a shipment by moving it to ARCHIVED.
	ArchiveShipment(ctx context.Context, identity domain.Identity, shipmentID string) error
}

// ShipmentDocumentSvc defines the document sub-resource operations
type ShipmentDocumentSvc interface {
	// AddDocument attaches a document reference to a shipment.
	AddDocument(ctx context.Context, identity domain.Identity, shipmentID string, req dto.AddDocumentRequest) (*domain.Document, error)

	// RemoveDocument detaches a document reference.
	RemoveDocument(ctx context.Context, identity domain.Identity, shipmentID string, documentID string) error

	// ListDocuments lists a shipment's document references, newest first.
	ListDocuments(ctx context.Context, identity domain.Identity, shipmentID string) ([]domain.Document, error)
}

// ShipmentSvcFacade combines all shipment-related service interfaces
type ShipmentSvcFacade interface {
	ShipmentReaderSvc
	ShipmentWriterSvc
	ShipmentDocumentSvc
}
