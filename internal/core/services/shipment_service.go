package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kushtati/TRANSG/internal/apperrors"
	"github.com/kushtati/TRANSG/internal/core/domain"
	portsrepo "github.com/kushtati/TRANSG/internal/core/ports/repositories"
	portssvc "github.com/kushtati/TRANSG/internal/core/ports/services"
	"github.com/kushtati/TRANSG/internal/dto"
	"github.com/kushtati/TRANSG/internal/utils"
	"github.com/kushtati/TRANSG/internal/utils/customs"
)

const (
	defaultDischargePort = "CONAKRY"
	defaultCustomsRegime = "IM4"
)

// shipmentService implements the ShipmentSvcFacade interface
type shipmentService struct {
	BaseService
	shipmentRepo portsrepo.ShipmentRepositoryFacade
	clientRepo   portsrepo.ClientRepositoryFacade
}

// NewShipmentService creates a new instance of shipmentService.
func NewShipmentService(shipmentRepo portsrepo.ShipmentRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade) portssvc.ShipmentSvcFacade {
	return &shipmentService{
		shipmentRepo: shipmentRepo,
		clientRepo:   clientRepo,
	}
}

// CreateShipment creates a shipment with a generated tracking number,
// defaults applied, containers and the initial DRAFT timeline event in a
// single transaction.
func (s *shipmentService) CreateShipment(ctx context.Context, identity domain.Identity, req dto.CreateShipmentRequest) (*domain.Shipment, error) {
	now := time.Now()

	var clientName *string
	if req.ClientID != nil {
		client, err := s.clientRepo.FindClientByID(ctx, *req.ClientID, identity.CompanyID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown client", apperrors.ErrValidation)
			}
			return nil, fmt.Errorf("failed to resolve client: %w", err)
		}
		clientName = &client.Name
	}

	currency := domain.CurrencyUSD
	if req.DeclaredCurrency != "" {
		currency = domain.Currency(req.DeclaredCurrency)
	}
	valueGNF, err := customs.ConvertToGNF(req.DeclaredValue, currency)
	if err != nil {
		return nil, err
	}

	dischargePort := req.DischargePort
	if dischargePort == "" {
		dischargePort = defaultDischargePort
	}
	regime := req.CustomsRegime
	if regime == "" {
		regime = defaultCustomsRegime
	}

	shipmentID := uuid.NewString()
	shipment := domain.Shipment{
		ShipmentID:       shipmentID,
		CompanyID:        identity.CompanyID,
		ClientID:         req.ClientID,
		ClientName:       clientName,
		Description:      strings.TrimSpace(req.Description),
		HSCode:           req.HSCode,
		BLNumber:         req.BLNumber,
		GrossWeightKg:    req.GrossWeightKg,
		VolumeM3:         req.VolumeM3,
		DeclaredValue:    req.DeclaredValue,
		DeclaredCurrency: currency,
		ValueGNF:         valueGNF,
		OriginPort:       req.OriginPort,
		DischargePort:    dischargePort,
		CustomsRegime:    regime,
		Status:           domain.StatusDraft,
		ETA:              req.ETA,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     identity.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: identity.UserID,
		},
	}

	containers := buildContainers(shipmentID, req.Containers, now)
	event := domain.TimelineEvent{
		EventID:     uuid.NewString(),
		ShipmentID:  shipmentID,
		Status:      domain.StatusDraft,
		ActorUserID: identity.UserID,
		CreatedAt:   now,
	}

	// The tracking number is crypto-random; the unique index is the actual
	// guarantee, so one retry on collision is all it takes.
	for attempt := 0; ; attempt++ {
		tracking, genErr := utils.GenerateTrackingNumber(now)
		if genErr != nil {
			return nil, fmt.Errorf("failed to generate tracking number: %w", genErr)
		}
		shipment.TrackingNumber = tracking

		saveErr := s.shipmentRepo.SaveShipment(ctx, shipment, containers, event)
		if saveErr == nil {
			break
		}
		if errors.Is(saveErr, apperrors.ErrDuplicate) && attempt == 0 {
			s.LogWarn(ctx, "tracking number collision, retrying", slog.String("tracking_number", tracking))
			continue
		}
		return nil, fmt.Errorf("failed to save shipment: %w", saveErr)
	}

	shipment.Containers = containers
	s.LogInfo(ctx, "shipment created",
		slog.String("shipment_id", shipmentID),
		slog.String("tracking_number", shipment.TrackingNumber),
	)
	return &shipment, nil
}

// UpdateShipment patches a shipment. A present-and-different status appends
// exactly one timeline event in the same transaction; same-value writes
// append nothing. Terminal shipments accept only patches that change nothing.
func (s *shipmentService) UpdateShipment(ctx context.Context, identity domain.Identity, shipmentID string, req dto.UpdateShipmentRequest) (*domain.Shipment, error) {
	current, err := s.shipmentRepo.FindShipmentByID(ctx, shipmentID, identity.CompanyID)
	if err != nil {
		return nil, err
	}

	updated := *current
	changed := false

	if req.ClientID != nil && (current.ClientID == nil || *current.ClientID != *req.ClientID) {
		client, cerr := s.clientRepo.FindClientByID(ctx, *req.ClientID, identity.CompanyID)
		if cerr != nil {
			if errors.Is(cerr, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown client", apperrors.ErrValidation)
			}
			return nil, fmt.Errorf("failed to resolve client: %w", cerr)
		}
		updated.ClientID = req.ClientID
		updated.ClientName = &client.Name
		changed = true
	}
	if req.Description != nil && *req.Description != current.Description {
		updated.Description = strings.TrimSpace(*req.Description)
		changed = true
	}
	if req.HSCode != nil && *req.HSCode != current.HSCode {
		updated.HSCode = *req.HSCode
		changed = true
	}
	if req.BLNumber != nil && *req.BLNumber != current.BLNumber {
		updated.BLNumber = *req.BLNumber
		changed = true
	}
	if req.GrossWeightKg != nil && (current.GrossWeightKg == nil || !current.GrossWeightKg.Equal(*req.GrossWeightKg)) {
		updated.GrossWeightKg = req.GrossWeightKg
		changed = true
	}
	if req.VolumeM3 != nil && (current.VolumeM3 == nil || !current.VolumeM3.Equal(*req.VolumeM3)) {
		updated.VolumeM3 = req.VolumeM3
		changed = true
	}
	if req.DeclaredValue != nil && !current.DeclaredValue.Equal(*req.DeclaredValue) {
		updated.DeclaredValue = *req.DeclaredValue
		changed = true
	}
	if req.DeclaredCurrency != nil && domain.Currency(*req.DeclaredCurrency) != current.DeclaredCurrency {
		updated.DeclaredCurrency = domain.Currency(*req.DeclaredCurrency)
		changed = true
	}
	if req.OriginPort != nil && *req.OriginPort != current.OriginPort {
		updated.OriginPort = *req.OriginPort
		changed = true
	}
	if req.DischargePort != nil && *req.DischargePort != current.DischargePort {
		updated.DischargePort = *req.DischargePort
		changed = true
	}
	if req.CustomsRegime != nil && *req.CustomsRegime != current.CustomsRegime {
		updated.CustomsRegime = *req.CustomsRegime
		changed = true
	}
	if req.ETA != nil && (current.ETA == nil || !current.ETA.Equal(*req.ETA)) {
		updated.ETA = req.ETA
		changed = true
	}

	// Declared value changes re-derive the GNF value at the static rate.
	if changed && (req.DeclaredValue != nil || req.DeclaredCurrency != nil) {
		valueGNF, cerr := customs.ConvertToGNF(updated.DeclaredValue, updated.DeclaredCurrency)
		if cerr != nil {
			return nil, cerr
		}
		updated.ValueGNF = valueGNF
	}

	var event *domain.TimelineEvent
	now := time.Now()
	if req.Status != nil {
		newStatus := domain.ShipmentStatus(*req.Status)
		if newStatus != current.Status {
			if !newStatus.IsValid() {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidStatus, *req.Status)
			}
			updated.Status = newStatus
			changed = true
			note := ""
			if req.StatusNote != nil {
				note = *req.StatusNote
			}
			event = &domain.TimelineEvent{
				EventID:     uuid.NewString(),
				ShipmentID:  shipmentID,
				Status:      newStatus,
				Note:        note,
				ActorUserID: identity.UserID,
				CreatedAt:   now,
			}
		}
	}

	replaceContainers := req.Containers != nil && !containersMatch(current.Containers, req.Containers)

	if !changed && !replaceContainers {
		return current, nil
	}
	if current.Status.IsTerminal() {
		return nil, apperrors.ErrShipmentClosed
	}

	if changed {
		updated.LastUpdatedAt = now
		updated.LastUpdatedBy = identity.UserID
		if err := s.shipmentRepo.UpdateShipment(ctx, updated, event); err != nil {
			return nil, fmt.Errorf("failed to update shipment: %w", err)
		}
	}

	if replaceContainers {
		containers := buildContainers(shipmentID, req.Containers, now)
		if err := s.shipmentRepo.ReplaceContainers(ctx, shipmentID, containers); err != nil {
			return nil, fmt.Errorf("failed to replace containers: %w", err)
		}
		updated.Containers = containers
	}

	s.LogInfo(ctx, "shipment updated", slog.String("shipment_id", shipmentID))
	return &updated, nil
}

// ArchiveShipment soft-deletes a shipment by moving it to ARCHIVED. Archiving
// an archived shipment is a no-op; a CLOSED shipment cannot be archived.
func (s *shipmentService) ArchiveShipment(ctx context.Context, identity domain.Identity, shipmentID string) error {
	current, err := s.shipmentRepo.FindShipmentByID(ctx, shipmentID, identity.CompanyID)
	if err != nil {
		return err
	}
	if current.Status == domain.StatusArchived {
		return nil
	}
	if current.Status == domain.StatusClosed {
		return apperrors.ErrShipmentClosed
	}

	now := time.Now()
	updated := *current
	updated.Status = domain.StatusArchived
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = identity.UserID
	event := &domain.TimelineEvent{
		EventID:     uuid.NewString(),
		ShipmentID:  shipmentID,
		Status:      domain.StatusArchived,
		ActorUserID: identity.UserID,
		CreatedAt:   now,
	}
	if err := s.shipmentRepo.UpdateShipment(ctx, updated, event); err != nil {
		return fmt.Errorf("failed to archive shipment: %w", err)
	}
	s.LogInfo(ctx, "shipment archived", slog.String("shipment_id", shipmentID))
	return nil
}

// GetShipmentByID retrieves a shipment, scoped to the caller's company.
func (s *shipmentService) GetShipmentByID(ctx context.Context, identity domain.Identity, shipmentID string) (*domain.Shipment, error) {
	return s.shipmentRepo.FindShipmentByID(ctx, shipmentID, identity.CompanyID)
}

// ListShipments lists the company's shipments with filtering and paging.
func (s *shipmentService) ListShipments(ctx context.Context, identity domain.Identity, params dto.ListShipmentsParams) ([]domain.Shipment, int, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := portsrepo.ShipmentListFilter{
		CompanyID: identity.CompanyID,
		Search:    strings.TrimSpace(params.Search),
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}
	if params.Status != "" {
		status := domain.ShipmentStatus(params.Status)
		if !status.IsValid() {
			return nil, 0, fmt.Errorf("%w: %s", apperrors.ErrInvalidStatus, params.Status)
		}
		filter.Status = &status
	}

	shipments, total, err := s.shipmentRepo.FindShipments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shipments: %w", err)
	}
	return shipments, total, nil
}

// ListTimeline returns a shipment's status history, oldest first.
func (s *shipmentService) ListTimeline(ctx context.Context, identity domain.Identity, shipmentID string) ([]domain.TimelineEvent, error) {
	if _, err := s.shipmentRepo.FindShipmentByID(ctx, shipmentID, identity.CompanyID); err != nil {
		return nil, err
	}
	events, err := s.shipmentRepo.FindTimelineEvents(ctx, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline: %w", err)
	}
	return events, nil
}

// AddDocument attaches a document reference to a shipment.
func (s *shipmentService) AddDocument(ctx context.Context, identity domain.Identity, shipmentID string, req dto.AddDocumentRequest) (*domain.Document, error) {
	if _, err := s.shipmentRepo.FindShipmentByID(ctx, shipmentID, identity.CompanyID); err != nil {
		return nil, err
	}

	doc := domain.Document{
		DocumentID: uuid.NewString(),
		ShipmentID: shipmentID,
		Name:       strings.TrimSpace(req.Name),
		FileURL:    req.FileURL,
		DocType:    req.DocType,
		UploadedBy: identity.UserID,
		CreatedAt:  time.Now(),
	}
	if err := s.shipmentRepo.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	s.LogInfo(ctx, "document attached", slog.String("shipment_id", shipmentID), slog.String("document_id", doc.DocumentID))
	return &doc, nil
}

// RemoveDocument detaches a document reference.
func (s *shipmentService) RemoveDocument(ctx context.Context, identity domain.Identity, shipmentID string, documentID string) error {
	if _, err := s.shipmentRepo.FindShipmentByID(ctx, shipmentID, identity.CompanyID); err != nil {
		return err
	}
	if err := s.shipmentRepo.DeleteDocument(ctx, documentID, shipmentID); err != nil {
		return err
	}
	s.LogInfo(ctx, "document removed", slog.String("shipment_id", shipmentID), slog.String("document_id", documentID))
	return nil
}

// ListDocuments lists a shipment's document references, newest first.
func (s *shipmentService) ListDocuments(ctx context.Context, identity domain.Identity, shipmentID string) ([]domain.Document, error) {
	if _, err := s.shipmentRepo.FindShipmentByID(ctx, shipmentID, identity.CompanyID); err != nil {
		return nil, err
	}
	docs, err := s.shipmentRepo.FindDocuments(ctx, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// buildContainers materializes container rows from request input.
func buildContainers(shipmentID string, inputs []dto.ContainerInput, now time.Time) []domain.Container {
	containers := make([]domain.Container, len(inputs))
	for i, in := range inputs {
		containers[i] = domain.Container{
			ContainerID: uuid.NewString(),
			ShipmentID:  shipmentID,
			Number:      strings.TrimSpace(in.Number),
			SizeType:    strings.TrimSpace(in.SizeType),
			CreatedAt:   now,
		}
	}
	return containers
}

// containersMatch reports whether the supplied container list is identical,
// in order, to the stored one. Identical lists are not replaced.
func containersMatch(current []domain.Container, inputs []dto.ContainerInput) bool {
	if len(current) != len(inputs) {
		return false
	}
	for i, in := range inputs {
		if current[i].Number != strings.TrimSpace(in.Number) || current[i].SizeType != strings.TrimSpace(in.SizeType) {
			return false
		}
	}
	return true
}
