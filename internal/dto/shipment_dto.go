package dto

import (
	"time"

	"github.com/kushtati/TRANSG/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ContainerInput defines one container supplied with a shipment.
type ContainerInput struct {
	Number   string `json:"number" binding:"required,max=20"`
	SizeType string `json:"sizeType" binding:"required,max=10"`
}

// CreateShipmentRequest defines the payload for creating a shipment.
// DeclaredCurrency defaults to USD, DischargePort to CONAKRY and
// CustomsRegime to IM4 when omitted.
type CreateShipmentRequest struct {
	ClientID         *string          `json:"clientID" binding:"omitempty,uuid"`
	Description      string           `json:"description" binding:"required,min=2,max=500"`
	HSCode           string           `json:"hsCode" binding:"omitempty,max=12"`
	BLNumber         string           `json:"blNumber" binding:"omitempty,max=40"`
	GrossWeightKg    *decimal.Decimal `json:"grossWeightKg" binding:"omitempty"`
	VolumeM3         *decimal.Decimal `json:"volumeM3" binding:"omitempty"`
	DeclaredValue    decimal.Decimal  `json:"declaredValue" binding:"required"`
	DeclaredCurrency string           `json:"declaredCurrency" binding:"omitempty,oneof=USD EUR GNF"`
	OriginPort       string           `json:"originPort" binding:"omitempty,max=80"`
	DischargePort    string           `json:"dischargePort" binding:"omitempty,max=80"`
	CustomsRegime    string           `json:"customsRegime" binding:"omitempty,max=10"`
	ETA              *time.Time       `json:"eta" binding:"omitempty"`
	Containers       []ContainerInput `json:"containers" binding:"omitempty,dive"`
}

// UpdateShipmentRequest defines the patch payload for a shipment.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateShipmentRequest struct {
	ClientID         *string          `json:"clientID" binding:"omitempty,uuid"`
	Description      *string          `json:"description" binding:"omitempty,min=2,max=500"`
	HSCode           *string          `json:"hsCode" binding:"omitempty,max=12"`
	BLNumber         *string          `json:"blNumber" binding:"omitempty,max=40"`
	GrossWeightKg    *decimal.Decimal `json:"grossWeightKg" binding:"omitempty"`
	VolumeM3         *decimal.Decimal `json:"volumeM3" binding:"omitempty"`
	DeclaredValue    *decimal.Decimal `json:"declaredValue" binding:"omitempty"`
	DeclaredCurrency *string          `json:"declaredCurrency" binding:"omitempty,oneof=USD EUR GNF"`
	OriginPort       *string          `json:"originPort" binding:"omitempty,max=80"`
	DischargePort    *string          `json:"dischargePort" binding:"omitempty,max=80"`
	CustomsRegime    *string          `json:"customsRegime" binding:"omitempty,max=10"`
	Status           *string          `json:"status" binding:"omitempty"`
	StatusNote       *string          `json:"statusNote" binding:"omitempty,max=500"`
	ETA              *time.Time       `json:"eta" binding:"omitempty"`
	Containers       []ContainerInput `json:"containers" binding:"omitempty,dive"`
}

// ListShipmentsParams defines query parameters for listing shipments.
type ListShipmentsParams struct {
	Status string `form:"status" binding:"omitempty"`
	Search string `form:"search" binding:"omitempty,max=120"`
	Page   int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit  int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// ContainerResponse defines the container data returned to clients.
type ContainerResponse struct {
	ContainerID string `json:"containerID"`
	Number      string `json:"number"`
	SizeType    string `json:"sizeType"`
}

// ShipmentResponse defines the shipment data returned to clients.
type ShipmentResponse struct {
	ShipmentID       string              `json:"shipmentID"`
	ClientID         *string             `json:"clientID,omitempty"`
	ClientName       *string             `json:"clientName,omitempty"`
	TrackingNumber   string              `json:"trackingNumber"`
	Description      string              `json:"description"`
	HSCode           string              `json:"hsCode,omitempty"`
	BLNumber         string              `json:"blNumber,omitempty"`
	GrossWeightKg    *decimal.Decimal    `json:"grossWeightKg,omitempty"`
	VolumeM3         *decimal.Decimal    `json:"volumeM3,omitempty"`
	DeclaredValue    decimal.Decimal     `json:"declaredValue"`
	DeclaredCurrency string              `json:"declaredCurrency"`
	ValueGNF         int64               `json:"valueGNF"`
	OriginPort       string              `json:"originPort,omitempty"`
	DischargePort    string              `json:"dischargePort"`
	CustomsRegime    string              `json:"customsRegime"`
	Status           string              `json:"status"`
	ETA              *time.Time          `json:"eta,omitempty"`
	Containers       []ContainerResponse `json:"containers,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	LastUpdatedAt    time.Time           `json:"lastUpdatedAt"`
}

// ToShipmentResponse converts a domain.Shipment to ShipmentResponse DTO
func ToShipmentResponse(s *domain.Shipment) ShipmentResponse {
	containers := make([]ContainerResponse, len(s.Containers))
	for i, c := range s.Containers {
		containers[i] = ContainerResponse{
			ContainerID: c.ContainerID,
			Number:      c.Number,
			SizeType:    c.SizeType,
		}
	}
	return ShipmentResponse{
		ShipmentID:       s.ShipmentID,
		ClientID:         s.ClientID,
		ClientName:       s.ClientName,
		TrackingNumber:   s.TrackingNumber,
		Description:      s.Description,
		HSCode:           s.HSCode,
		BLNumber:         s.BLNumber,
		GrossWeightKg:    s.GrossWeightKg,
		VolumeM3:         s.VolumeM3,
		DeclaredValue:    s.DeclaredValue,
		DeclaredCurrency: string(s.DeclaredCurrency),
		ValueGNF:         s.ValueGNF,
		OriginPort:       s.OriginPort,
		DischargePort:    s.DischargePort,
		CustomsRegime:    s.CustomsRegime,
		Status:           string(s.Status),
		ETA:              s.ETA,
		Containers:       containers,
		CreatedAt:        s.CreatedAt,
		LastUpdatedAt:    s.LastUpdatedAt,
	}
}

// ListShipmentsResponse wraps a page of shipments.
type ListShipmentsResponse struct {
	Shipments  []ShipmentResponse `json:"shipments"`
	Pagination PaginationMeta     `json:"pagination"`
}

// ToListShipmentsResponse converts domain shipments plus paging info to the DTO
func ToListShipmentsResponse(shipments []domain.Shipment, meta PaginationMeta) ListShipmentsResponse {
	responses := make([]ShipmentResponse, len(shipments))
	for i := range shipments {
		responses[i] = ToShipmentResponse(&shipments[i])
	}
	return ListShipmentsResponse{Shipments: responses, Pagination: meta}
}

// AddDocumentRequest defines the payload for attaching a document reference.
type AddDocumentRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	FileURL string `json:"fileURL" binding:"required,url"`
	DocType string `json:"docType" binding:"required,max=40"`
}

// DocumentResponse defines the document data returned to clients.
type DocumentResponse struct {
	DocumentID string    `json:"documentID"`
	Name       string    `json:"name"`
	FileURL    string    `json:"fileURL"`
	DocType    string    `json:"docType"`
	UploadedBy string    `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToDocumentResponse converts a domain.Document to DocumentResponse DTO
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID: d.DocumentID,
		Name:       d.Name,
		FileURL:    d.FileURL,
		DocType:    d.DocType,
		UploadedBy: d.UploadedBy,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDocumentResponses converts a slice of domain.Document to DTOs
func ToDocumentResponses(docs []domain.Document) []DocumentResponse {
	responses := make([]DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = ToDocumentResponse(&docs[i])
	}
	return responses
}

// TimelineEventResponse defines one entry of a shipment's status history.
type TimelineEventResponse struct {
	EventID     string    `json:"eventID"`
	Status      string    `json:"status"`
	Note        string    `json:"note,omitempty"`
	ActorUserID string    `json:"actorUserID"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToTimelineEventResponses converts domain timeline events to DTOs
func ToTimelineEventResponses(events []domain.TimelineEvent) []TimelineEventResponse {
	responses := make([]TimelineEventResponse, len(events))
	for i, e := range events {
		responses[i] = TimelineEventResponse{
			EventID:     e.EventID,
			Status:      string(e.Status),
			Note:        e.Note,
			ActorUserID: e.ActorUserID,
			CreatedAt:   e.CreatedAt,
		}
	}
	return responses
}
