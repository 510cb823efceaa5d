package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentStatus indicates where a shipment sits in the clearance lifecycle.
type ShipmentStatus string

const (
	StatusDraft     ShipmentStatus = "DRAFT"
	StatusPending   ShipmentStatus = "PENDING"
	StatusArrived   ShipmentStatus = "ARRIVED"
	StatusCustoms   ShipmentStatus = "CUSTOMS"
	StatusCleared   ShipmentStatus = "CLEARED"
	StatusDelivered ShipmentStatus = "DELIVERED"
	StatusInvoiced  ShipmentStatus = "INVOICED"
	StatusClosed    ShipmentStatus = "CLOSED"
	StatusArchived  ShipmentStatus = "ARCHIVED" // Soft-deleted, reachable from any non-closed status
)

var shipmentStatuses = map[ShipmentStatus]struct{}{
	StatusDraft:     {},
	StatusPending:   {},
	StatusArrived:   {},
	StatusCustoms:   {},
	StatusCleared:   {},
	StatusDelivered: {},
	StatusInvoiced:  {},
	StatusClosed:    {},
	StatusArchived:  {},
}

// IsValid reports whether the status is one of the known lifecycle values.
func (s ShipmentStatus) IsValid() bool {
	_, ok := shipmentStatuses[s]
	return ok
}

// IsTerminal reports whether the shipment accepts no further mutations.
func (s ShipmentStatus) IsTerminal() bool {
	return s == StatusClosed || s == StatusArchived
}

// Shipment represents one consignment moving through customs clearance.
type Shipment struct {
	ShipmentID       string           `json:"shipmentID"` // Primary Key (e.g., UUID)
	CompanyID        string           `json:"companyID"`  // FK -> Company.companyID (Not Null)
	ClientID         *string          `json:"clientID,omitempty"`
	ClientName       *string          `json:"clientName,omitempty"` // Joined for display and search
	TrackingNumber   string           `json:"trackingNumber"`       // Unique, e.g. TRG-20250114-A7K2MQ
	Description      string           `json:"description"`          // Cargo description
	HSCode           string           `json:"hsCode"`               // Nullable
	BLNumber         string           `json:"blNumber"`             // Bill of lading, nullable
	GrossWeightKg    *decimal.Decimal `json:"grossWeightKg,omitempty"`
	VolumeM3         *decimal.Decimal `json:"volumeM3,omitempty"`
	DeclaredValue    decimal.Decimal  `json:"declaredValue"`    // CIF value in the declared currency
	DeclaredCurrency Currency         `json:"declaredCurrency"` // Default USD
	ValueGNF         int64            `json:"valueGNF"`         // Declared value converted at the static rate
	OriginPort       string           `json:"originPort"`
	DischargePort    string           `json:"dischargePort"` // Default CONAKRY
	CustomsRegime    string           `json:"customsRegime"` // Default IM4
	Status           ShipmentStatus   `json:"status"`
	ETA              *time.Time       `json:"eta,omitempty"`
	Containers       []Container      `json:"containers,omitempty"`
	AuditFields
}

// Container is one physical container attached to a shipment.
type Container struct {
	ContainerID string    `json:"containerID"` // Primary Key (e.g., UUID)
	ShipmentID  string    `json:"shipmentID"`  // FK -> Shipment.shipmentID (Not Null)
	Number      string    `json:"number"`      // e.g., MSKU1234567
	SizeType    string    `json:"sizeType"`    // e.g., 20GP, 40HC
	CreatedAt   time.Time `json:"createdAt"`
}

// Document is a reference to an externally stored file attached to a shipment.
type Document struct {
	DocumentID string    `json:"documentID"` // Primary Key (e.g., UUID)
	ShipmentID string    `json:"shipmentID"` // FK -> Shipment.shipmentID (Not Null)
	Name       string    `json:"name"`
	FileURL    string    `json:"fileURL"`    // Storage is external, only the URL is kept
	DocType    string    `json:"docType"`    // e.g., BL, INVOICE, PACKING_LIST
	UploadedBy string    `json:"uploadedBy"` // UserID Reference
	CreatedAt  time.Time `json:"createdAt"`
}

// TimelineEvent is one append-only entry in a shipment's status history.
// Events are never updated or deleted.
type TimelineEvent struct {
	EventID     string         `json:"eventID"`    // Primary Key (e.g., UUID)
	ShipmentID  string         `json:"shipmentID"` // FK -> Shipment.shipmentID (Not Null)
	Status      ShipmentStatus `json:"status"`     // Status the shipment entered
	Note        string         `json:"note"`       // Nullable
	ActorUserID string         `json:"actorUserID"`
	CreatedAt   time.Time      `json:"createdAt"`
}
