package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shipment represents a row of the shipments table. ClientName is not a
// column; list and get queries join clients to fill it.
type Shipment struct {
	ShipmentID       string           `db:"shipment_id"`
	CompanyID        string           `db:"company_id"`
	ClientID         *string          `db:"client_id"`
	ClientName       *string          `db:"-"`
	TrackingNumber   string           `db:"tracking_number"`
	Description      string           `db:"description"`
	HSCode           string           `db:"hs_code"`
	BLNumber         string           `db:"bl_number"`
	GrossWeightKg    *decimal.Decimal `db:"gross_weight_kg"`
	VolumeM3         *decimal.Decimal `db:"volume_m3"`
	DeclaredValue    decimal.Decimal  `db:"declared_value"`
	DeclaredCurrency string           `db:"declared_currency"`
	ValueGNF         int64            `db:"value_gnf"`
	OriginPort       string           `db:"origin_port"`
	DischargePort    string           `db:"discharge_port"`
	CustomsRegime    string           `db:"customs_regime"`
	Status           string           `db:"status"`
	ETA              *time.Time       `db:"eta"`
	AuditFields
}

// Container represents a row of the containers table.
type Container struct {
	ContainerID string    `db:"container_id"`
	ShipmentID  string    `db:"shipment_id"`
	Number      string    `db:"number"`
	SizeType    string    `db:"size_type"`
	CreatedAt   time.Time `db:"created_at"`
}
