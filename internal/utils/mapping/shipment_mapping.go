package mapping

import (
	"github.com/kushtati/TRANSG/internal/core/domain"
	"github.com/kushtati/TRANSG/internal/models"
)

// ToModelShipment converts a domain Shipment to a model Shipment
func ToModelShipment(d domain.Shipment) models.Shipment {
	return models.Shipment{
		ShipmentID:       d.ShipmentID,
		CompanyID:        d.CompanyID,
		ClientID:         d.ClientID,
		ClientName:       d.ClientName,
		TrackingNumber:   d.TrackingNumber,
		Description:      d.Description,
		HSCode:           d.HSCode,
		BLNumber:         d.BLNumber,
		GrossWeightKg:    d.GrossWeightKg,
		VolumeM3:         d.VolumeM3,
		DeclaredValue:    d.DeclaredValue,
		DeclaredCurrency: string(d.DeclaredCurrency),
		ValueGNF:         d.ValueGNF,
		OriginPort:       d.OriginPort,
		DischargePort:    d.DischargePort,
		CustomsRegime:    d.CustomsRegime,
		Status:           string(d.Status),
		ETA:              d.ETA,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainShipment converts a model Shipment to a domain Shipment. Containers
// are loaded separately and attached by the repository.
func ToDomainShipment(m models.Shipment) domain.Shipment {
	return domain.Shipment{
		ShipmentID:       m.ShipmentID,
		CompanyID:        m.CompanyID,
		ClientID:         m.ClientID,
		ClientName:       m.ClientName,
		TrackingNumber:   m.TrackingNumber,
		Description:      m.Description,
		HSCode:           m.HSCode,
		BLNumber:         m.BLNumber,
		GrossWeightKg:    m.GrossWeightKg,
		VolumeM3:         m.VolumeM3,
		DeclaredValue:    m.DeclaredValue,
		DeclaredCurrency: domain.Currency(m.DeclaredCurrency),
		ValueGNF:         m.ValueGNF,
		OriginPort:       m.OriginPort,
		DischargePort:    m.DischargePort,
		CustomsRegime:    m.CustomsRegime,
		Status:           domain.ShipmentStatus(m.Status),
		ETA:              m.ETA,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainShipmentSlice converts a slice of model Shipments to a slice of domain Shipments
func ToDomainShipmentSlice(ms []models.Shipment) []domain.Shipment {
	ds := make([]domain.Shipment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainShipment(m)
	}
	return ds
}

// ToModelContainer converts a domain Container to a model Container
func ToModelContainer(d domain.Container) models.Container {
	return models.Container{
		ContainerID: d.ContainerID,
		ShipmentID:  d.ShipmentID,
		Number:      d.Number,
		SizeType:    d.SizeType,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainContainerSlice converts a slice of model Containers to a slice of domain Containers
func ToDomainContainerSlice(ms []models.Container) []domain.Container {
	ds := make([]domain.Container, len(ms))
	for i, m := range ms {
		ds[i] = domain.Container{
			ContainerID: m.ContainerID,
			ShipmentID:  m.ShipmentID,
			Number:      m.Number,
			SizeType:    m.SizeType,
			CreatedAt:   m.CreatedAt,
		}
	}
	return ds
}

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID: d.DocumentID,
		ShipmentID: d.ShipmentID,
		Name:       d.Name,
		FileURL:    d.FileURL,
		DocType:    d.DocType,
		UploadedBy: d.UploadedBy,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID: m.DocumentID,
		ShipmentID: m.ShipmentID,
		Name:       m.Name,
		FileURL:    m.FileURL,
		DocType:    m.DocType,
		UploadedBy: m.UploadedBy,
		CreatedAt:  m.CreatedAt,
	}
}

// ToDomainDocumentSlice converts a slice of model Documents to a slice of domain Documents
func ToDomainDocumentSlice(ms []models.Document) []domain.Document {
	ds := make([]domain.Document, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocument(m)
	}
	return ds
}

// ToModelTimelineEvent converts a domain TimelineEvent to a model TimelineEvent
func ToModelTimelineEvent(d domain.TimelineEvent) models.TimelineEvent {
	return models.TimelineEvent{
		EventID:     d.EventID,
		ShipmentID:  d.ShipmentID,
		Status:      string(d.Status),
		Note:        d.Note,
		ActorUserID: d.ActorUserID,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainTimelineEvent converts a model TimelineEvent to a domain TimelineEvent
func ToDomainTimelineEvent(m models.TimelineEvent) domain.TimelineEvent {
	return domain.TimelineEvent{
		EventID:     m.EventID,
		ShipmentID:  m.ShipmentID,
		Status:      domain.ShipmentStatus(m.Status),
		Note:        m.Note,
		ActorUserID: m.ActorUserID,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainTimelineEventSlice converts a slice of model TimelineEvents to a slice of domain TimelineEvents
func ToDomainTimelineEventSlice(ms []models.TimelineEvent) []domain.TimelineEvent {
	ds := make([]domain.TimelineEvent, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTimelineEvent(m)
	}
	return ds
}
