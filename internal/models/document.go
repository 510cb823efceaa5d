package models

import "time"

// Document represents a row of the documents table. Files live in external
// storage; only the URL is recorded.
type Document struct {
	DocumentID string    `db:"document_id"`
	ShipmentID string    `db:"shipment_id"`
	Name       string    `db:"name"`
	FileURL    string    `db:"file_url"`
	DocType    string    `db:"doc_type"`
	UploadedBy string    `db:"uploaded_by"`
	CreatedAt  time.Time `db:"created_at"`
}
