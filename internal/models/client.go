package models

// Client represents a row of the clients table.
type Client struct {
	ClientID  string `db:"client_id"`
	CompanyID string `db:"company_id"`
	Name      string `db:"name"`
	Email     string `db:"email"` // Nullable, stored as empty string
	Phone     string `db:"phone"` // Nullable, stored as empty string
	AuditFields
}
