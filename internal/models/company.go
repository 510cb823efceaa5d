package models

// Company represents a row of the companies table.
type Company struct {
	CompanyID string `db:"company_id"`
	Name      string `db:"name"`
	Slug      string `db:"slug"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`   // Nullable, stored as empty string
	Address   string `db:"address"` // Nullable, stored as empty string
	AuditFields
}
