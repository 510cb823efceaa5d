package domain

// Company is the tenancy root. Every user belongs to exactly one company and
// every shipment, expense and client is reachable only through it.
type Company struct {
	CompanyID string `json:"companyID"` // Primary Key (e.g., UUID)
	Name      string `json:"name"`      // Display name, as registered
	Slug      string `json:"slug"`      // URL-safe identifier, unique across companies
	Email     string `json:"email"`     // Contact email
	Phone     string `json:"phone"`     // Nullable
	Address   string `json:"address"`   // Nullable
	AuditFields
}
