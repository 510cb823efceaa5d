package domain

// Client is a customer of the forwarding company whose cargo is being cleared.
// Shipments may optionally link to one.
type Client struct {
	ClientID  string `json:"clientID"`  // Primary Key (e.g., UUID)
	CompanyID string `json:"companyID"` // FK -> Company.companyID (Not Null)
	Name      string `json:"name"`
	Email     string `json:"email"` // Nullable
	Phone     string `json:"phone"` // Nullable
	AuditFields
}
