package domain

import "time"

// ExpenseType separates money received from the client from money spent on
// their behalf.
type ExpenseType string

const (
	Provision    ExpenseType = "PROVISION"    // Client funds received for a shipment
	Disbursement ExpenseType = "DISBURSEMENT" // Cost paid out on the client's behalf
)

// IsValid reports whether the expense type is one of the known values.
func (t ExpenseType) IsValid() bool {
	return t == Provision || t == Disbursement
}

// ExpenseCategory is the closed set of ledger categories. Adding one is a
// schema migration, not user data.
type ExpenseCategory string

const (
	CategoryDD          ExpenseCategory = "DD"          // Droit de douane
	CategoryTVA         ExpenseCategory = "TVA"         // Value added tax
	CategoryRTL         ExpenseCategory = "RTL"         // Redevance de traitement des liquidations
	CategoryPC          ExpenseCategory = "PC"          // Prélèvement communautaire
	CategoryCA          ExpenseCategory = "CA"          // Centime additionnel
	CategoryBFU         ExpenseCategory = "BFU"         // Bordereau de frais unique
	CategoryAcconage    ExpenseCategory = "ACCONAGE"    // Stevedoring
	CategoryManutention ExpenseCategory = "MANUTENTION" // Handling
	CategoryTransport   ExpenseCategory = "TRANSPORT"
	CategoryMagasinage  ExpenseCategory = "MAGASINAGE" // Storage
	CategoryHonoraires  ExpenseCategory = "HONORAIRES" // Agency fees
	CategoryAutre       ExpenseCategory = "AUTRE"
)

var expenseCategories = map[ExpenseCategory]struct{}{
	CategoryDD:          {},
	CategoryTVA:         {},
	CategoryRTL:         {},
	CategoryPC:          {},
	CategoryCA:          {},
	CategoryBFU:         {},
	CategoryAcconage:    {},
	CategoryManutention: {},
	CategoryTransport:   {},
	CategoryMagasinage:  {},
	CategoryHonoraires:  {},
	CategoryAutre:       {},
}

// IsValid reports whether the category is one of the known values.
func (c ExpenseCategory) IsValid() bool {
	_, ok := expenseCategories[c]
	return ok
}

// Expense is one ledger line against a shipment. Amounts are whole GNF and
// strictly positive; direction comes from Type, settlement from Paid.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`  // Primary Key (e.g., UUID)
	ShipmentID  string          `json:"shipmentID"` // FK -> Shipment.shipmentID (Not Null)
	Type        ExpenseType     `json:"type"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Amount      int64           `json:"amount"`    // Whole GNF, > 0
	Reference   string          `json:"reference"` // Receipt or declaration number, nullable
	Paid        bool            `json:"paid"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"` // Set exactly once, when Paid flips true
	AuditFields
}
