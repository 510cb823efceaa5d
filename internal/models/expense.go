package models

import "time"

// Expense represents a row of the expenses table. Amounts are whole GNF.
type Expense struct {
	ExpenseID   string     `db:"expense_id"`
	ShipmentID  string     `db:"shipment_id"`
	Type        string     `db:"type"`
	Category    string     `db:"category"`
	Description string     `db:"description"`
	Amount      int64      `db:"amount"`
	Reference   string     `db:"reference"` // Nullable, stored as empty string
	Paid        bool       `db:"paid"`
	PaidAt      *time.Time `db:"paid_at"`
	AuditFields
}
