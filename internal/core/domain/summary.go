package domain

// CategorySummary aggregates disbursements of one category.
type CategorySummary struct {
	Category ExpenseCategory `json:"category"`
	Total    int64           `json:"total"`  // All disbursements in the category
	Paid     int64           `json:"paid"`   // Settled portion
	Unpaid   int64           `json:"unpaid"` // Outstanding portion
	Count    int             `json:"count"`
}

// LedgerSummary is the financial position of a shipment or a whole company.
// Balance follows the ledger identity: provisions minus paid disbursements.
type LedgerSummary struct {
	TotalProvisions     int64             `json:"totalProvisions"`
	TotalDisbursements  int64             `json:"totalDisbursements"`
	PaidDisbursements   int64             `json:"paidDisbursements"`
	UnpaidDisbursements int64             `json:"unpaidDisbursements"`
	Balance             int64             `json:"balance"`
	ByCategory          []CategorySummary `json:"byCategory"`
}
