package dto

import (
	"time"

	"github.com/kushtati/TRANSG/internal/core/domain"
)

// CreateExpenseRequest defines the payload for creating an expense against a
// shipment. Amount is whole GNF.
type CreateExpenseRequest struct {
	Type        string `json:"type" binding:"required,oneof=PROVISION DISBURSEMENT"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description" binding:"required,min=2,max=500"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Reference   string `json:"reference" binding:"omitempty,max=80"`
}

// UpdateExpenseRequest defines the patch payload for an expense. Setting Paid
// to true routes through the same balance-guarded path as the pay operation;
// setting it back to false is rejected.
type UpdateExpenseRequest struct {
	Category    *string `json:"category" binding:"omitempty"`
	Description *string `json:"description" binding:"omitempty,min=2,max=500"`
	Amount      *int64  `json:"amount" binding:"omitempty,gt=0"`
	Reference   *string `json:"reference" binding:"omitempty,max=80"`
	Paid        *bool   `json:"paid" binding:"omitempty"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	ShipmentID string `form:"shipmentID" binding:"omitempty,uuid"`
	Category   string `form:"category" binding:"omitempty"`
	Paid       *bool  `form:"paid" binding:"omitempty"`
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit      int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// ExpenseResponse defines the expense data returned to clients.
type ExpenseResponse struct {
	ExpenseID   string     `json:"expenseID"`
	ShipmentID  string     `json:"shipmentID"`
	Type        string     `json:"type"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Amount      int64      `json:"amount"`
	Reference   string     `json:"reference,omitempty"`
	Paid        bool       `json:"paid"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		ShipmentID:  e.ShipmentID,
		Type:        string(e.Type),
		Category:    string(e.Category),
		Description: e.Description,
		Amount:      e.Amount,
		Reference:   e.Reference,
		Paid:        e.Paid,
		PaidAt:      e.PaidAt,
		CreatedAt:   e.CreatedAt,
	}
}

// ToExpenseResponses converts a slice of domain.Expense to DTOs
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}

// ListExpensesResponse wraps a page of expenses.
type ListExpensesResponse struct {
	Expenses   []ExpenseResponse `json:"expenses"`
	Pagination PaginationMeta    `json:"pagination"`
}

// CategorySummaryResponse aggregates one category of disbursements.
type CategorySummaryResponse struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
	Paid     int64  `json:"paid"`
	Unpaid   int64  `json:"unpaid"`
	Count    int    `json:"count"`
}

// LedgerSummaryResponse is the financial position of a shipment or company.
type LedgerSummaryResponse struct {
	TotalProvisions     int64                     `json:"totalProvisions"`
	TotalDisbursements  int64                     `json:"totalDisbursements"`
	PaidDisbursements   int64                     `json:"paidDisbursements"`
	UnpaidDisbursements int64                     `json:"unpaidDisbursements"`
	Balance             int64                     `json:"balance"`
	ByCategory          []CategorySummaryResponse `json:"byCategory"`
}

// ToLedgerSummaryResponse converts a domain.LedgerSummary to the DTO
func ToLedgerSummaryResponse(s *domain.LedgerSummary) LedgerSummaryResponse {
	byCategory := make([]CategorySummaryResponse, len(s.ByCategory))
	for i, c := range s.ByCategory {
		byCategory[i] = CategorySummaryResponse{
			Category: string(c.Category),
			Total:    c.Total,
			Paid:     c.Paid,
			Unpaid:   c.Unpaid,
			Count:    c.Count,
		}
	}
	return LedgerSummaryResponse{
		TotalProvisions:     s.TotalProvisions,
		TotalDisbursements:  s.TotalDisbursements,
		PaidDisbursements:   s.PaidDisbursements,
		UnpaidDisbursements: s.UnpaidDisbursements,
		Balance:             s.Balance,
		ByCategory:          byCategory,
	}
}

// MaterializeDutiesResponse returns the duty breakdown together with the
// expense rows created from it.
type MaterializeDutiesResponse struct {
	Breakdown BreakdownResponse `json:"breakdown"`
	Expenses  []ExpenseResponse `json:"expenses"`
}
