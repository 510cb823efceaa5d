package services

import (
	"context"

	"github.com/kushtati/TRANSG/internal/core/domain"
	"github.com/kushtati/TRANSG/internal/dto"
)

// ExpenseReaderSvc defines read operations for the ledger
type ExpenseReaderSvc interface {
	// ListExpenses lists expenses across the company or one shipment, with
	// category and settlement filters plus paging.
	ListExpenses(ctx context.Context, identity domain.Identity, params dto.ListExpensesParams) ([]domain.Expense, int, error)

	// CompanySummary aggregates the whole company's ledger.
	CompanySummary(ctx context.Context, identity domain.Identity) (*domain.LedgerSummary, error)

	// ShipmentSummary aggregates one shipment's ledger.
	ShipmentSummary(ctx context.Context, identity domain.Identity, shipmentID string) (*domain.LedgerSummary, error)
}

// ExpenseWriterSvc defines write operations for the ledger
type ExpenseWriterSvc interface {
	// CreateExpense records an expense against a shipment.
	CreateExpense(ctx context.Context, identity domain.Identity, shipmentID string, req dto.CreateExpenseRequest) (*domain.Expense, error)

	// UpdateExpense patches an expense. A paid:true patch settles through the
	// balance-guarded pay path; paid is monotonic and cannot be unset.
	UpdateExpense(ctx context.Context, identity domain.Identity, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)

	// PayExpense settles an expense. Disbursements are refused when the
	// shipment balance cannot cover them.
	PayExpense(ctx context.Context, identity domain.Identity, expenseID string) (*domain.Expense, error)

	// DeleteExpense removes an unpaid expense; paid expenses are immutable.
	DeleteExpense(ctx context.Context, identity domain.Identity, expenseID string) error

	// MaterializeDuties computes the duty breakdown for a shipment's declared
	// value and records one unpaid disbursement per line.
	MaterializeDuties(ctx context.Context, identity domain.Identity, shipmentID string) (*dto.MaterializeDutiesResponse, error)
}

// ExpenseSvcFacade combines all ledger service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
