package repositories

import (
	"context"
	"time"

	"github.com/kushtati/TRANSG/internal/core/domain"
)

// ExpenseListFilter narrows an expense listing. CompanyID is mandatory; the
// scope join runs through shipments.
type ExpenseListFilter struct {
	CompanyID  string
	ShipmentID *string
	Category   *domain.ExpenseCategory
	Paid       *bool
	Limit      int
	Offset     int
}

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense scoped to a company via its
	// shipment. An expense of another company reads as not found.
	FindExpenseByID(ctx context.Context, expenseID string, companyID string) (*domain.Expense, error)

	// FindExpenses retrieves a filtered, paginated list together with the
	// total count matching the filter.
	FindExpenses(ctx context.Context, filter ExpenseListFilter) ([]domain.Expense, int, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// SaveExpenses persists a batch of expenses in a single transaction, used
	// when materializing a duty breakdown.
	SaveExpenses(ctx context.Context, expenses []domain.Expense) error

	// UpdateExpense updates an expense's editable fields. It never touches
	// paid or paid_at; settlement goes through SettleExpense.
	UpdateExpense(ctx context.Context, expense domain.Expense) error

	// DeleteExpense removes an unpaid expense.
	DeleteExpense(ctx context.Context, expenseID string) error
}

// ExpenseSettler owns the one concurrency-critical write of the ledger.
type ExpenseSettler interface {
	// SettleExpense marks an expense paid inside a transaction that locks the
	// owning shipment row, recomputes the balance and refuses to let it go
	// negative. Returns apperrors.ErrAlreadyPaid on a second settlement and
	// *apperrors.InsufficientBalanceError when the balance cannot cover a
	// disbursement; both leave ledger state unchanged.
	SettleExpense(ctx context.Context, expenseID string, companyID string, paidBy string, paidAt time.Time) (*domain.Expense, error)
}

// ExpenseSummarizer defines the ledger aggregation reads
type ExpenseSummarizer interface {
	// GetLedgerSummary aggregates provisions, disbursements and the per
	// category split for a whole company, or for one shipment when
	// shipmentID is non-nil.
	GetLedgerSummary(ctx context.Context, companyID string, shipmentID *string) (*domain.LedgerSummary, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
	ExpenseSettler
	ExpenseSummarizer
}
