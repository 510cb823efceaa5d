package mapping

import (
	"github.com/kushtati/TRANSG/internal/core/domain"
	"github.com/kushtati/TRANSG/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:   d.ExpenseID,
		ShipmentID:  d.ShipmentID,
		Type:        string(d.Type),
		Category:    string(d.Category),
		Description: d.Description,
		Amount:      d.Amount,
		Reference:   d.Reference,
		Paid:        d.Paid,
		PaidAt:      d.PaidAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		ShipmentID:  m.ShipmentID,
		Type:        domain.ExpenseType(m.Type),
		Category:    domain.ExpenseCategory(m.Category),
		Description: m.Description,
		Amount:      m.Amount,
		Reference:   m.Reference,
		Paid:        m.Paid,
		PaidAt:      m.PaidAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to a slice of domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}
