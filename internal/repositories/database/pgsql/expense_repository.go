package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kushtati/TRANSG/internal/apperrors"
	"github.com/kushtati/TRANSG/internal/core/domain"
	portsrepo "github.com/kushtati/TRANSG/internal/core/ports/repositories"
	"github.com/kushtati/TRANSG/internal/models"
	"github.com/kushtati/TRANSG/internal/utils/mapping"
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryFacade
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `
		e.expense_id, e.shipment_id, e.type, e.category, e.description,
		e.amount, e.reference, e.paid, e.paid_at,
		e.created_at, e.created_by, e.last_updated_at, e.last_updated_by`

func scanExpenseRow(row pgx.Row) (*models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.ShipmentID,
		&m.Type,
		&m.Category,
		&m.Description,
		&m.Amount,
		&m.Reference,
		&m.Paid,
		&m.PaidAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const insertExpenseQuery = `
        INSERT INTO expenses (
            expense_id, shipment_id, type, category, description,
            amount, reference, paid, paid_at,
            created_at, created_by, last_updated_at, last_updated_by
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
    `

func insertExpenseArgs(m models.Expense) []interface{} {
	return []interface{}{
		m.ExpenseID,
		m.ShipmentID,
		m.Type,
		m.Category,
		m.Description,
		m.Amount,
		m.Reference,
		m.Paid,
		m.PaidAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	modelExpense := mapping.ToModelExpense(expense)
	if _, err := r.Pool.Exec(ctx, insertExpenseQuery, insertExpenseArgs(modelExpense)...); err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

// SaveExpenses persists a batch of expenses in one transaction. Materializing
// a duty breakdown writes all six lines through here so they land atomically.
func (r *PgxExpenseRepository) SaveExpenses(ctx context.Context, expenses []domain.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, expense := range expenses {
		modelExpense := mapping.ToModelExpense(expense)
		batch.Queue(insertExpenseQuery, insertExpenseArgs(modelExpense)...)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute expense batch", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit expense batch", err)
	}
	return nil
}

// UpdateExpense rewrites the editable columns. It deliberately leaves paid and
// paid_at alone; settlement only happens through SettleExpense.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	modelExpense := mapping.ToModelExpense(expense)
	query := `
        UPDATE expenses
        SET type = $1, category = $2, description = $3, amount = $4, reference = $5,
            last_updated_at = $6, last_updated_by = $7
        WHERE expense_id = $8;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelExpense.Type,
		modelExpense.Category,
		modelExpense.Description,
		modelExpense.Amount,
		modelExpense.Reference,
		modelExpense.LastUpdatedAt,
		modelExpense.LastUpdatedBy,
		modelExpense.ExpenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", modelExpense.ExpenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	query := `DELETE FROM expenses WHERE expense_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string, companyID string) (*domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		JOIN shipments s ON s.shipment_id = e.shipment_id
		WHERE e.expense_id = $1 AND s.company_id = $2;
	`
	modelExpense, err := scanExpenseRow(r.Pool.QueryRow(ctx, query, expenseID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}

	domainExpense := mapping.ToDomainExpense(*modelExpense)
	return &domainExpense, nil
}

func (r *PgxExpenseRepository) FindExpenses(ctx context.Context, filter portsrepo.ExpenseListFilter) ([]domain.Expense, int, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	baseQuery := `
		FROM expenses e
		JOIN shipments s ON s.shipment_id = e.shipment_id
		WHERE s.company_id = $1`
	args := []interface{}{filter.CompanyID}
	argNum := 2

	if filter.ShipmentID != nil {
		baseQuery += fmt.Sprintf(" AND e.shipment_id = $%d", argNum)
		args = append(args, *filter.ShipmentID)
		argNum++
	}

	if filter.Category != nil {
		baseQuery += fmt.Sprintf(" AND e.category = $%d", argNum)
		args = append(args, string(*filter.Category))
		argNum++
	}

	if filter.Paid != nil {
		baseQuery += fmt.Sprintf(" AND e.paid = $%d", argNum)
		args = append(args, *filter.Paid)
		argNum++
	}

	var total int
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	if total == 0 {
		return []domain.Expense{}, 0, nil
	}

	baseQuery += " ORDER BY e.created_at DESC"
	baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, "SELECT "+expenseColumns+" "+baseQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	modelExpenses := []models.Expense{}
	for rows.Next() {
		modelExpense, err := scanExpenseRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense row: %w", err)
		}
		modelExpenses = append(modelExpenses, *modelExpense)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating expense rows: %w", rows.Err())
	}

	return mapping.ToDomainExpenseSlice(modelExpenses), total, nil
}

// SettleExpense marks an expense paid inside a transaction that serializes on
// the owning shipment row. Locking the shipment rather than the expense is
// what stops two different disbursements from both passing the balance check
// against the same provisions.
func (r *PgxExpenseRepository) SettleExpense(ctx context.Context, expenseID string, companyID string, paidBy string, paidAt time.Time) (*domain.Expense, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	// Resolve the owning shipment under company scope and take its row lock.
	var shipmentID string
	lockQuery := `
		SELECT s.shipment_id
		FROM shipments s
		JOIN expenses e ON e.shipment_id = s.shipment_id
		WHERE e.expense_id = $1 AND s.company_id = $2
		FOR UPDATE OF s;
	`
	err = tx.QueryRow(ctx, lockQuery, expenseID, companyID).Scan(&shipmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock shipment for settlement", err)
	}

	// Re-read the expense now that the lock is held; a concurrent settlement
	// may have finished between the handler's read and here.
	expenseQuery := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		WHERE e.expense_id = $1;
	`
	modelExpense, err := scanExpenseRow(tx.QueryRow(ctx, expenseQuery, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to read expense for settlement", err)
	}

	if modelExpense.Paid {
		return nil, apperrors.ErrAlreadyPaid
	}

	// Provisions settle unconditionally; disbursements must be covered by the
	// shipment balance at this instant.
	if modelExpense.Type == string(domain.Disbursement) {
		var available int64
		balanceQuery := `
			SELECT COALESCE(SUM(CASE WHEN type = 'PROVISION' THEN amount ELSE 0 END), 0)
			     - COALESCE(SUM(CASE WHEN type = 'DISBURSEMENT' AND paid THEN amount ELSE 0 END), 0)
			FROM expenses
			WHERE shipment_id = $1;
		`
		if err := tx.QueryRow(ctx, balanceQuery, shipmentID).Scan(&available); err != nil {
			return nil, apperrors.NewAppError(500, "failed to compute shipment balance", err)
		}
		if available < modelExpense.Amount {
			return nil, &apperrors.InsufficientBalanceError{Available: available, Requested: modelExpense.Amount}
		}
	}

	updateQuery := `
        UPDATE expenses
        SET paid = TRUE, paid_at = $1, last_updated_at = $1, last_updated_by = $2
        WHERE expense_id = $3;
    `
	if _, err := tx.Exec(ctx, updateQuery, paidAt, paidBy, expenseID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to settle expense "+expenseID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, apperrors.NewAppError(500, "failed to commit settlement of "+expenseID, err)
	}

	modelExpense.Paid = true
	modelExpense.PaidAt = &paidAt
	modelExpense.LastUpdatedAt = paidAt
	modelExpense.LastUpdatedBy = paidBy
	domainExpense := mapping.ToDomainExpense(*modelExpense)
	return &domainExpense, nil
}

// GetLedgerSummary aggregates the ledger for one shipment or a whole company.
func (r *PgxExpenseRepository) GetLedgerSummary(ctx context.Context, companyID string, shipmentID *string) (*domain.LedgerSummary, error) {
	baseWhere := ` WHERE s.company_id = $1`
	args := []interface{}{companyID}
	if shipmentID != nil {
		baseWhere += ` AND e.shipment_id = $2`
		args = append(args, *shipmentID)
	}

	totalsQuery := `
		SELECT
			COALESCE(SUM(CASE WHEN e.type = 'PROVISION' THEN e.amount ELSE 0 END), 0) AS total_provisions,
			COALESCE(SUM(CASE WHEN e.type = 'DISBURSEMENT' THEN e.amount ELSE 0 END), 0) AS total_disbursements,
			COALESCE(SUM(CASE WHEN e.type = 'DISBURSEMENT' AND e.paid THEN e.amount ELSE 0 END), 0) AS paid_disbursements
		FROM expenses e
		JOIN shipments s ON s.shipment_id = e.shipment_id` + baseWhere

	summary := &domain.LedgerSummary{}
	err := r.Pool.QueryRow(ctx, totalsQuery, args...).Scan(
		&summary.TotalProvisions,
		&summary.TotalDisbursements,
		&summary.PaidDisbursements,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ledger totals: %w", err)
	}
	summary.UnpaidDisbursements = summary.TotalDisbursements - summary.PaidDisbursements
	summary.Balance = summary.TotalProvisions - summary.PaidDisbursements

	categoryQuery := `
		SELECT e.category,
			COALESCE(SUM(e.amount), 0) AS total,
			COALESCE(SUM(CASE WHEN e.paid THEN e.amount ELSE 0 END), 0) AS paid,
			COUNT(*) AS count
		FROM expenses e
		JOIN shipments s ON s.shipment_id = e.shipment_id` + baseWhere + `
		AND e.type = 'DISBURSEMENT'
		GROUP BY e.category
		ORDER BY e.category;
	`
	rows, err := r.Pool.Query(ctx, categoryQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ledger categories: %w", err)
	}
	defer rows.Close()

	summary.ByCategory = []domain.CategorySummary{}
	for rows.Next() {
		var category string
		var c domain.CategorySummary
		if err := rows.Scan(&category, &c.Total, &c.Paid, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category summary row: %w", err)
		}
		c.Category = domain.ExpenseCategory(category)
		c.Unpaid = c.Total - c.Paid
		summary.ByCategory = append(summary.ByCategory, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category summary rows: %w", rows.Err())
	}

	return summary, nil
}
