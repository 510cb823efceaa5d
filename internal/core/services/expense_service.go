package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kushtati/TRANSG/internal/apperrors"
	"github.com/kushtati/TRANSG/internal/core/domain"
	portsrepo "github.com/kushtati/TRANSG/internal/core/ports/repositories"
	portssvc "github.com/kushtati/TRANSG/internal/core/ports/services"
	"github.com/kushtati/TRANSG/internal/dto"
	"github.com/kushtati/TRANSG/internal/utils/customs"
)

// expenseService implements the ExpenseSvcFacade interface
type expenseService struct {
	BaseService
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	shipmentRepo portsrepo.ShipmentRepositoryFacade
}

// NewExpenseService creates a new instance of expenseService.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, shipmentRepo portsrepo.ShipmentRepositoryFacade) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo:  expenseRepo,
		shipmentRepo: shipmentRepo,
	}
}

// CreateExpense records an expense against a shipment of the caller's company.
func (s *expenseService) CreateExpense(ctx context.Context, identity domain.Identity, shipmentID string, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	if _, err := s.shipmentRepo.FindShipmentByID(ctx, shipmentID, identity.CompanyID); err != nil {
		return nil, err
	}

	expenseType := domain.ExpenseType(req.Type)
	if !expenseType.IsValid() {
		return nil, fmt.Errorf("%w: unknown expense type %s", apperrors.ErrValidation, req.Type)
	}
	category := domain.ExpenseCategory(req.Category)
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %s", apperrors.ErrValidation, req.Category)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		ShipmentID:  shipmentID,
		Type:        expenseType,
		Category:    category,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Reference:   req.Reference,
		Paid:        false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     identity.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: identity.UserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}
	s.LogInfo(ctx, "expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("shipment_id", shipmentID),
		slog.String("type", string(expenseType)),
		slog.Int64("amount", expense.Amount),
	)
	return &expense, nil
}

// UpdateExpense patches an expense. Paid expenses are immutable; a paid:true
// patch on an unpaid record applies the field edits first, then settles
// through the balance-guarded pay path.
func (s *expenseService) UpdateExpense(ctx context.Context, identity domain.Identity, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	current, err := s.expenseRepo.FindExpenseByID(ctx, expenseID, identity.CompanyID)
	if err != nil {
		return nil, err
	}
	if current.Paid {
		return nil, apperrors.ErrAlreadyPaid
	}

	updated := *current
	changed := false

	if req.Category != nil && domain.ExpenseCategory(*req.Category) != current.Category {
		category := domain.ExpenseCategory(*req.Category)
		if !category.IsValid() {
			return nil, fmt.Errorf("%w: unknown category %s", apperrors.ErrValidation, *req.Category)
		}
		updated.Category = category
		changed = true
	}
	if req.Description != nil && *req.Description != current.Description {
		updated.Description = strings.TrimSpace(*req.Description)
		changed = true
	}
	if req.Amount != nil && *req.Amount != current.Amount {
		if *req.Amount <= 0 {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		updated.Amount = *req.Amount
		changed = true
	}
	if req.Reference != nil && *req.Reference != current.Reference {
		updated.Reference = *req.Reference
		changed = true
	}

	if changed {
		updated.LastUpdatedAt = time.Now()
		updated.LastUpdatedBy = identity.UserID
		if err := s.expenseRepo.UpdateExpense(ctx, updated); err != nil {
			return nil, fmt.Errorf("failed to update expense: %w", err)
		}
	}

	// A paid:true patch settles after the edits so the balance check runs
	// against the amount just written. paid:false on an unpaid record is a
	// no-op; unsettling is not a thing.
	if req.Paid != nil && *req.Paid {
		return s.PayExpense(ctx, identity, expenseID)
	}

	s.LogInfo(ctx, "expense updated", slog.String("expense_id", expenseID))
	return &updated, nil
}

// PayExpense settles an expense. The repository locks the owning shipment
// row, recomputes the balance and refuses overdrawing disbursements, so two
// concurrent pays can never both pass against the same stale balance.
func (s *expenseService) PayExpense(ctx context.Context, identity domain.Identity, expenseID string) (*domain.Expense, error) {
	settled, err := s.expenseRepo.SettleExpense(ctx, expenseID, identity.CompanyID, identity.UserID, time.Now())
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "expense paid",
		slog.String("expense_id", expenseID),
		slog.String("shipment_id", settled.ShipmentID),
		slog.Int64("amount", settled.Amount),
	)
	return settled, nil
}

// DeleteExpense removes an unpaid expense; paid expenses are immutable.
func (s *expenseService) DeleteExpense(ctx context.Context, identity domain.Identity, expenseID string) error {
	current, err := s.expenseRepo.FindExpenseByID(ctx, expenseID, identity.CompanyID)
	if err != nil {
		return err
	}
	if current.Paid {
		return apperrors.ErrCannotDeletePaid
	}
	if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	s.LogInfo(ctx, "expense deleted", slog.String("expense_id", expenseID))
	return nil
}

// ListExpenses lists expenses across the company or one shipment.
func (s *expenseService) ListExpenses(ctx context.Context, identity domain.Identity, params dto.ListExpensesParams) ([]domain.Expense, int, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := portsrepo.ExpenseListFilter{
		CompanyID: identity.CompanyID,
		Paid:      params.Paid,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}
	if params.ShipmentID != "" {
		filter.ShipmentID = &params.ShipmentID
	}
	if params.Category != "" {
		category := domain.ExpenseCategory(params.Category)
		filter.Category = &category
	}

	expenses, total, err := s.expenseRepo.FindExpenses(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, total, nil
}

// CompanySummary aggregates the whole company's ledger.
func (s *expenseService) CompanySummary(ctx context.Context, identity domain.Identity) (*domain.LedgerSummary, error) {
	summary, err := s.expenseRepo.GetLedgerSummary(ctx, identity.CompanyID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate company ledger: %w", err)
	}
	return summary, nil
}

// ShipmentSummary aggregates one shipment's ledger.
func (s *expenseService) ShipmentSummary(ctx context.Context, identity domain.Identity, shipmentID string) (*domain.LedgerSummary, error) {
	if _, err := s.shipmentRepo.FindShipmentByID(ctx, shipmentID, identity.CompanyID); err != nil {
		return nil, err
	}
	summary, err := s.expenseRepo.GetLedgerSummary(ctx, identity.CompanyID, &shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate shipment ledger: %w", err)
	}
	return summary, nil
}

// MaterializeDuties computes the duty breakdown for a shipment's declared
// value and records one unpaid disbursement per non-zero line in a single
// batch.
func (s *expenseService) MaterializeDuties(ctx context.Context, identity domain.Identity, shipmentID string) (*dto.MaterializeDutiesResponse, error) {
	shipment, err := s.shipmentRepo.FindShipmentByID(ctx, shipmentID, identity.CompanyID)
	if err != nil {
		return nil, err
	}

	breakdown, err := customs.Compute(shipment.DeclaredValue, shipment.DeclaredCurrency)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expenses := make([]domain.Expense, 0, len(breakdown.Lines))
	for _, line := range breakdown.Lines {
		if line.Amount <= 0 {
			continue
		}
		expenses = append(expenses, domain.Expense{
			ExpenseID:   uuid.NewString(),
			ShipmentID:  shipmentID,
			Type:        domain.Disbursement,
			Category:    line.Category,
			Description: line.Label,
			Amount:      line.Amount,
			Reference:   shipment.TrackingNumber,
			Paid:        false,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     identity.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: identity.UserID,
			},
		})
	}

	if err := s.expenseRepo.SaveExpenses(ctx, expenses); err != nil {
		return nil, fmt.Errorf("failed to materialize duties: %w", err)
	}
	s.LogInfo(ctx, "duties materialized",
		slog.String("shipment_id", shipmentID),
		slog.Int("lines", len(expenses)),
		slog.Int64("total_duties", breakdown.TotalDuties),
	)

	return &dto.MaterializeDutiesResponse{
		Breakdown: dto.ToBreakdownResponse(breakdown),
		Expenses:  dto.ToExpenseResponses(expenses),
	}, nil
}
