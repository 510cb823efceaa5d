package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kushtati/TRANSG/internal/apperrors"
	"github.com/kushtati/TRANSG/internal/core/domain"
	portssvc "github.com/kushtati/TRANSG/internal/core/ports/services"
	"github.com/kushtati/TRANSG/internal/dto"
	"github.com/kushtati/TRANSG/internal/handlers"
	"github.com/kushtati/TRANSG/internal/middleware"
	"github.com/kushtati/TRANSG/internal/platform/config"
	"github.com/kushtati/TRANSG/internal/utils"
)

// MockUserService and the envelope helpers live in handler_auth_test.go.

// --- Mock ExpenseService ---

type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) ListExpenses(ctx context.Context, identity domain.Identity, params dto.ListExpensesParams) ([]domain.Expense, int, error) {
	args := m.Called(ctx, identity, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Expense), args.Int(1), args.Error(2)
}

func (m *MockExpenseService) CompanySummary(ctx context.Context, identity domain.Identity) (*domain.LedgerSummary, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

func (m *MockExpenseService) ShipmentSummary(ctx context.Context, identity domain.Identity, shipmentID string) (*domain.LedgerSummary, error) {
	args := m.Called(ctx, identity, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

func (m *MockExpenseService) CreateExpense(ctx context.Context, identity domain.Identity, shipmentID string, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	args := m.Called(ctx, identity, shipmentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) UpdateExpense(ctx context.Context, identity domain.Identity, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	args := m.Called(ctx, identity, expenseID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) PayExpense(ctx context.Context, identity domain.Identity, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, identity, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) DeleteExpense(ctx context.Context, identity domain.Identity, expenseID string) error {
	args := m.Called(ctx, identity, expenseID)
	return args.Error(0)
}

func (m *MockExpenseService) MaterializeDuties(ctx context.Context, identity domain.Identity, shipmentID string) (*dto.MaterializeDutiesResponse, error) {
	args := m.Called(ctx, identity, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MaterializeDutiesResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Test Suite ---

type ExpenseHandlerTestSuite struct {
	suite.Suite
	cfg            *config.Config
	mockUserSvc    *MockUserService
	mockExpenseSvc *MockExpenseService
	router         *gin.Engine
}

func (s *ExpenseHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.cfg = handlerTestConfig()
	s.mockUserSvc = new(MockUserService)
	s.mockExpenseSvc = new(MockExpenseService)

	s.router = gin.New()
	v1 := s.router.Group("/api/v1", middleware.AuthGuard(s.cfg, s.mockUserSvc))
	handlers.RegisterExpenseRoutes(v1, s.mockExpenseSvc)
}

func (s *ExpenseHandlerTestSuite) actAs(role domain.UserRole) (domain.Identity, string) {
	user := &domain.User{
		UserID:    uuid.NewString(),
		CompanyID: uuid.NewString(),
		Name:      "Ousmane Camara",
		Email:     "ousmane@transit-gn.com",
		Role:      role,
		Verified:  true,
		IsActive:  true,
	}
	s.mockUserSvc.On("GetUserByID", mock.Anything, user.UserID).Return(user, nil).Once()

	token, err := utils.GenerateAccessJWT(*user, s.cfg.JWTSecret, time.Hour, s.cfg.JWTIssuer)
	s.Require().NoError(err)

	identity := domain.Identity{
		UserID:    user.UserID,
		CompanyID: user.CompanyID,
		Role:      user.Role,
		Email:     user.Email,
		Name:      user.Name,
	}
	return identity, token
}

func (s *ExpenseHandlerTestSuite) do(method, path, token string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		s.Require().NoError(err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ExpenseHandlerTestSuite) decodeSuccess(w *httptest.ResponseRecorder, out any) {
	var env successEnvelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	s.True(env.Success)
	if out != nil {
		s.Require().NoError(json.Unmarshal(env.Data, out))
	}
}

func (s *ExpenseHandlerTestSuite) decodeFailure(w *httptest.ResponseRecorder) failureEnvelope {
	var env failureEnvelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	s.False(env.Success)
	return env
}

// storedProvision returns an unpaid provision fixture.
func storedProvision(shipmentID string) *domain.Expense {
	return &domain.Expense{
		ExpenseID:   uuid.NewString(),
		ShipmentID:  shipmentID,
		Type:        domain.Provision,
		Category:    domain.CategoryAutre,
		Description: "Provision initiale du client",
		Amount:      50_000_000,
	}
}

// --- Test Cases ---

func (s *ExpenseHandlerTestSuite) TestCreateExpense_Created() {
	identity, token := s.actAs(domain.RoleAccountant)
	stored := storedProvision("ship-1")
	expectedReq := dto.CreateExpenseRequest{
		Type:        "PROVISION",
		Category:    "AUTRE",
		Description: "Provision initiale du client",
		Amount:      50_000_000,
	}
	s.mockExpenseSvc.On("CreateExpense", mock.Anything, identity, "ship-1", expectedReq).
		Return(stored, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/shipments/ship-1/expenses", token, gin.H{
		"type":        "PROVISION",
		"category":    "AUTRE",
		"description": "Provision initiale du client",
		"amount":      50_000_000,
	})

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.ExpenseResponse
	s.decodeSuccess(w, &resp)
	s.Equal(stored.ExpenseID, resp.ExpenseID)
	s.Equal(int64(50_000_000), resp.Amount)
	s.False(resp.Paid)
	s.mockExpenseSvc.AssertExpectations(s.T())
}

func (s *ExpenseHandlerTestSuite) TestCreateExpense_AgentForbidden() {
	_, token := s.actAs(domain.RoleAgent)

	w := s.do(http.MethodPost, "/api/v1/shipments/ship-1/expenses", token, gin.H{
		"type":        "PROVISION",
		"category":    "AUTRE",
		"description": "Provision initiale",
		"amount":      1_000_000,
	})

	s.Equal(http.StatusForbidden, w.Code)
	s.mockExpenseSvc.AssertNotCalled(s.T(), "CreateExpense")
}

func (s *ExpenseHandlerTestSuite) TestCreateExpense_NonPositiveAmountRejected() {
	_, token := s.actAs(domain.RoleAccountant)

	w := s.do(http.MethodPost, "/api/v1/shipments/ship-1/expenses", token, gin.H{
		"type":        "DISBURSEMENT",
		"category":    "ACCONAGE",
		"description": "Frais d'acconage",
		"amount":      -5,
	})

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockExpenseSvc.AssertNotCalled(s.T(), "CreateExpense")
}

func (s *ExpenseHandlerTestSuite) TestUpdateExpense_InsufficientBalance() {
	identity, token := s.actAs(domain.RoleAccountant)
	s.mockExpenseSvc.On("UpdateExpense", mock.Anything, identity, "exp-1", mock.AnythingOfType("dto.UpdateExpenseRequest")).
		Return(nil, &apperrors.InsufficientBalanceError{Available: 1_000_000, Requested: 1_500_000}).Once()

	w := s.do(http.MethodPatch, "/api/v1/expenses/exp-1", token, gin.H{"paid": true})

	s.Equal(http.StatusBadRequest, w.Code)
	body := s.decodeFailure(w)
	s.Equal("insufficient provision balance", body.Message)
	s.Equal(int64(1_000_000), body.AvailableBalance)
}

func (s *ExpenseHandlerTestSuite) TestUpdateExpense_FieldPatch() {
	identity, token := s.actAs(domain.RoleAccountant)
	stored := storedProvision("ship-1")
	stored.Description = "Provision complémentaire"

	s.mockExpenseSvc.On("UpdateExpense", mock.Anything, identity, stored.ExpenseID,
		mock.MatchedBy(func(req dto.UpdateExpenseRequest) bool {
			return req.Description != nil && *req.Description == "Provision complémentaire" && req.Paid == nil
		}),
	).Return(stored, nil).Once()

	w := s.do(http.MethodPatch, "/api/v1/expenses/"+stored.ExpenseID, token, gin.H{
		"description": "Provision complémentaire",
	})

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ExpenseResponse
	s.decodeSuccess(w, &resp)
	s.Equal("Provision complémentaire", resp.Description)
}

func (s *ExpenseHandlerTestSuite) TestPayExpense_Success() {
	identity, token := s.actAs(domain.RoleAccountant)
	paidAt := time.Now()
	stored := storedProvision("ship-1")
	stored.Paid = true
	stored.PaidAt = &paidAt
	s.mockExpenseSvc.On("PayExpense", mock.Anything, identity, stored.ExpenseID).
		Return(stored, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/expenses/"+stored.ExpenseID+"/pay", token, nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ExpenseResponse
	s.decodeSuccess(w, &resp)
	s.True(resp.Paid)
	s.NotNil(resp.PaidAt)
}

func (s *ExpenseHandlerTestSuite) TestPayExpense_AlreadyPaidConflicts() {
	identity, token := s.actAs(domain.RoleAccountant)
	s.mockExpenseSvc.On("PayExpense", mock.Anything, identity, "exp-1").
		Return(nil, apperrors.ErrAlreadyPaid).Once()

	w := s.do(http.MethodPost, "/api/v1/expenses/exp-1/pay", token, nil)

	s.Equal(http.StatusConflict, w.Code)
	s.Equal("expense is already paid", s.decodeFailure(w).Message)
}

func (s *ExpenseHandlerTestSuite) TestDeleteExpense_PaidRefused() {
	identity, token := s.actAs(domain.RoleAccountant)
	s.mockExpenseSvc.On("DeleteExpense", mock.Anything, identity, "exp-1").
		Return(apperrors.ErrCannotDeletePaid).Once()

	w := s.do(http.MethodDelete, "/api/v1/expenses/exp-1", token, nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("paid expenses cannot be deleted", s.decodeFailure(w).Message)
}

func (s *ExpenseHandlerTestSuite) TestListExpenses_PassesFilterParams() {
	identity, token := s.actAs(domain.RoleClient)
	shipmentID := uuid.NewString()
	paid := false
	expectedParams := dto.ListExpensesParams{
		ShipmentID: shipmentID,
		Category:   "DD",
		Paid:       &paid,
		Page:       2,
		Limit:      50,
	}
	s.mockExpenseSvc.On("ListExpenses", mock.Anything, identity, expectedParams).
		Return([]domain.Expense{*storedProvision(shipmentID)}, 51, nil).Once()

	w := s.do(http.MethodGet,
		"/api/v1/expenses?shipmentID="+shipmentID+"&category=DD&paid=false&page=2&limit=50", token, nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListExpensesResponse
	s.decodeSuccess(w, &resp)
	s.Len(resp.Expenses, 1)
	s.Equal(2, resp.Pagination.Page)
	s.Equal(51, resp.Pagination.Total)
	s.Equal(2, resp.Pagination.TotalPages)
	s.mockExpenseSvc.AssertExpectations(s.T())
}

func (s *ExpenseHandlerTestSuite) TestCompanySummary_Success() {
	identity, token := s.actAs(domain.RoleDirector)
	summary := &domain.LedgerSummary{
		TotalProvisions:     120_000_000,
		TotalDisbursements:  80_000_000,
		PaidDisbursements:   65_000_000,
		UnpaidDisbursements: 15_000_000,
		Balance:             55_000_000,
		ByCategory: []domain.CategorySummary{
			{Category: domain.CategoryDD, Total: 30_261_000, Paid: 30_261_000, Count: 1},
		},
	}
	s.mockExpenseSvc.On("CompanySummary", mock.Anything, identity).Return(summary, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/expenses/summary", token, nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.LedgerSummaryResponse
	s.decodeSuccess(w, &resp)
	s.Equal(int64(55_000_000), resp.Balance)
	s.Require().Len(resp.ByCategory, 1)
	s.Equal("DD", resp.ByCategory[0].Category)
}

func (s *ExpenseHandlerTestSuite) TestShipmentSummary_NotFound() {
	identity, token := s.actAs(domain.RoleClient)
	s.mockExpenseSvc.On("ShipmentSummary", mock.Anything, identity, "foreign-ship").
		Return(nil, apperrors.ErrNotFound).Once()

	w := s.do(http.MethodGet, "/api/v1/shipments/foreign-ship/expenses/summary", token, nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ExpenseHandlerTestSuite) TestMaterializeDuties_Created() {
	identity, token := s.actAs(domain.RoleAccountant)
	result := &dto.MaterializeDutiesResponse{
		Breakdown: dto.BreakdownResponse{
			ValueGNF:    86_460_000,
			TotalDuties: 53_798_430,
			Lines: []dto.DutyLineResponse{
				{Category: "DD", Label: "Droit de douane", Amount: 30_261_000},
			},
		},
		Expenses: []dto.ExpenseResponse{
			{ExpenseID: uuid.NewString(), Type: "DISBURSEMENT", Category: "DD", Amount: 30_261_000},
		},
	}
	s.mockExpenseSvc.On("MaterializeDuties", mock.Anything, identity, "ship-1").
		Return(result, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/shipments/ship-1/expenses/duties", token, nil)

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.MaterializeDutiesResponse
	s.decodeSuccess(w, &resp)
	s.Equal(int64(53_798_430), resp.Breakdown.TotalDuties)
	s.Len(resp.Expenses, 1)
}

func (s *ExpenseHandlerTestSuite) TestMaterializeDuties_AgentForbidden() {
	_, token := s.actAs(domain.RoleAgent)

	w := s.do(http.MethodPost, "/api/v1/shipments/ship-1/expenses/duties", token, nil)

	s.Equal(http.StatusForbidden, w.Code)
	s.mockExpenseSvc.AssertNotCalled(s.T(), "MaterializeDuties")
}

// --- Run Test Suite ---

func TestExpenseHandler(t *testing.T) {
	suite.Run(t, new(ExpenseHandlerTestSuite))
}
