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
	"github.com/shopspring/decimal"
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

// --- Mock ShipmentService ---

type MockShipmentService struct {
	mock.Mock
}

func (m *MockShipmentService) GetShipmentByID(ctx context.Context, identity domain.Identity, shipmentID string) (*domain.Shipment, error) {
	args := m.Called(ctx, identity, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shipment), args.Error(1)
}

func (m *MockShipmentService) ListShipments(ctx context.Context, identity domain.Identity, params dto.ListShipmentsParams) ([]domain.Shipment, int, error) {
	args := m.Called(ctx, identity, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Shipment), args.Int(1), args.Error(2)
}

func (m *MockShipmentService) ListTimeline(ctx context.Context, identity domain.Identity, shipmentID string) ([]domain.TimelineEvent, error) {
	args := m.Called(ctx, identity, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimelineEvent), args.Error(1)
}

func (m *MockShipmentService) CreateShipment(ctx context.Context, identity domain.Identity, req dto.CreateShipmentRequest) (*domain.Shipment, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shipment), args.Error(1)
}

func (m *MockShipmentService) UpdateShipment(ctx context.Context, identity domain.Identity, shipmentID string, req dto.UpdateShipmentRequest) (*domain.Shipment, error) {
	args := m.Called(ctx, identity, shipmentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shipment), args.Error(1)
}

func (m *MockShipmentService) ArchiveShipment(ctx context.Context, identity domain.Identity, shipmentID string) error {
	args := m.Called(ctx, identity, shipmentID)
	return args.Error(0)
}

func (m *MockShipmentService) AddDocument(ctx context.Context, identity domain.Identity, shipmentID string, req dto.AddDocumentRequest) (*domain.Document, error) {
	args := m.Called(ctx, identity, shipmentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockShipmentService) RemoveDocument(ctx context.Context, identity domain.Identity, shipmentID string, documentID string) error {
	args := m.Called(ctx, identity, shipmentID, documentID)
	return args.Error(0)
}

func (m *MockShipmentService) ListDocuments(ctx context.Context, identity domain.Identity, shipmentID string) ([]domain.Document, error) {
	args := m.Called(ctx, identity, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ShipmentSvcFacade = (*MockShipmentService)(nil)

// --- Test Suite ---

type ShipmentHandlerTestSuite struct {
	suite.Suite
	cfg             *config.Config
	mockUserSvc     *MockUserService
	mockShipmentSvc *MockShipmentService
	router          *gin.Engine
}

func (s *ShipmentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.cfg = handlerTestConfig()
	s.mockUserSvc = new(MockUserService)
	s.mockShipmentSvc = new(MockShipmentService)

	s.router = gin.New()
	v1 := s.router.Group("/api/v1", middleware.AuthGuard(s.cfg, s.mockUserSvc))
	handlers.RegisterShipmentRoutes(v1, s.mockShipmentSvc)
}

// actAs primes the guard with a user of the given role and returns the
// identity the handler will receive plus a bearer token for the request.
func (s *ShipmentHandlerTestSuite) actAs(role domain.UserRole) (domain.Identity, string) {
	user := &domain.User{
		UserID:    uuid.NewString(),
		CompanyID: uuid.NewString(),
		Name:      "Aissatou Barry",
		Email:     "aissatou@transit-gn.com",
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

func (s *ShipmentHandlerTestSuite) do(method, path, token string, payload any) *httptest.ResponseRecorder {
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

func (s *ShipmentHandlerTestSuite) decodeSuccess(w *httptest.ResponseRecorder, out any) {
	var env successEnvelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	s.True(env.Success)
	if out != nil {
		s.Require().NoError(json.Unmarshal(env.Data, out))
	}
}

// conakryShipment returns a stored shipment fixture.
func conakryShipment() *domain.Shipment {
	clientName := "Société Kaba Import"
	return &domain.Shipment{
		ShipmentID:       uuid.NewString(),
		CompanyID:        uuid.NewString(),
		ClientName:       &clientName,
		TrackingNumber:   "TRG-20250114-A7K2MQ",
		Description:      "Véhicule Toyota Hilux 2022",
		DeclaredValue:    decimal.NewFromInt(10000),
		DeclaredCurrency: domain.CurrencyUSD,
		ValueGNF:         86_460_000,
		DischargePort:    "CONAKRY",
		CustomsRegime:    "IM4",
		Status:           domain.StatusDraft,
		Containers: []domain.Container{{
			ContainerID: uuid.NewString(),
			Number:      "MSKU1234567",
			SizeType:    "40HC",
		}},
	}
}

// --- Test Cases ---

func (s *ShipmentHandlerTestSuite) TestCreateShipment_Created() {
	identity, token := s.actAs(domain.RoleAgent)
	stored := conakryShipment()

	s.mockShipmentSvc.On("CreateShipment", mock.Anything, identity,
		mock.MatchedBy(func(req dto.CreateShipmentRequest) bool {
			return req.Description == "Véhicule Toyota Hilux 2022" &&
				req.DeclaredValue.Equal(decimal.NewFromInt(10000)) &&
				req.DeclaredCurrency == "USD" &&
				len(req.Containers) == 1 &&
				req.Containers[0].Number == "MSKU1234567"
		}),
	).Return(stored, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/shipments", token, gin.H{
		"description":      "Véhicule Toyota Hilux 2022",
		"declaredValue":    10000,
		"declaredCurrency": "USD",
		"containers":       []gin.H{{"number": "MSKU1234567", "sizeType": "40HC"}},
	})

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.ShipmentResponse
	s.decodeSuccess(w, &resp)
	s.Equal(stored.TrackingNumber, resp.TrackingNumber)
	s.Equal(int64(86_460_000), resp.ValueGNF)
	s.Len(resp.Containers, 1)
	s.mockShipmentSvc.AssertExpectations(s.T())
}

func (s *ShipmentHandlerTestSuite) TestCreateShipment_ClientRoleForbidden() {
	_, token := s.actAs(domain.RoleClient)

	w := s.do(http.MethodPost, "/api/v1/shipments", token, gin.H{
		"description":   "Véhicule Toyota Hilux 2022",
		"declaredValue": 10000,
	})

	s.Equal(http.StatusForbidden, w.Code)
	s.mockShipmentSvc.AssertNotCalled(s.T(), "CreateShipment")
}

func (s *ShipmentHandlerTestSuite) TestCreateShipment_MissingDescriptionRejected() {
	_, token := s.actAs(domain.RoleAgent)

	w := s.do(http.MethodPost, "/api/v1/shipments", token, gin.H{
		"declaredValue": 10000,
	})

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockShipmentSvc.AssertNotCalled(s.T(), "CreateShipment")
}

func (s *ShipmentHandlerTestSuite) TestListShipments_PassesFilterParams() {
	identity, token := s.actAs(domain.RoleClient)
	expectedParams := dto.ListShipmentsParams{Status: "CUSTOMS", Search: "MSC", Page: 3, Limit: 10}
	s.mockShipmentSvc.On("ListShipments", mock.Anything, identity, expectedParams).
		Return([]domain.Shipment{*conakryShipment(), *conakryShipment()}, 41, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/shipments?status=CUSTOMS&search=MSC&page=3&limit=10", token, nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListShipmentsResponse
	s.decodeSuccess(w, &resp)
	s.Len(resp.Shipments, 2)
	s.Equal(3, resp.Pagination.Page)
	s.Equal(41, resp.Pagination.Total)
	s.Equal(5, resp.Pagination.TotalPages)
	s.mockShipmentSvc.AssertExpectations(s.T())
}

func (s *ShipmentHandlerTestSuite) TestListShipments_LimitCapRejected() {
	_, token := s.actAs(domain.RoleClient)

	w := s.do(http.MethodGet, "/api/v1/shipments?limit=500", token, nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockShipmentSvc.AssertNotCalled(s.T(), "ListShipments")
}

func (s *ShipmentHandlerTestSuite) TestGetShipment_Success() {
	identity, token := s.actAs(domain.RoleAgent)
	stored := conakryShipment()
	s.mockShipmentSvc.On("GetShipmentByID", mock.Anything, identity, stored.ShipmentID).
		Return(stored, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/shipments/"+stored.ShipmentID, token, nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ShipmentResponse
	s.decodeSuccess(w, &resp)
	s.Equal(stored.ShipmentID, resp.ShipmentID)
	s.Require().NotNil(resp.ClientName)
	s.Equal("Société Kaba Import", *resp.ClientName)
}

func (s *ShipmentHandlerTestSuite) TestGetShipment_NotFound() {
	identity, token := s.actAs(domain.RoleAgent)
	s.mockShipmentSvc.On("GetShipmentByID", mock.Anything, identity, "missing-id").
		Return(nil, apperrors.ErrNotFound).Once()

	w := s.do(http.MethodGet, "/api/v1/shipments/missing-id", token, nil)

	s.Equal(http.StatusNotFound, w.Code)
	var body failureEnvelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("resource not found", body.Message)
}

func (s *ShipmentHandlerTestSuite) TestUpdateShipment_StatusPatch() {
	identity, token := s.actAs(domain.RoleAgent)
	stored := conakryShipment()
	stored.Status = domain.StatusArrived

	s.mockShipmentSvc.On("UpdateShipment", mock.Anything, identity, stored.ShipmentID,
		mock.MatchedBy(func(req dto.UpdateShipmentRequest) bool {
			return req.Status != nil && *req.Status == "ARRIVED" &&
				req.StatusNote != nil && *req.StatusNote == "navire accosté"
		}),
	).Return(stored, nil).Once()

	w := s.do(http.MethodPatch, "/api/v1/shipments/"+stored.ShipmentID, token, gin.H{
		"status":     "ARRIVED",
		"statusNote": "navire accosté",
	})

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ShipmentResponse
	s.decodeSuccess(w, &resp)
	s.Equal("ARRIVED", resp.Status)
}

func (s *ShipmentHandlerTestSuite) TestUpdateShipment_ClosedConflicts() {
	identity, token := s.actAs(domain.RoleAgent)
	s.mockShipmentSvc.On("UpdateShipment", mock.Anything, identity, "closed-id", mock.AnythingOfType("dto.UpdateShipmentRequest")).
		Return(nil, apperrors.ErrShipmentClosed).Once()

	w := s.do(http.MethodPatch, "/api/v1/shipments/closed-id", token, gin.H{
		"description": "nouvelle description",
	})

	s.Equal(http.StatusConflict, w.Code)
	var body failureEnvelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("shipment can no longer be modified", body.Message)
}

func (s *ShipmentHandlerTestSuite) TestArchiveShipment_Success() {
	identity, token := s.actAs(domain.RoleAgent)
	s.mockShipmentSvc.On("ArchiveShipment", mock.Anything, identity, "ship-1").Return(nil).Once()

	w := s.do(http.MethodPost, "/api/v1/shipments/ship-1/archive", token, nil)

	s.Equal(http.StatusOK, w.Code)
	s.mockShipmentSvc.AssertExpectations(s.T())
}

func (s *ShipmentHandlerTestSuite) TestListTimeline_Success() {
	identity, token := s.actAs(domain.RoleClient)
	events := []domain.TimelineEvent{
		{EventID: uuid.NewString(), Status: domain.StatusDraft, ActorUserID: identity.UserID},
		{EventID: uuid.NewString(), Status: domain.StatusArrived, Note: "navire accosté", ActorUserID: identity.UserID},
	}
	s.mockShipmentSvc.On("ListTimeline", mock.Anything, identity, "ship-1").Return(events, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/shipments/ship-1/timeline", token, nil)

	s.Equal(http.StatusOK, w.Code)
	var resp []dto.TimelineEventResponse
	s.decodeSuccess(w, &resp)
	s.Require().Len(resp, 2)
	s.Equal("DRAFT", resp[0].Status)
	s.Equal("navire accosté", resp[1].Note)
}

func (s *ShipmentHandlerTestSuite) TestAddDocument_Created() {
	identity, token := s.actAs(domain.RoleAgent)
	expectedReq := dto.AddDocumentRequest{
		Name:    "Connaissement original",
		FileURL: "https://files.transit-gn.com/bl/TRG-20250114.pdf",
		DocType: "BL",
	}
	doc := &domain.Document{
		DocumentID: uuid.NewString(),
		ShipmentID: "ship-1",
		Name:       expectedReq.Name,
		FileURL:    expectedReq.FileURL,
		DocType:    expectedReq.DocType,
		UploadedBy: identity.UserID,
	}
	s.mockShipmentSvc.On("AddDocument", mock.Anything, identity, "ship-1", expectedReq).
		Return(doc, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/shipments/ship-1/documents", token, gin.H{
		"name":    expectedReq.Name,
		"fileURL": expectedReq.FileURL,
		"docType": expectedReq.DocType,
	})

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.DocumentResponse
	s.decodeSuccess(w, &resp)
	s.Equal(doc.DocumentID, resp.DocumentID)
}

func (s *ShipmentHandlerTestSuite) TestAddDocument_BadURLRejected() {
	_, token := s.actAs(domain.RoleAgent)

	w := s.do(http.MethodPost, "/api/v1/shipments/ship-1/documents", token, gin.H{
		"name":    "Connaissement",
		"fileURL": "not-a-url",
		"docType": "BL",
	})

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockShipmentSvc.AssertNotCalled(s.T(), "AddDocument")
}

func (s *ShipmentHandlerTestSuite) TestListDocuments_Success() {
	identity, token := s.actAs(domain.RoleClient)
	docs := []domain.Document{{DocumentID: uuid.NewString(), Name: "Facture", DocType: "INVOICE"}}
	s.mockShipmentSvc.On("ListDocuments", mock.Anything, identity, "ship-1").Return(docs, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/shipments/ship-1/documents", token, nil)

	s.Equal(http.StatusOK, w.Code)
	var resp []dto.DocumentResponse
	s.decodeSuccess(w, &resp)
	s.Len(resp, 1)
}

func (s *ShipmentHandlerTestSuite) TestRemoveDocument_Success() {
	identity, token := s.actAs(domain.RoleAgent)
	s.mockShipmentSvc.On("RemoveDocument", mock.Anything, identity, "ship-1", "doc-1").Return(nil).Once()

	w := s.do(http.MethodDelete, "/api/v1/shipments/ship-1/documents/doc-1", token, nil)

	s.Equal(http.StatusOK, w.Code)
	s.mockShipmentSvc.AssertExpectations(s.T())
}

// --- Run Test Suite ---

func TestShipmentHandler(t *testing.T) {
	suite.Run(t, new(ShipmentHandlerTestSuite))
}
