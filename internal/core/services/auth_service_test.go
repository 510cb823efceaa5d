package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kushtati/TRANSG/internal/apperrors"
	"github.com/kushtati/TRANSG/internal/core/domain"
	portsrepo "github.com/kushtati/TRANSG/internal/core/ports/repositories"
	portssvc "github.com/kushtati/TRANSG/internal/core/ports/services"
	"github.com/kushtati/TRANSG/internal/core/services"
	"github.com/kushtati/TRANSG/internal/dto"
	"github.com/kushtati/TRANSG/internal/platform/config"
	"github.com/kushtati/TRANSG/internal/platform/mail"
	"github.com/kushtati/TRANSG/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
	FindUserByIDFn          func(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmailFn       func(ctx context.Context, email string) (*domain.User, error)
	SaveUserFn              func(ctx context.Context, user domain.User) error
	UpdateUserFn            func(ctx context.Context, user domain.User) error
	IncrementFailedLoginFn  func(ctx context.Context, userID string) (int, error)
	LockUntilFn             func(ctx context.Context, userID string, until time.Time) error
	RecordLoginWithTokenFn  func(ctx context.Context, userID string, lastLoginAt time.Time, token domain.RefreshToken) error
	SetVerificationCodeFn   func(ctx context.Context, userID string, code string, sentAt time.Time) error
	MarkVerifiedWithTokenFn func(ctx context.Context, userID string, verifiedAt time.Time, token domain.RefreshToken) error
	SaveUserInTxFn          func(ctx context.Context, tx pgx.Tx, user domain.User) error
}

// Ensure MockUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindUserByEmailFn != nil {
		return m.FindUserByEmailFn(ctx, email)
	}
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	if m.SaveUserFn != nil {
		return m.SaveUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementFailedLogin(ctx context.Context, userID string) (int, error) {
	if m.IncrementFailedLoginFn != nil {
		return m.IncrementFailedLoginFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) LockUntil(ctx context.Context, userID string, until time.Time) error {
	if m.LockUntilFn != nil {
		return m.LockUntilFn(ctx, userID, until)
	}
	args := m.Called(ctx, userID, until)
	return args.Error(0)
}

func (m *MockUserRepository) RecordLoginWithToken(ctx context.Context, userID string, lastLoginAt time.Time, token domain.RefreshToken) error {
	if m.RecordLoginWithTokenFn != nil {
		return m.RecordLoginWithTokenFn(ctx, userID, lastLoginAt, token)
	}
	args := m.Called(ctx, userID, lastLoginAt, token)
	return args.Error(0)
}

func (m *MockUserRepository) SetVerificationCode(ctx context.Context, userID string, code string, sentAt time.Time) error {
	if m.SetVerificationCodeFn != nil {
		return m.SetVerificationCodeFn(ctx, userID, code, sentAt)
	}
	args := m.Called(ctx, userID, code, sentAt)
	return args.Error(0)
}

func (m *MockUserRepository) MarkVerifiedWithToken(ctx context.Context, userID string, verifiedAt time.Time, token domain.RefreshToken) error {
	if m.MarkVerifiedWithTokenFn != nil {
		return m.MarkVerifiedWithTokenFn(ctx, userID, verifiedAt, token)
	}
	args := m.Called(ctx, userID, verifiedAt, token)
	return args.Error(0)
}

func (m *MockUserRepository) SaveUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) error {
	if m.SaveUserInTxFn != nil {
		return m.SaveUserInTxFn(ctx, tx, user)
	}
	args := m.Called(ctx, tx, user)
	return args.Error(0)
}

// --- Mock CompanyRepository ---
type MockCompanyRepository struct {
	mock.Mock
}

// Ensure MockCompanyRepository implements portsrepo.CompanyRepositoryFacade
var _ portsrepo.CompanyRepositoryFacade = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindCompanyBySlug(ctx context.Context, slug string) (*domain.Company, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) SaveCompanyWithDirector(ctx context.Context, company domain.Company, director domain.User) error {
	args := m.Called(ctx, company, director)
	return args.Error(0)
}

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

// Ensure MockTokenService implements portssvc.TokenSvcFacade
var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

func (m *MockTokenService) MintPair(ctx context.Context, user domain.User) (*domain.TokenPair, domain.RefreshToken, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, domain.RefreshToken{}, args.Error(2)
	}
	return args.Get(0).(*domain.TokenPair), args.Get(1).(domain.RefreshToken), args.Error(2)
}

func (m *MockTokenService) RefreshAccess(ctx context.Context, refreshToken string) (string, time.Time, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) RevokeAll(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock Mailer ---
type MockMailer struct {
	mock.Mock
}

// Ensure MockMailer implements mail.Mailer
var _ mail.Mailer = (*MockMailer)(nil)

func (m *MockMailer) SendVerificationCode(ctx context.Context, to string, name string, code string) error {
	args := m.Called(ctx, to, name, code)
	return args.Error(0)
}

func (m *MockMailer) SendWelcome(ctx context.Context, to string, name string) error {
	args := m.Called(ctx, to, name)
	return args.Error(0)
}

// --- Test Suite ---
type AuthServiceTestSuite struct {
	suite.Suite
	cfg             *config.Config
	mockUserRepo    *MockUserRepository
	mockCompanyRepo *MockCompanyRepository
	mockTokenSvc    *MockTokenService
	mockMailer      *MockMailer
	service         portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		LockoutThreshold:    5,
		LockoutDuration:     15 * time.Minute,
		VerificationCodeTTL: 15 * time.Minute,
	}
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockTokenSvc = new(MockTokenService)
	suite.mockMailer = new(MockMailer)
	suite.service = services.NewAuthService(suite.cfg, suite.mockUserRepo, suite.mockCompanyRepo, suite.mockTokenSvc, suite.mockMailer)
}

// verifiedUser builds a verified, active user whose password hash matches the
// given plaintext.
func (suite *AuthServiceTestSuite) verifiedUser(email, password string) *domain.User {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.User{
		UserID:       uuid.NewString(),
		CompanyID:    uuid.NewString(),
		Name:         "Mamadou Diallo",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleDirector,
		Verified:     true,
		IsActive:     true,
	}
}

// --- Register Tests ---

func (suite *AuthServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		CompanyName: "Guinée Transit",
		Name:        "Mamadou Diallo",
		Email:       " Mamadou@Transit-GN.com ",
		Password:    "secret-pass-123",
		Phone:       "+224 622 00 11 22",
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "mamadou@transit-gn.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCompanyRepo.On("FindCompanyBySlug", ctx, "guinée-transit").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCompanyRepo.On("SaveCompanyWithDirector", ctx,
		mock.MatchedBy(func(company domain.Company) bool {
			return company.Name == "Guinée Transit" && company.Slug == "guinée-transit" && company.Email == "mamadou@transit-gn.com"
		}),
		mock.MatchedBy(func(director domain.User) bool {
			return director.Role == domain.RoleDirector &&
				!director.Verified && !director.IsActive &&
				director.VerificationCode != nil && len(*director.VerificationCode) == 6
		}),
	).Return(nil).Once()
	suite.mockMailer.On("SendVerificationCode", ctx, "mamadou@transit-gn.com", "Mamadou Diallo", mock.AnythingOfType("string")).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal("mamadou@transit-gn.com", user.Email)
	suite.Equal(domain.RoleDirector, user.Role)
	suite.False(user.Verified)
	suite.False(user.IsActive)
	suite.NotEmpty(user.UserID)
	suite.NotEmpty(user.CompanyID)
	suite.NotEqual(req.Password, user.PasswordHash)
	suite.True(utils.CheckPasswordHash(req.Password, user.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockCompanyRepo.AssertExpectations(suite.T())
	suite.mockMailer.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_VerifiedEmailReturnsDuplicate() {
	ctx := context.Background()
	existing := suite.verifiedUser("taken@transit-gn.com", "old-password-1")

	suite.mockUserRepo.On("FindUserByEmail", ctx, "taken@transit-gn.com").Return(existing, nil).Once()

	user, err := suite.service.Register(ctx, dto.RegisterRequest{
		CompanyName: "Conakry Cargo",
		Name:        "Aissatou Barry",
		Email:       "taken@transit-gn.com",
		Password:    "new-password-1",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "SaveCompanyWithDirector", mock.Anything, mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_PendingEmailRefreshesRegistration() {
	ctx := context.Background()
	oldCode := "111111"
	sentAt := time.Now().Add(-10 * time.Minute)
	pending := &domain.User{
		UserID:             uuid.NewString(),
		CompanyID:          uuid.NewString(),
		Name:               "Old Name",
		Email:              "pending@transit-gn.com",
		PasswordHash:       "$2a$10$stalestalestalestalestale",
		Role:               domain.RoleDirector,
		Verified:           false,
		VerificationCode:   &oldCode,
		VerificationSentAt: &sentAt,
	}

	var storedCode string
	// Register refreshes the pending user in place through the pointer the
	// mock returns, so capture the stale hash before it is overwritten.
	staleHash := pending.PasswordHash
	suite.mockUserRepo.On("FindUserByEmail", ctx, "pending@transit-gn.com").Return(pending, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == pending.UserID && u.Name == "Aissatou Barry" && u.PasswordHash != staleHash
	})).Return(nil).Once()
	suite.mockUserRepo.SetVerificationCodeFn = func(ctx context.Context, userID string, code string, sentAt time.Time) error {
		storedCode = code
		return nil
	}
	suite.mockMailer.On("SendVerificationCode", ctx, "pending@transit-gn.com", "Aissatou Barry", mock.AnythingOfType("string")).Return(nil).Once()

	user, err := suite.service.Register(ctx, dto.RegisterRequest{
		CompanyName: "Conakry Cargo",
		Name:        "Aissatou Barry",
		Email:       "pending@transit-gn.com",
		Password:    "fresh-password-1",
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(pending.UserID, user.UserID)
	suite.Len(storedCode, 6)
	suite.NotEqual(oldCode, storedCode)
	// No second company for a refreshed registration.
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "SaveCompanyWithDirector", mock.Anything, mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockMailer.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_SlugCollisionGetsSuffix() {
	ctx := context.Background()
	taken := &domain.Company{CompanyID: uuid.NewString(), Slug: "conakry-cargo"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@cargo-gn.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCompanyRepo.On("FindCompanyBySlug", ctx, "conakry-cargo").Return(taken, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyBySlug", ctx, "conakry-cargo-2").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCompanyRepo.On("SaveCompanyWithDirector", ctx,
		mock.MatchedBy(func(company domain.Company) bool { return company.Slug == "conakry-cargo-2" }),
		mock.AnythingOfType("domain.User"),
	).Return(nil).Once()
	suite.mockMailer.On("SendVerificationCode", ctx, "new@cargo-gn.com", "Ibrahima Sow", mock.AnythingOfType("string")).Return(nil).Once()

	user, err := suite.service.Register(ctx, dto.RegisterRequest{
		CompanyName: "Conakry Cargo",
		Name:        "Ibrahima Sow",
		Email:       "new@cargo-gn.com",
		Password:    "secret-pass-123",
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.mockCompanyRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_MailFailureDoesNotFailRegistration() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "offline@transit-gn.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCompanyRepo.On("FindCompanyBySlug", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCompanyRepo.On("SaveCompanyWithDirector", ctx, mock.AnythingOfType("domain.Company"), mock.AnythingOfType("domain.User")).Return(nil).Once()
	suite.mockMailer.On("SendVerificationCode", ctx, "offline@transit-gn.com", "Fatoumata Camara", mock.AnythingOfType("string")).Return(assert.AnError).Once()

	user, err := suite.service.Register(ctx, dto.RegisterRequest{
		CompanyName: "Camara Logistics",
		Name:        "Fatoumata Camara",
		Email:       "offline@transit-gn.com",
		Password:    "secret-pass-123",
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.mockMailer.AssertExpectations(suite.T())
}

// --- VerifyEmail Tests ---

func (suite *AuthServiceTestSuite) TestVerifyEmail_Success() {
	ctx := context.Background()
	code := "123456"
	sentAt := time.Now().Add(-1 * time.Minute)
	user := &domain.User{
		UserID:             uuid.NewString(),
		CompanyID:          uuid.NewString(),
		Name:               "Mamadou Diallo",
		Email:              "mamadou@transit-gn.com",
		Role:               domain.RoleDirector,
		Verified:           false,
		IsActive:           false,
		VerificationCode:   &code,
		VerificationSentAt: &sentAt,
	}
	pair := &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}
	stored := domain.RefreshToken{TokenID: uuid.NewString(), UserID: user.UserID, TokenHash: "stored-hash"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "mamadou@transit-gn.com").Return(user, nil).Once()
	suite.mockTokenSvc.On("MintPair", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == user.UserID && u.CompanyID == user.CompanyID && u.Role == domain.RoleDirector
	})).Return(pair, stored, nil).Once()
	// The minted row rides into the verification transaction unchanged.
	suite.mockUserRepo.On("MarkVerifiedWithToken", ctx, user.UserID, mock.AnythingOfType("time.Time"), stored).Return(nil).Once()
	suite.mockMailer.On("SendWelcome", ctx, "mamadou@transit-gn.com", "Mamadou Diallo").Return(nil).Once()

	verified, gotPair, err := suite.service.VerifyEmail(ctx, "Mamadou@Transit-GN.com", code)

	suite.Require().NoError(err)
	suite.Require().NotNil(verified)
	suite.True(verified.Verified)
	suite.True(verified.IsActive)
	suite.Nil(verified.VerificationCode)
	suite.Equal(pair, gotPair)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockTokenSvc.AssertExpectations(suite.T())
	suite.mockMailer.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestVerifyEmail_WrongCode() {
	ctx := context.Background()
	code := "123456"
	sentAt := time.Now().Add(-1 * time.Minute)
	user := &domain.User{
		UserID:             uuid.NewString(),
		Email:              "mamadou@transit-gn.com",
		Verified:           false,
		VerificationCode:   &code,
		VerificationSentAt: &sentAt,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "mamadou@transit-gn.com").Return(user, nil).Once()

	_, _, err := suite.service.VerifyEmail(ctx, "mamadou@transit-gn.com", "654321")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCodeInvalid)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkVerifiedWithToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestVerifyEmail_ExpiredCode() {
	ctx := context.Background()
	code := "123456"
	sentAt := time.Now().Add(-16 * time.Minute) // TTL is 15m in SetupTest
	user := &domain.User{
		UserID:             uuid.NewString(),
		Email:              "mamadou@transit-gn.com",
		Verified:           false,
		VerificationCode:   &code,
		VerificationSentAt: &sentAt,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "mamadou@transit-gn.com").Return(user, nil).Once()

	_, _, err := suite.service.VerifyEmail(ctx, "mamadou@transit-gn.com", code)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCodeExpired)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkVerifiedWithToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestVerifyEmail_UnknownEmailReadsAsInvalidCode() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@transit-gn.com").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.VerifyEmail(ctx, "ghost@transit-gn.com", "123456")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCodeInvalid)
}

func (suite *AuthServiceTestSuite) TestVerifyEmail_AlreadyVerified() {
	ctx := context.Background()
	user := suite.verifiedUser("done@transit-gn.com", "secret-pass-123")

	suite.mockUserRepo.On("FindUserByEmail", ctx, "done@transit-gn.com").Return(user, nil).Once()

	_, _, err := suite.service.VerifyEmail(ctx, "done@transit-gn.com", "123456")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyVerified)
}

func (suite *AuthServiceTestSuite) TestVerifyEmail_WelcomeMailFailureIsSwallowed() {
	ctx := context.Background()
	code := "123456"
	sentAt := time.Now().Add(-1 * time.Minute)
	user := &domain.User{
		UserID:             uuid.NewString(),
		Name:               "Mamadou Diallo",
		Email:              "mamadou@transit-gn.com",
		Verified:           false,
		VerificationCode:   &code,
		VerificationSentAt: &sentAt,
	}
	pair := &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "mamadou@transit-gn.com").Return(user, nil).Once()
	suite.mockTokenSvc.On("MintPair", ctx, mock.AnythingOfType("domain.User")).Return(pair, domain.RefreshToken{}, nil).Once()
	suite.mockUserRepo.On("MarkVerifiedWithToken", ctx, user.UserID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("domain.RefreshToken")).Return(nil).Once()
	suite.mockMailer.On("SendWelcome", ctx, "mamadou@transit-gn.com", "Mamadou Diallo").Return(assert.AnError).Once()

	verified, gotPair, err := suite.service.VerifyEmail(ctx, "mamadou@transit-gn.com", code)

	suite.Require().NoError(err)
	suite.NotNil(verified)
	suite.Equal(pair, gotPair)
}

func (suite *AuthServiceTestSuite) TestVerifyEmail_MintFailureLeavesAccountPending() {
	ctx := context.Background()
	code := "123456"
	sentAt := time.Now().Add(-1 * time.Minute)
	user := &domain.User{
		UserID:             uuid.NewString(),
		Email:              "mamadou@transit-gn.com",
		Verified:           false,
		VerificationCode:   &code,
		VerificationSentAt: &sentAt,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "mamadou@transit-gn.com").Return(user, nil).Once()
	suite.mockTokenSvc.On("MintPair", ctx, mock.AnythingOfType("domain.User")).Return(nil, domain.RefreshToken{}, assert.AnError).Once()

	_, _, err := suite.service.VerifyEmail(ctx, "mamadou@transit-gn.com", code)

	suite.Require().Error(err)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkVerifiedWithToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockMailer.AssertNotCalled(suite.T(), "SendWelcome", mock.Anything, mock.Anything, mock.Anything)
}

// --- ResendCode Tests ---

func (suite *AuthServiceTestSuite) TestResendCode_PendingAccount() {
	ctx := context.Background()
	oldCode := "111111"
	sentAt := time.Now().Add(-20 * time.Minute)
	user := &domain.User{
		UserID:             uuid.NewString(),
		Name:               "Mamadou Diallo",
		Email:              "mamadou@transit-gn.com",
		Verified:           false,
		VerificationCode:   &oldCode,
		VerificationSentAt: &sentAt,
	}

	var storedCode string
	suite.mockUserRepo.On("FindUserByEmail", ctx, "mamadou@transit-gn.com").Return(user, nil).Once()
	suite.mockUserRepo.SetVerificationCodeFn = func(ctx context.Context, userID string, code string, sentAt time.Time) error {
		storedCode = code
		return nil
	}
	suite.mockMailer.On("SendVerificationCode", ctx, "mamadou@transit-gn.com", "Mamadou Diallo", mock.AnythingOfType("string")).Return(nil).Once()

	err := suite.service.ResendCode(ctx, "mamadou@transit-gn.com")

	suite.Require().NoError(err)
	suite.Len(storedCode, 6)
	suite.mockMailer.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestResendCode_UnknownEmailReportsSuccess() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@transit-gn.com").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ResendCode(ctx, "ghost@transit-gn.com")

	suite.Require().NoError(err)
	suite.mockMailer.AssertNotCalled(suite.T(), "SendVerificationCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestResendCode_VerifiedAccountReportsSuccess() {
	ctx := context.Background()
	user := suite.verifiedUser("done@transit-gn.com", "secret-pass-123")

	suite.mockUserRepo.On("FindUserByEmail", ctx, "done@transit-gn.com").Return(user, nil).Once()

	err := suite.service.ResendCode(ctx, "done@transit-gn.com")

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SetVerificationCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockMailer.AssertNotCalled(suite.T(), "SendVerificationCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Login Tests ---

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	password := "secret-pass-123"
	user := suite.verifiedUser("mamadou@transit-gn.com", password)
	pair := &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}
	stored := domain.RefreshToken{TokenID: uuid.NewString(), UserID: user.UserID, TokenHash: "stored-hash"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "mamadou@transit-gn.com").Return(user, nil).Once()
	suite.mockTokenSvc.On("MintPair", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == user.UserID
	})).Return(pair, stored, nil).Once()
	suite.mockUserRepo.On("RecordLoginWithToken", ctx, user.UserID, mock.AnythingOfType("time.Time"), stored).Return(nil).Once()

	loggedIn, gotPair, err := suite.service.Login(ctx, " Mamadou@Transit-GN.com", password)

	suite.Require().NoError(err)
	suite.Require().NotNil(loggedIn)
	suite.Equal(pair, gotPair)
	suite.Zero(loggedIn.FailedLoginAttempts)
	suite.Nil(loggedIn.LockedUntil)
	suite.NotNil(loggedIn.LastLoginAt)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockTokenSvc.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@transit-gn.com").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.Login(ctx, "ghost@transit-gn.com", "whatever-pass")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPasswordCountsFailure() {
	ctx := context.Background()
	user := suite.verifiedUser("mamadou@transit-gn.com", "right-password-1")

	suite.mockUserRepo.On("FindUserByEmail", ctx, "mamadou@transit-gn.com").Return(user, nil).Once()
	suite.mockUserRepo.On("IncrementFailedLogin", ctx, user.UserID).Return(1, nil).Once()

	_, _, err := suite.service.Login(ctx, "mamadou@transit-gn.com", "wrong-password-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "LockUntil", mock.Anything, mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_LocksAtThreshold() {
	ctx := context.Background()
	user := suite.verifiedUser("mamadou@transit-gn.com", "right-password-1")
	before := time.Now()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "mamadou@transit-gn.com").Return(user, nil).Once()
	suite.mockUserRepo.On("IncrementFailedLogin", ctx, user.UserID).Return(5, nil).Once()
	suite.mockUserRepo.On("LockUntil", ctx, user.UserID, mock.MatchedBy(func(until time.Time) bool {
		return !until.Before(before.Add(suite.cfg.LockoutDuration))
	})).Return(nil).Once()

	_, _, err := suite.service.Login(ctx, "mamadou@transit-gn.com", "wrong-password-1")

	suite.Require().Error(err)
	var locked *apperrors.LockedError
	suite.Require().ErrorAs(err, &locked)
	suite.Equal(15, locked.RetryAfterMinutes())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_LockedAccountRejectsBeforePasswordCheck() {
	ctx := context.Background()
	user := suite.verifiedUser("mamadou@transit-gn.com", "right-password-1")
	lockedUntil := time.Now().Add(10 * time.Minute)
	user.LockedUntil = &lockedUntil
	user.FailedLoginAttempts = 5

	suite.mockUserRepo.On("FindUserByEmail", ctx, "mamadou@transit-gn.com").Return(user, nil).Once()

	// Even the correct password is rejected while the lock holds.
	_, _, err := suite.service.Login(ctx, "mamadou@transit-gn.com", "right-password-1")

	suite.Require().Error(err)
	var locked *apperrors.LockedError
	suite.Require().ErrorAs(err, &locked)
	suite.Equal(10, locked.RetryAfterMinutes())
	suite.mockUserRepo.AssertNotCalled(suite.T(), "IncrementFailedLogin", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_ExpiredLockAdmitsCorrectPassword() {
	ctx := context.Background()
	password := "right-password-1"
	user := suite.verifiedUser("mamadou@transit-gn.com", password)
	lockedUntil := time.Now().Add(-1 * time.Minute)
	user.LockedUntil = &lockedUntil
	user.FailedLoginAttempts = 5
	pair := &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "mamadou@transit-gn.com").Return(user, nil).Once()
	suite.mockTokenSvc.On("MintPair", ctx, mock.AnythingOfType("domain.User")).Return(pair, domain.RefreshToken{}, nil).Once()
	suite.mockUserRepo.On("RecordLoginWithToken", ctx, user.UserID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("domain.RefreshToken")).Return(nil).Once()

	loggedIn, _, err := suite.service.Login(ctx, "mamadou@transit-gn.com", password)

	suite.Require().NoError(err)
	suite.Zero(loggedIn.FailedLoginAttempts)
	suite.Nil(loggedIn.LockedUntil)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_UnverifiedReissuesCode() {
	ctx := context.Background()
	password := "right-password-1"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	user := &domain.User{
		UserID:       uuid.NewString(),
		Name:         "Mamadou Diallo",
		Email:        "mamadou@transit-gn.com",
		PasswordHash: hash,
		Verified:     false,
	}

	var storedCode string
	suite.mockUserRepo.On("FindUserByEmail", ctx, "mamadou@transit-gn.com").Return(user, nil).Once()
	suite.mockUserRepo.SetVerificationCodeFn = func(ctx context.Context, userID string, code string, sentAt time.Time) error {
		storedCode = code
		return nil
	}
	suite.mockMailer.On("SendVerificationCode", ctx, "mamadou@transit-gn.com", "Mamadou Diallo", mock.AnythingOfType("string")).Return(nil).Once()

	_, _, err = suite.service.Login(ctx, "mamadou@transit-gn.com", password)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrEmailNotVerified)
	suite.Len(storedCode, 6)
	suite.mockMailer.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_DisabledAccount() {
	ctx := context.Background()
	password := "right-password-1"
	user := suite.verifiedUser("mamadou@transit-gn.com", password)
	user.IsActive = false

	suite.mockUserRepo.On("FindUserByEmail", ctx, "mamadou@transit-gn.com").Return(user, nil).Once()

	_, _, err := suite.service.Login(ctx, "mamadou@transit-gn.com", password)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountDisabled)
	suite.mockTokenSvc.AssertNotCalled(suite.T(), "MintPair", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_PersistFailureSurfacesError() {
	ctx := context.Background()
	password := "right-password-1"
	user := suite.verifiedUser("mamadou@transit-gn.com", password)
	pair := &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "mamadou@transit-gn.com").Return(user, nil).Once()
	suite.mockTokenSvc.On("MintPair", ctx, mock.AnythingOfType("domain.User")).Return(pair, domain.RefreshToken{}, nil).Once()
	suite.mockUserRepo.On("RecordLoginWithToken", ctx, user.UserID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("domain.RefreshToken")).Return(assert.AnError).Once()

	loggedIn, gotPair, err := suite.service.Login(ctx, "mamadou@transit-gn.com", password)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Nil(loggedIn)
	suite.Nil(gotPair)
}

// --- Logout Tests ---

func (suite *AuthServiceTestSuite) TestLogout_RevokesAllTokens() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockTokenSvc.On("RevokeAll", ctx, userID).Return(nil).Once()

	err := suite.service.Logout(ctx, userID)

	suite.Require().NoError(err)
	suite.mockTokenSvc.AssertExpectations(suite.T())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "mamadou@transit-gn.com", services.NormalizeEmail("  Mamadou@Transit-GN.COM "))
	assert.Equal(t, "a@b.co", services.NormalizeEmail("a@b.co"))
}

// --- Run Suite ---
func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
