package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kushtati/TRANSG/internal/apperrors"
	"github.com/kushtati/TRANSG/internal/core/domain"
	portssvc "github.com/kushtati/TRANSG/internal/core/ports/services"
	"github.com/kushtati/TRANSG/internal/core/services"
	"github.com/stretchr/testify/suite"
)

// MockUserRepository lives in auth_service_test.go; this suite reuses it.

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestGetUserByID_Success() {
	ctx := context.Background()
	user := &domain.User{
		UserID:    uuid.NewString(),
		CompanyID: uuid.NewString(),
		Name:      "Mamadou Diallo",
		Email:     "mamadou@transit-gn.com",
		Role:      domain.RoleAgent,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	found, err := suite.service.GetUserByID(ctx, user.UserID)

	suite.Require().NoError(err)
	suite.Equal(user, found)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	found, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(found)
}

func (suite *UserServiceTestSuite) TestGetUserByEmail_NormalizesBeforeLookup() {
	ctx := context.Background()
	user := &domain.User{
		UserID: uuid.NewString(),
		Email:  "mamadou@transit-gn.com",
	}

	// The repo only ever sees the lower-cased, trimmed form.
	suite.mockUserRepo.On("FindUserByEmail", ctx, "mamadou@transit-gn.com").Return(user, nil).Once()

	found, err := suite.service.GetUserByEmail(ctx, "  Mamadou@Transit-GN.COM ")

	suite.Require().NoError(err)
	suite.Equal(user, found)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
