package services

import (
	portsrepo "github.com/kushtati/TRANSG/internal/core/ports/repositories"
	portssvc "github.com/kushtati/TRANSG/internal/core/ports/services"
	"github.com/kushtati/TRANSG/internal/platform/ai"
	"github.com/kushtati/TRANSG/internal/platform/config"
	"github.com/kushtati/TRANSG/internal/platform/mail"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, mailer mail.Mailer, aiClient *ai.MistralClient) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Readers first; the token and auth services depend on them.
	container.User = NewUserService(repos.UserRepo)
	container.Company = NewCompanyService(repos.CompanyRepo)

	container.Token = NewTokenService(cfg, container.User, repos.RefreshTokenRepo)
	container.Auth = NewAuthService(cfg, repos.UserRepo, repos.CompanyRepo, container.Token, mailer)

	container.Client = NewClientService(repos.ClientRepo)
	container.Shipment = NewShipmentService(repos.ShipmentRepo, repos.ClientRepo)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.ShipmentRepo)
	container.Assistant = NewAssistantService(aiClient)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AuthSvcFacade      = (*authService)(nil)
	_ portssvc.TokenSvcFacade     = (*tokenService)(nil)
	_ portssvc.ShipmentSvcFacade  = (*shipmentService)(nil)
	_ portssvc.ExpenseSvcFacade   = (*expenseService)(nil)
	_ portssvc.AssistantSvcFacade = (*assistantService)(nil)
)
