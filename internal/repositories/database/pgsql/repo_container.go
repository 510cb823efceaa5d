package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/kushtati/TRANSG/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	refreshTokenRepo := newPgxRefreshTokenRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool, refreshTokenRepo)
	companyRepo := newPgxCompanyRepository(dbPool, userRepo)
	clientRepo := newPgxClientRepository(dbPool)
	shipmentRepo := newPgxShipmentRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CompanyRepo:      companyRepo,
		UserRepo:         userRepo,
		RefreshTokenRepo: refreshTokenRepo,
		ClientRepo:       clientRepo,
		ShipmentRepo:     shipmentRepo,
		ExpenseRepo:      expenseRepo,
	}
}
