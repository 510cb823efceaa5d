package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kushtati/TRANSG/internal/apperrors"
	"github.com/kushtati/TRANSG/internal/core/domain"
	portsrepo "github.com/kushtati/TRANSG/internal/core/ports/repositories"
	"github.com/kushtati/TRANSG/internal/models"
	"github.com/kushtati/TRANSG/internal/utils/mapping"
)

type PgxCompanyRepository struct {
	BaseRepository
	userRepo portsrepo.UserRepositoryFacade
}

// newPgxCompanyRepository creates a new repository for company data. It takes
// the user repository so registration can insert the first director inside the
// same transaction.
func newPgxCompanyRepository(pool *pgxpool.Pool, userRepo portsrepo.UserRepositoryFacade) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
		userRepo:       userRepo,
	}
}

// Ensure PgxCompanyRepository implements portsrepo.CompanyRepositoryFacade
var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

const insertCompanyQuery = `
        INSERT INTO companies (company_id, name, slug, email, phone, address, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `

func insertCompanyArgs(m models.Company) []interface{} {
	return []interface{}{
		m.CompanyID,
		m.Name,
		m.Slug,
		m.Email,
		m.Phone,
		m.Address,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	modelCompany := mapping.ToModelCompany(company)
	_, err := r.Pool.Exec(ctx, insertCompanyQuery, insertCompanyArgs(modelCompany)...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save company: %w", err)
	}
	return nil
}

// SaveCompanyWithDirector persists the company and its first DIRECTOR user in
// one transaction, so a failed user insert never leaves an ownerless company.
func (r *PgxCompanyRepository) SaveCompanyWithDirector(ctx context.Context, company domain.Company, director domain.User) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	modelCompany := mapping.ToModelCompany(company)
	if _, err := tx.Exec(ctx, insertCompanyQuery, insertCompanyArgs(modelCompany)...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert company "+modelCompany.CompanyID, err)
	}

	if err := r.userRepo.SaveUserInTx(ctx, tx, director); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit company registration", err)
	}
	return nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `
		SELECT company_id, name, slug, email, phone, address, created_at, created_by, last_updated_at, last_updated_by
		FROM companies
		WHERE company_id = $1;
	`
	modelCompany, err := scanCompanyRow(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by ID %s: %w", companyID, err)
	}

	domainCompany := mapping.ToDomainCompany(*modelCompany)
	return &domainCompany, nil
}

func (r *PgxCompanyRepository) FindCompanyBySlug(ctx context.Context, slug string) (*domain.Company, error) {
	query := `
		SELECT company_id, name, slug, email, phone, address, created_at, created_by, last_updated_at, last_updated_by
		FROM companies
		WHERE slug = $1;
	`
	modelCompany, err := scanCompanyRow(r.Pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by slug: %w", err)
	}

	domainCompany := mapping.ToDomainCompany(*modelCompany)
	return &domainCompany, nil
}

func scanCompanyRow(row pgx.Row) (*models.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID,
		&m.Name,
		&m.Slug,
		&m.Email,
		&m.Phone,
		&m.Address,
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
