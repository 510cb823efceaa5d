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

type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepositoryFacade
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	modelClient := mapping.ToModelClient(client)
	query := `
        INSERT INTO clients (client_id, company_id, name, email, phone, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.Pool.Exec(ctx, query,
		modelClient.ClientID,
		modelClient.CompanyID,
		modelClient.Name,
		modelClient.Email,
		modelClient.Phone,
		modelClient.CreatedAt,
		modelClient.CreatedBy,
		modelClient.LastUpdatedAt,
		modelClient.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string, companyID string) (*domain.Client, error) {
	query := `
		SELECT client_id, company_id, name, email, phone, created_at, created_by, last_updated_at, last_updated_by
		FROM clients
		WHERE client_id = $1 AND company_id = $2;
	`
	var m models.Client
	err := r.Pool.QueryRow(ctx, query, clientID, companyID).Scan(
		&m.ClientID,
		&m.CompanyID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}

	domainClient := mapping.ToDomainClient(m)
	return &domainClient, nil
}

func (r *PgxClientRepository) FindClients(ctx context.Context, companyID string, limit int, offset int) ([]domain.Client, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM clients WHERE company_id = $1;`
	if err := r.Pool.QueryRow(ctx, countQuery, companyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}
	if total == 0 {
		return []domain.Client{}, 0, nil
	}

	query := `
        SELECT client_id, company_id, name, email, phone, created_at, created_by, last_updated_at, last_updated_by
        FROM clients
        WHERE company_id = $1
        ORDER BY name ASC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.Pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	modelClients := []models.Client{}
	for rows.Next() {
		var m models.Client
		err := rows.Scan(
			&m.ClientID,
			&m.CompanyID,
			&m.Name,
			&m.Email,
			&m.Phone,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan client row: %w", err)
		}
		modelClients = append(modelClients, m)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating client rows: %w", rows.Err())
	}

	return mapping.ToDomainClientSlice(modelClients), total, nil
}
