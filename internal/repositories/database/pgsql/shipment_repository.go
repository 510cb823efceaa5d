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

type PgxShipmentRepository struct {
	BaseRepository
}

func newPgxShipmentRepository(pool *pgxpool.Pool) portsrepo.ShipmentRepositoryFacade {
	return &PgxShipmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxShipmentRepository implements portsrepo.ShipmentRepositoryFacade
var _ portsrepo.ShipmentRepositoryFacade = (*PgxShipmentRepository)(nil)

// shipmentColumns is the SELECT list shared by the get and list queries. The
// trailing client_name comes from the LEFT JOIN on clients.
const shipmentColumns = `
		s.shipment_id, s.company_id, s.client_id, s.tracking_number, s.description,
		s.hs_code, s.bl_number, s.gross_weight_kg, s.volume_m3,
		s.declared_value, s.declared_currency, s.value_gnf,
		s.origin_port, s.discharge_port, s.customs_regime, s.status, s.eta,
		s.created_at, s.created_by, s.last_updated_at, s.last_updated_by,
		c.name AS client_name`

func scanShipmentRow(row pgx.Row) (*models.Shipment, error) {
	var m models.Shipment
	err := row.Scan(
		&m.ShipmentID,
		&m.CompanyID,
		&m.ClientID,
		&m.TrackingNumber,
		&m.Description,
		&m.HSCode,
		&m.BLNumber,
		&m.GrossWeightKg,
		&m.VolumeM3,
		&m.DeclaredValue,
		&m.DeclaredCurrency,
		&m.ValueGNF,
		&m.OriginPort,
		&m.DischargePort,
		&m.CustomsRegime,
		&m.Status,
		&m.ETA,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.ClientName,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveShipment persists the shipment, its containers and the initial timeline
// event in a single transaction.
func (r *PgxShipmentRepository) SaveShipment(ctx context.Context, shipment domain.Shipment, containers []domain.Container, event domain.TimelineEvent) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	modelShipment := mapping.ToModelShipment(shipment)
	shipmentQuery := `
		INSERT INTO shipments (
			shipment_id, company_id, client_id, tracking_number, description,
			hs_code, bl_number, gross_weight_kg, volume_m3,
			declared_value, declared_currency, value_gnf,
			origin_port, discharge_port, customs_regime, status, eta,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err = tx.Exec(ctx, shipmentQuery,
		modelShipment.ShipmentID,
		modelShipment.CompanyID,
		modelShipment.ClientID,
		modelShipment.TrackingNumber,
		modelShipment.Description,
		modelShipment.HSCode,
		modelShipment.BLNumber,
		modelShipment.GrossWeightKg,
		modelShipment.VolumeM3,
		modelShipment.DeclaredValue,
		modelShipment.DeclaredCurrency,
		modelShipment.ValueGNF,
		modelShipment.OriginPort,
		modelShipment.DischargePort,
		modelShipment.CustomsRegime,
		modelShipment.Status,
		modelShipment.ETA,
		modelShipment.CreatedAt,
		modelShipment.CreatedBy,
		modelShipment.LastUpdatedAt,
		modelShipment.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Either the tracking number collided or the ID did; the caller
			// retries with a fresh tracking number.
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert shipment "+modelShipment.ShipmentID, err)
	}

	if len(containers) > 0 {
		if err := insertContainersTx(ctx, tx, containers); err != nil {
			return err
		}
	}

	if err := insertTimelineEventTx(ctx, tx, event); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit shipment "+modelShipment.ShipmentID, err)
	}
	return nil
}

// UpdateShipment updates the mutable columns and, when event is non-nil,
// appends the status transition in the same transaction. Tracking numbers are
// immutable.
func (r *PgxShipmentRepository) UpdateShipment(ctx context.Context, shipment domain.Shipment, event *domain.TimelineEvent) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	modelShipment := mapping.ToModelShipment(shipment)
	query := `
		UPDATE shipments
		SET client_id = $1, description = $2, hs_code = $3, bl_number = $4,
		    gross_weight_kg = $5, volume_m3 = $6,
		    declared_value = $7, declared_currency = $8, value_gnf = $9,
		    origin_port = $10, discharge_port = $11, customs_regime = $12,
		    status = $13, eta = $14,
		    last_updated_at = $15, last_updated_by = $16
		WHERE shipment_id = $17 AND company_id = $18;
	`
	cmdTag, err := tx.Exec(ctx, query,
		modelShipment.ClientID,
		modelShipment.Description,
		modelShipment.HSCode,
		modelShipment.BLNumber,
		modelShipment.GrossWeightKg,
		modelShipment.VolumeM3,
		modelShipment.DeclaredValue,
		modelShipment.DeclaredCurrency,
		modelShipment.ValueGNF,
		modelShipment.OriginPort,
		modelShipment.DischargePort,
		modelShipment.CustomsRegime,
		modelShipment.Status,
		modelShipment.ETA,
		modelShipment.LastUpdatedAt,
		modelShipment.LastUpdatedBy,
		modelShipment.ShipmentID,
		modelShipment.CompanyID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update shipment "+modelShipment.ShipmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if event != nil {
		if err := insertTimelineEventTx(ctx, tx, *event); err != nil {
			return err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit shipment update "+modelShipment.ShipmentID, err)
	}
	return nil
}

// ReplaceContainers swaps the full container list of a shipment.
func (r *PgxShipmentRepository) ReplaceContainers(ctx context.Context, shipmentID string, containers []domain.Container) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM containers WHERE shipment_id = $1;`, shipmentID); err != nil {
		return apperrors.NewAppError(500, "failed to delete containers for shipment "+shipmentID, err)
	}

	if len(containers) > 0 {
		if err := insertContainersTx(ctx, tx, containers); err != nil {
			return err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit container replacement for shipment "+shipmentID, err)
	}
	return nil
}

func insertContainersTx(ctx context.Context, tx pgx.Tx, containers []domain.Container) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO containers (container_id, shipment_id, number, size_type, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, c := range containers {
		m := mapping.ToModelContainer(c)
		batch.Queue(query, m.ContainerID, m.ShipmentID, m.Number, m.SizeType, m.CreatedAt)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert containers", err)
	}
	return nil
}

func insertTimelineEventTx(ctx context.Context, tx pgx.Tx, event domain.TimelineEvent) error {
	m := mapping.ToModelTimelineEvent(event)
	query := `
		INSERT INTO timeline_events (event_id, shipment_id, status, note, actor_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := tx.Exec(ctx, query, m.EventID, m.ShipmentID, m.Status, m.Note, m.ActorUserID, m.CreatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to insert timeline event for shipment "+m.ShipmentID, err)
	}
	return nil
}

func (r *PgxShipmentRepository) FindShipmentByID(ctx context.Context, shipmentID string, companyID string) (*domain.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments s
		LEFT JOIN clients c ON c.client_id = s.client_id
		WHERE s.shipment_id = $1 AND s.company_id = $2;
	`
	modelShipment, err := scanShipmentRow(r.Pool.QueryRow(ctx, query, shipmentID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find shipment by ID %s: %w", shipmentID, err)
	}

	domainShipment := mapping.ToDomainShipment(*modelShipment)
	containers, err := r.findContainers(ctx, []string{shipmentID})
	if err != nil {
		return nil, err
	}
	domainShipment.Containers = containers[shipmentID]
	return &domainShipment, nil
}

func (r *PgxShipmentRepository) FindShipments(ctx context.Context, filter portsrepo.ShipmentListFilter) ([]domain.Shipment, int, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	baseQuery := `
		FROM shipments s
		LEFT JOIN clients c ON c.client_id = s.client_id
		WHERE s.company_id = $1`
	args := []interface{}{filter.CompanyID}
	argNum := 2

	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND s.status = $%d", argNum)
		args = append(args, string(*filter.Status))
		argNum++
	}

	if filter.Search != "" {
		baseQuery += fmt.Sprintf(" AND (s.tracking_number ILIKE $%d OR s.bl_number ILIKE $%d OR c.name ILIKE $%d)", argNum, argNum, argNum)
		args = append(args, "%"+filter.Search+"%")
		argNum++
	}

	var total int
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shipments: %w", err)
	}
	if total == 0 {
		return []domain.Shipment{}, 0, nil
	}

	baseQuery += " ORDER BY s.created_at DESC"
	baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, "SELECT "+shipmentColumns+" "+baseQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query shipments: %w", err)
	}
	defer rows.Close()

	modelShipments := []models.Shipment{}
	for rows.Next() {
		modelShipment, err := scanShipmentRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shipment row: %w", err)
		}
		modelShipments = append(modelShipments, *modelShipment)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating shipment rows: %w", rows.Err())
	}

	shipments := mapping.ToDomainShipmentSlice(modelShipments)

	// Attach containers for the whole page in one query.
	shipmentIDs := make([]string, 0, len(shipments))
	for _, s := range shipments {
		shipmentIDs = append(shipmentIDs, s.ShipmentID)
	}
	containersByShipment, err := r.findContainers(ctx, shipmentIDs)
	if err != nil {
		return nil, 0, err
	}
	for i := range shipments {
		shipments[i].Containers = containersByShipment[shipments[i].ShipmentID]
	}

	return shipments, total, nil
}

// findContainers loads containers for multiple shipments, grouped by shipment.
func (r *PgxShipmentRepository) findContainers(ctx context.Context, shipmentIDs []string) (map[string][]domain.Container, error) {
	result := make(map[string][]domain.Container)
	if len(shipmentIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT container_id, shipment_id, number, size_type, created_at
		FROM containers
		WHERE shipment_id = ANY($1)
		ORDER BY shipment_id, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, shipmentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query containers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Container
		if err := rows.Scan(&m.ContainerID, &m.ShipmentID, &m.Number, &m.SizeType, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan container row: %w", err)
		}
		result[m.ShipmentID] = append(result[m.ShipmentID], domain.Container{
			ContainerID: m.ContainerID,
			ShipmentID:  m.ShipmentID,
			Number:      m.Number,
			SizeType:    m.SizeType,
			CreatedAt:   m.CreatedAt,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating container rows: %w", rows.Err())
	}

	return result, nil
}

func (r *PgxShipmentRepository) FindTimelineEvents(ctx context.Context, shipmentID string) ([]domain.TimelineEvent, error) {
	query := `
		SELECT event_id, shipment_id, status, note, actor_user_id, created_at
		FROM timeline_events
		WHERE shipment_id = $1
		ORDER BY created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query timeline events: %w", err)
	}
	defer rows.Close()

	modelEvents := []models.TimelineEvent{}
	for rows.Next() {
		var m models.TimelineEvent
		if err := rows.Scan(&m.EventID, &m.ShipmentID, &m.Status, &m.Note, &m.ActorUserID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan timeline event row: %w", err)
		}
		modelEvents = append(modelEvents, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating timeline event rows: %w", rows.Err())
	}

	return mapping.ToDomainTimelineEventSlice(modelEvents), nil
}

func (r *PgxShipmentRepository) FindDocuments(ctx context.Context, shipmentID string) ([]domain.Document, error) {
	query := `
		SELECT document_id, shipment_id, name, file_url, doc_type, uploaded_by, created_at
		FROM documents
		WHERE shipment_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	modelDocs := []models.Document{}
	for rows.Next() {
		var m models.Document
		if err := rows.Scan(&m.DocumentID, &m.ShipmentID, &m.Name, &m.FileURL, &m.DocType, &m.UploadedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		modelDocs = append(modelDocs, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", rows.Err())
	}

	return mapping.ToDomainDocumentSlice(modelDocs), nil
}

func (r *PgxShipmentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	m := mapping.ToModelDocument(doc)
	query := `
        INSERT INTO documents (document_id, shipment_id, name, file_url, doc_type, uploaded_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.Pool.Exec(ctx, query, m.DocumentID, m.ShipmentID, m.Name, m.FileURL, m.DocType, m.UploadedBy, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (r *PgxShipmentRepository) DeleteDocument(ctx context.Context, documentID string, shipmentID string) error {
	query := `DELETE FROM documents WHERE document_id = $1 AND shipment_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, documentID, shipmentID)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
