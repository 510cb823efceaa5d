package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kushtati/TRANSG/internal/apperrors"
	"github.com/kushtati/TRANSG/internal/core/domain"
	portsrepo "github.com/kushtati/TRANSG/internal/core/ports/repositories"
	"github.com/kushtati/TRANSG/internal/models"
	"github.com/kushtati/TRANSG/internal/utils/mapping"
)

type PgxUserRepository struct {
	BaseRepository
	tokenRepo portsrepo.RefreshTokenRepositoryFacade
}

// newPgxUserRepository creates a new repository for user data. It takes the
// refresh-token repository so the login and verification units can store the
// session credential inside the same transaction as the user-row update.
func newPgxUserRepository(pool *pgxpool.Pool, tokenRepo portsrepo.RefreshTokenRepositoryFacade) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
		tokenRepo:      tokenRepo,
	}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	modelUser := mapping.ToModelUser(user)
	_, err := r.Pool.Exec(ctx, insertUserQuery, insertUserArgs(modelUser)...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// SaveUserInTx persists a new user inside an already open transaction. Company
// registration uses it so the company and its first director commit together.
func (r *PgxUserRepository) SaveUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) error {
	modelUser := mapping.ToModelUser(user)
	_, err := tx.Exec(ctx, insertUserQuery, insertUserArgs(modelUser)...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user in tx: %w", err)
	}
	return nil
}

const insertUserQuery = `
        INSERT INTO users (
            user_id, company_id, name, email, password_hash, role,
            verified, is_active, verification_code, verification_sent_at,
            failed_login_attempts, locked_until, last_login_at,
            created_at, created_by, last_updated_at, last_updated_by
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
    `

func insertUserArgs(m models.User) []interface{} {
	return []interface{}{
		m.UserID,
		m.CompanyID,
		m.Name,
		m.Email,
		m.PasswordHash,
		m.Role,
		m.Verified,
		m.IsActive,
		m.VerificationCode,
		m.VerificationSentAt,
		m.FailedLoginAttempts,
		m.LockedUntil,
		m.LastLoginAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, company_id, name, email, password_hash, role,
		       verified, is_active, verification_code, verification_sent_at,
		       failed_login_attempts, locked_until, last_login_at,
		       created_at, created_by, last_updated_at, last_updated_by, deleted_at
		FROM users
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	modelUser, err := scanUserRow(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}

	domainUser := mapping.ToDomainUser(*modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT user_id, company_id, name, email, password_hash, role,
		       verified, is_active, verification_code, verification_sent_at,
		       failed_login_attempts, locked_until, last_login_at,
		       created_at, created_by, last_updated_at, last_updated_by, deleted_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL;
	`
	modelUser, err := scanUserRow(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	domainUser := mapping.ToDomainUser(*modelUser)
	return &domainUser, nil
}

func scanUserRow(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.CompanyID,
		&m.Name,
		&m.Email,
		&m.PasswordHash,
		&m.Role,
		&m.Verified,
		&m.IsActive,
		&m.VerificationCode,
		&m.VerificationSentAt,
		&m.FailedLoginAttempts,
		&m.LockedUntil,
		&m.LastLoginAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	modelUser := mapping.ToModelUser(user)
	query := `
        UPDATE users
        SET name = $1, password_hash = $2, last_updated_at = $3, last_updated_by = $4
        WHERE user_id = $5 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelUser.Name,
		modelUser.PasswordHash,
		modelUser.LastUpdatedAt,
		modelUser.LastUpdatedBy,
		modelUser.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

// IncrementFailedLogin bumps the failure counter in one statement and returns
// the new count, so concurrent bad attempts each observe their own value.
func (r *PgxUserRepository) IncrementFailedLogin(ctx context.Context, userID string) (int, error) {
	query := `
        UPDATE users
        SET failed_login_attempts = failed_login_attempts + 1
        WHERE user_id = $1 AND deleted_at IS NULL
        RETURNING failed_login_attempts;
    `
	var attempts int
	err := r.Pool.QueryRow(ctx, query, userID).Scan(&attempts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to increment failed login counter: %w", err)
	}
	return attempts, nil
}

func (r *PgxUserRepository) LockUntil(ctx context.Context, userID string, until time.Time) error {
	query := `
        UPDATE users
        SET locked_until = $1
        WHERE user_id = $2 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, until, userID)
	if err != nil {
		return fmt.Errorf("failed to lock user account: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RecordLoginWithToken clears the failure counter and lockout, stamps the
// login and stores the session's refresh token in one transaction, so an
// issued credential always has its matching login state.
func (r *PgxUserRepository) RecordLoginWithToken(ctx context.Context, userID string, lastLoginAt time.Time, token domain.RefreshToken) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	query := `
        UPDATE users
        SET failed_login_attempts = 0, locked_until = NULL, last_login_at = $1
        WHERE user_id = $2 AND deleted_at IS NULL;
    `
	cmdTag, err := tx.Exec(ctx, query, lastLoginAt, userID)
	if err != nil {
		return fmt.Errorf("failed to reset login state: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.tokenRepo.SaveRefreshTokenInTx(ctx, tx, token); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit login", err)
	}
	return nil
}

func (r *PgxUserRepository) SetVerificationCode(ctx context.Context, userID string, code string, sentAt time.Time) error {
	query := `
        UPDATE users
        SET verification_code = $1, verification_sent_at = $2
        WHERE user_id = $3 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, code, sentAt, userID)
	if err != nil {
		return fmt.Errorf("failed to set verification code: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkVerifiedWithToken flips the user to verified exactly once and stores
// the first session's refresh token in the same transaction. The verified =
// FALSE guard makes a concurrent second verification surface
// ErrAlreadyVerified instead of silently re-applying, so the losing attempt
// stores no credential.
func (r *PgxUserRepository) MarkVerifiedWithToken(ctx context.Context, userID string, verifiedAt time.Time, token domain.RefreshToken) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer r.Rollback(ctx, tx)

	query := `
        UPDATE users
        SET verified = TRUE, is_active = TRUE,
            verification_code = NULL, verification_sent_at = NULL,
            last_updated_at = $1
        WHERE user_id = $2 AND deleted_at IS NULL AND verified = FALSE;
    `
	cmdTag, err := tx.Exec(ctx, query, verifiedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAlreadyVerified
	}

	if err := r.tokenRepo.SaveRefreshTokenInTx(ctx, tx, token); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit verification", err)
	}
	return nil
}
