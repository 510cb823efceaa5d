package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kushtati/TRANSG/internal/apperrors"
	"github.com/kushtati/TRANSG/internal/core/domain"
	portsrepo "github.com/kushtati/TRANSG/internal/core/ports/repositories"
	portssvc "github.com/kushtati/TRANSG/internal/core/ports/services"
	"github.com/kushtati/TRANSG/internal/dto"
	"github.com/kushtati/TRANSG/internal/platform/config"
	"github.com/kushtati/TRANSG/internal/platform/mail"
	"github.com/kushtati/TRANSG/internal/utils"
)

// authService implements AuthSvcFacade: registration, email verification,
// password login with lockout, and logout.
type authService struct {
	BaseService
	cfg         *config.Config
	userRepo    portsrepo.UserRepositoryFacade
	companyRepo portsrepo.CompanyRepositoryFacade
	tokenSvc    portssvc.TokenSvcFacade
	mailer      mail.Mailer
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, companyRepo portsrepo.CompanyRepositoryFacade, tokenSvc portssvc.TokenSvcFacade, mailer mail.Mailer) portssvc.AuthSvcFacade {
	return &authService{
		cfg:         cfg,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		tokenSvc:    tokenSvc,
		mailer:      mailer,
	}
}

// NormalizeEmail lower-cases and trims an email so lookups and uniqueness
// behave the same regardless of how the address was typed.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a company with its first DIRECTOR user and sends a
// verification code. If the email already belongs to an unverified account the
// pending registration is refreshed in place instead of failing, so repeated
// sign-up attempts behave identically whether or not the email was known.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := NormalizeEmail(req.Email)
	now := time.Now()

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		if existing.Verified {
			return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		}
		return s.refreshPendingRegistration(ctx, existing, req, now)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}
	slug, err := s.availableSlug(ctx, req.CompanyName)
	if err != nil {
		return nil, err
	}

	companyID := uuid.NewString()
	userID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	company := domain.Company{
		CompanyID:   companyID,
		Name:        strings.TrimSpace(req.CompanyName),
		Slug:        slug,
		Email:       email,
		Phone:       req.Phone,
		AuditFields: audit,
	}
	director := domain.User{
		UserID:             userID,
		CompanyID:          companyID,
		Name:               strings.TrimSpace(req.Name),
		Email:              email,
		PasswordHash:       passwordHash,
		Role:               domain.RoleDirector,
		Verified:           false,
		IsActive:           false, // activated on verification
		VerificationCode:   &code,
		VerificationSentAt: &now,
		AuditFields:        audit,
	}

	if err := s.companyRepo.SaveCompanyWithDirector(ctx, company, director); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race on email or slug; either way the caller retries.
			return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to save company and director: %w", err)
	}

	s.sendCode(ctx, director.Email, director.Name, code)
	s.LogInfo(ctx, "company registered", slog.String("company_id", companyID), slog.String("slug", slug))
	return &director, nil
}

// refreshPendingRegistration overwrites the name and password of an
// unverified account and issues a fresh code.
func (s *authService) refreshPendingRegistration(ctx context.Context, existing *domain.User, req dto.RegisterRequest, now time.Time) (*domain.User, error) {
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	existing.Name = strings.TrimSpace(req.Name)
	existing.PasswordHash = passwordHash
	existing.LastUpdatedAt = now
	existing.LastUpdatedBy = existing.UserID
	if err := s.userRepo.UpdateUser(ctx, *existing); err != nil {
		return nil, fmt.Errorf("failed to refresh pending registration: %w", err)
	}
	if err := s.userRepo.SetVerificationCode(ctx, existing.UserID, code, now); err != nil {
		return nil, fmt.Errorf("failed to store verification code: %w", err)
	}
	existing.VerificationCode = &code
	existing.VerificationSentAt = &now

	s.sendCode(ctx, existing.Email, existing.Name, code)
	s.LogInfo(ctx, "pending registration refreshed", slog.String("user_id", existing.UserID))
	return existing, nil
}

// availableSlug derives a URL slug from the company name, appending a numeric
// suffix until it no longer collides with an existing company.
func (s *authService) availableSlug(ctx context.Context, companyName string) (string, error) {
	base := utils.Slugify(companyName)
	candidate := base
	for i := 2; ; i++ {
		_, err := s.companyRepo.FindCompanyBySlug(ctx, candidate)
		if errors.Is(err, apperrors.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check slug availability: %w", err)
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// VerifyEmail confirms a pending code, activates the user and issues the
// first credential pair. Unknown emails and wrong codes both come back as
// ErrCodeInvalid so the endpoint cannot be used to probe accounts.
func (s *authService) VerifyEmail(ctx context.Context, email string, code string) (*domain.User, *domain.TokenPair, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrCodeInvalid
		}
		return nil, nil, fmt.Errorf("failed to load user for verification: %w", err)
	}
	if user.Verified {
		return nil, nil, apperrors.ErrAlreadyVerified
	}
	if user.VerificationCode == nil || user.VerificationSentAt == nil {
		return nil, nil, apperrors.ErrCodeInvalid
	}

	now := time.Now()
	if now.Sub(*user.VerificationSentAt) > s.cfg.VerificationCodeTTL {
		return nil, nil, apperrors.ErrCodeExpired
	}
	if *user.VerificationCode != code {
		return nil, nil, apperrors.ErrCodeInvalid
	}

	// Mint before persisting: the activation update and the refresh-token
	// insert commit as one unit, so a mint failure leaves the account pending
	// and a persist failure leaves no half-issued session.
	pair, stored, err := s.tokenSvc.MintPair(ctx, *user)
	if err != nil {
		return nil, nil, err
	}
	if err := s.userRepo.MarkVerifiedWithToken(ctx, user.UserID, now, stored); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyVerified) {
			return nil, nil, apperrors.ErrAlreadyVerified
		}
		return nil, nil, fmt.Errorf("failed to mark user verified: %w", err)
	}
	user.Verified = true
	user.IsActive = true
	user.VerificationCode = nil
	user.VerificationSentAt = nil
	user.LastUpdatedAt = now

	if mailErr := s.mailer.SendWelcome(ctx, user.Email, user.Name); mailErr != nil {
		s.LogError(ctx, mailErr, "failed to send welcome email")
	}
	s.LogInfo(ctx, "email verified", slog.String("user_id", user.UserID))
	return user, pair, nil
}

// ResendCode issues a fresh verification code for a pending account. It
// reports success for unknown and already verified emails alike.
func (s *authService) ResendCode(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load user for code resend: %w", err)
	}
	if user.Verified {
		return nil
	}

	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}
	if err := s.userRepo.SetVerificationCode(ctx, user.UserID, code, time.Now()); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	s.sendCode(ctx, user.Email, user.Name, code)
	return nil
}

// Login authenticates an email/password pair. Lockout is checked before the
// password so a locked account never leaks whether the password was right.
func (s *authService) Login(ctx context.Context, email string, password string) (*domain.User, *domain.TokenPair, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrUnauthorized
		}
		return nil, nil, fmt.Errorf("failed to load user for login: %w", err)
	}

	now := time.Now()
	if user.LockedUntil != nil && now.Before(*user.LockedUntil) {
		return nil, nil, &apperrors.LockedError{RetryAfter: user.LockedUntil.Sub(now)}
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		count, incErr := s.userRepo.IncrementFailedLogin(ctx, user.UserID)
		if incErr != nil {
			s.LogError(ctx, incErr, "failed to record login failure", slog.String("user_id", user.UserID))
			return nil, nil, apperrors.ErrUnauthorized
		}
		if count >= s.cfg.LockoutThreshold {
			if lockErr := s.userRepo.LockUntil(ctx, user.UserID, now.Add(s.cfg.LockoutDuration)); lockErr != nil {
				s.LogError(ctx, lockErr, "failed to lock account", slog.String("user_id", user.UserID))
				return nil, nil, apperrors.ErrUnauthorized
			}
			s.LogWarn(ctx, "account locked after repeated failures", slog.String("user_id", user.UserID), slog.Int("attempts", count))
			return nil, nil, &apperrors.LockedError{RetryAfter: s.cfg.LockoutDuration}
		}
		return nil, nil, apperrors.ErrUnauthorized
	}

	if !user.Verified {
		// Correct password but pending verification: re-issue a code so the
		// user can finish signup straight from the login screen.
		if code, codeErr := utils.GenerateVerificationCode(); codeErr == nil {
			if setErr := s.userRepo.SetVerificationCode(ctx, user.UserID, code, now); setErr != nil {
				s.LogError(ctx, setErr, "failed to store verification code on login", slog.String("user_id", user.UserID))
			} else {
				s.sendCode(ctx, user.Email, user.Name, code)
			}
		}
		return nil, nil, apperrors.ErrEmailNotVerified
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	pair, stored, err := s.tokenSvc.MintPair(ctx, *user)
	if err != nil {
		return nil, nil, err
	}
	if err := s.userRepo.RecordLoginWithToken(ctx, user.UserID, now, stored); err != nil {
		return nil, nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginAt = &now

	s.LogInfo(ctx, "user logged in", slog.String("user_id", user.UserID))
	return user, pair, nil
}

// Logout revokes every live refresh token of the user.
func (s *authService) Logout(ctx context.Context, userID string) error {
	return s.tokenSvc.RevokeAll(ctx, userID)
}

// sendCode delivers the verification email. Delivery problems are logged and
// swallowed; the account flow never fails because SMTP hiccupped.
func (s *authService) sendCode(ctx context.Context, email, name, code string) {
	if err := s.mailer.SendVerificationCode(ctx, email, name, code); err != nil {
		s.LogError(ctx, err, "failed to send verification email")
	}
}
