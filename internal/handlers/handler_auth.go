package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kushtati/TRANSG/internal/apperrors"
	"github.com/kushtati/TRANSG/internal/core/domain"
	portssvc "github.com/kushtati/TRANSG/internal/core/ports/services"
	"github.com/kushtati/TRANSG/internal/dto"
	"github.com/kushtati/TRANSG/internal/middleware"
	"github.com/kushtati/TRANSG/internal/platform/config"
)

// authHandler handles registration, verification and session endpoints.
type authHandler struct {
	cfg        *config.Config
	authSvc    portssvc.AuthSvcFacade
	tokenSvc   portssvc.TokenSvcFacade
	userSvc    portssvc.UserSvcFacade
	companySvc portssvc.CompanySvcFacade
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(cfg *config.Config, services *portssvc.ServiceContainer) *authHandler {
	return &authHandler{
		cfg:        cfg,
		authSvc:    services.Auth,
		tokenSvc:   services.Token,
		userSvc:    services.User,
		companySvc: services.Company,
	}
}

// RegisterAuthRoutes sets up the authentication routes. Credential endpoints
// sit behind the stricter auth rate bucket; logout and me need the full guard.
func RegisterAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, authLimiter gin.HandlerFunc) {
	h := newAuthHandler(cfg, services)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", authLimiter, h.register)
		auth.POST("/verify", authLimiter, h.verifyEmail)
		auth.POST("/resend-code", authLimiter, h.resendCode)
		auth.POST("/login", authLimiter, h.login)
		auth.POST("/refresh", h.refresh)
	}

	session := r.Group("/api/v1/auth", middleware.AuthGuard(cfg, services.User))
	{
		session.POST("/logout", h.logout)
		session.GET("/me", h.me)
	}
}

// setAuthCookies installs both credentials as HTTP-only cookies. Production
// uses Secure + SameSite=None so the SPA can live on another origin; elsewhere
// Lax keeps plain-HTTP local development working.
func (h *authHandler) setAuthCookies(c *gin.Context, pair *domain.TokenPair) {
	if h.cfg.IsProduction {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(h.cfg.AccessTokenCookieName, pair.AccessToken,
		int(h.cfg.JWTExpiryDuration.Seconds()), "/", h.cfg.CookieDomain, h.cfg.IsProduction, true)
	c.SetCookie(h.cfg.RefreshTokenCookieName, pair.RefreshToken,
		int(h.cfg.RefreshTokenExpiryDuration.Seconds()), "/", h.cfg.CookieDomain, h.cfg.IsProduction, true)
}

// setAccessCookie replaces only the access token cookie after a refresh.
func (h *authHandler) setAccessCookie(c *gin.Context, accessToken string) {
	if h.cfg.IsProduction {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(h.cfg.AccessTokenCookieName, accessToken,
		int(h.cfg.JWTExpiryDuration.Seconds()), "/", h.cfg.CookieDomain, h.cfg.IsProduction, true)
}

// clearAuthCookies expires both credential cookies.
func (h *authHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie(h.cfg.AccessTokenCookieName, "", -1, "/", h.cfg.CookieDomain, h.cfg.IsProduction, true)
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, "/", h.cfg.CookieDomain, h.cfg.IsProduction, true)
}

// register godoc
// @Summary Register a company and its director
// @Description Creates the company and its DIRECTOR user, then emails a six digit verification code. Registering an unverified email again refreshes the code instead of failing.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration payload"
// @Success 201 {object} dto.Response{data=dto.UserResponse}
// @Failure 400 {object} map[string]any "Validation failure"
// @Failure 409 {object} map[string]any "Email already registered"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, dto.ToUserResponse(user))
}

// verifyEmail godoc
// @Summary Confirm a verification code
// @Description Activates the account and issues the first credential pair. The pair is set as HTTP-only cookies; the access token is duplicated in the body.
// @Tags auth
// @Accept json
// @Produce json
// @Param verify body dto.VerifyEmailRequest true "Email and six digit code"
// @Success 200 {object} dto.Response{data=dto.AuthResponse}
// @Failure 400 {object} map[string]any "Invalid or expired code"
// @Failure 409 {object} map[string]any "Already verified"
// @Router /auth/verify [post]
func (h *authHandler) verifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, pair, err := h.authSvc.VerifyEmail(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, pair)
	respondOK(c, dto.AuthResponse{
		User:        dto.ToUserResponse(user),
		AccessToken: pair.AccessToken,
		ExpiresAt:   pair.AccessExpiresAt,
	})
}

// resendCode godoc
// @Summary Resend a verification code
// @Description Issues a fresh code for a pending registration. The response is identical whether or not the address is known.
// @Tags auth
// @Accept json
// @Produce json
// @Param resend body dto.ResendCodeRequest true "Email"
// @Success 200 {object} dto.Response
// @Failure 400 {object} map[string]any "Validation failure"
// @Router /auth/resend-code [post]
func (h *authHandler) resendCode(c *gin.Context) {
	var req dto.ResendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if err := h.authSvc.ResendCode(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}

	// Same body whether or not the address maps to a pending account.
	respondOK(c, gin.H{"message": "if the address has a pending registration, a new code is on its way"})
}

// login godoc
// @Summary Log in with email and password
// @Description Authenticates and issues a credential pair as HTTP-only cookies plus a body copy of the access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.Response{data=dto.AuthResponse}
// @Failure 401 {object} map[string]any "Incorrect credentials or unverified email"
// @Failure 423 {object} map[string]any "Account locked"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, pair, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			// One message for unknown email and wrong password alike.
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "incorrect email or password"})
			return
		}
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, pair)
	respondOK(c, dto.AuthResponse{
		User:        dto.ToUserResponse(user),
		AccessToken: pair.AccessToken,
		ExpiresAt:   pair.AccessExpiresAt,
	})
}

// refresh godoc
// @Summary Refresh the access token
// @Description Mints a new access token from the refresh cookie. The refresh token itself is not rotated.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response{data=dto.RefreshResponse}
// @Failure 401 {object} map[string]any "Missing, expired or revoked refresh token"
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "missing refresh token",
			"code":    middleware.CodeTokenMissing,
		})
		return
	}

	accessToken, expiresAt, err := h.tokenSvc.RefreshAccess(c.Request.Context(), refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setAccessCookie(c, accessToken)
	respondOK(c, dto.RefreshResponse{AccessToken: accessToken, ExpiresAt: expiresAt})
}

// logout godoc
// @Summary Log out
// @Description Revokes every live refresh token of the caller and clears both credential cookies.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response
// @Failure 401 {object} map[string]any "Unauthenticated"
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), identity.UserID); err != nil {
		respondError(c, err)
		return
	}

	h.clearAuthCookies(c)
	respondOK(c, gin.H{"message": "logged out"})
}

// me godoc
// @Summary Current user and company
// @Description Returns the authenticated user together with their company.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Response{data=dto.MeResponse}
// @Failure 401 {object} map[string]any "Unauthenticated"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		return
	}

	user, err := h.userSvc.GetUserByID(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.MeResponse{User: dto.ToUserResponse(user)}
	company, err := h.companySvc.GetCompanyByID(c.Request.Context(), user.CompanyID)
	if err != nil {
		// The company row should always exist; log it and return the user alone.
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to load company for current user",
			slog.String("error", err.Error()),
			slog.String("company_id", user.CompanyID))
	} else {
		companyResp := dto.ToCompanyResponse(company)
		resp.Company = &companyResp
	}

	respondOK(c, resp)
}
