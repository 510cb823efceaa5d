package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kushtati/TRANSG/internal/apperrors"
	"github.com/kushtati/TRANSG/internal/core/domain"
	portssvc "github.com/kushtati/TRANSG/internal/core/ports/services"
	"github.com/kushtati/TRANSG/internal/platform/config"
	"github.com/kushtati/TRANSG/internal/utils"
)

// 401 sub-codes, so the frontend can tell "refresh and retry" apart from
// "log in again" apart from "this account has a problem".
const (
	CodeTokenMissing      = "TOKEN_MISSING"
	CodeTokenExpired      = "TOKEN_EXPIRED"
	CodeTokenInvalid      = "TOKEN_INVALID"
	CodeAccountNotFound   = "ACCOUNT_NOT_FOUND"
	CodeAccountDisabled   = "ACCOUNT_DISABLED"
	CodeAccountUnverified = "ACCOUNT_UNVERIFIED"
)

// AuthGuard creates a Gin middleware handler that validates the access
// credential, sourced from the cookie first with a bearer-header fallback.
// Claims are not trusted for account state: the user is re-fetched on every
// request, so a deactivation takes effect before the token expires.
func AuthGuard(cfg *config.Config, userSvc portssvc.UserSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString := accessTokenFrom(c, cfg.AccessTokenCookieName)
		if tokenString == "" {
			abortUnauthorized(c, CodeTokenMissing, "authentication required")
			return
		}

		claims, err := utils.ParseAccessJWT(tokenString, cfg.JWTSecret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortUnauthorized(c, CodeTokenExpired, "access token expired")
				return
			}
			logger.Warn("invalid access token", slog.String("error", err.Error()))
			abortUnauthorized(c, CodeTokenInvalid, "invalid access token")
			return
		}
		if claims.Subject == "" {
			abortUnauthorized(c, CodeTokenInvalid, "invalid access token")
			return
		}

		user, err := userSvc.GetUserByID(c.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				abortUnauthorized(c, CodeAccountNotFound, "account not found")
				return
			}
			logger.Error("failed to load user during auth", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "internal server error",
			})
			return
		}
		if !user.Verified {
			abortUnauthorized(c, CodeAccountUnverified, "email not verified")
			return
		}
		if !user.IsActive {
			abortUnauthorized(c, CodeAccountDisabled, "account disabled")
			return
		}

		identity := domain.Identity{
			UserID:    user.UserID,
			CompanyID: user.CompanyID,
			Role:      user.Role,
			Email:     user.Email,
			Name:      user.Name,
		}

		// Store the identity and a user-enriched logger in both contexts.
		enrichedLogger := logger.With(slog.String("user_id", identity.UserID))
		ctx := context.WithValue(c.Request.Context(), identityKey, identity)
		ctx = context.WithValue(ctx, loggerKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(identityKey), identity)
		c.Set(string(loggerKey), enrichedLogger)

		c.Next()
	}
}

// accessTokenFrom pulls the access credential from the named cookie, falling
// back to an Authorization bearer header for non-cookie clients.
func accessTokenFrom(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, code string, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
		"code":    code,
	})
}
