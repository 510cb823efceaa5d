package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kushtati/TRANSG/internal/core/domain"
)

// RequireRole rejects identities below the minimum role. Roles are
// hierarchical, so requiring ACCOUNTANT admits the DIRECTOR as well.
func RequireRole(min domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentityFromContext(c)
		if !ok {
			abortUnauthorized(c, CodeTokenMissing, "authentication required")
			return
		}
		if !identity.Role.AtLeast(min) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

// DirectorOnly admits only the DIRECTOR role.
func DirectorOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleDirector)
}

// Accounting admits DIRECTOR and ACCOUNTANT: the roles allowed to touch the
// ledger.
func Accounting() gin.HandlerFunc {
	return RequireRole(domain.RoleAccountant)
}

// Operations admits DIRECTOR, ACCOUNTANT and AGENT: the roles allowed to run
// shipment operations.
func Operations() gin.HandlerFunc {
	return RequireRole(domain.RoleAgent)
}
