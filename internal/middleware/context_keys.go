package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kushtati/TRANSG/internal/core/domain"
)

// identityKey is the key used to store the authenticated identity in the
// request context. Using a custom type prevents collisions.
const identityKey = contextKey("identity")

// GetIdentityFromContext retrieves the authenticated identity from the Gin
// context. It returns the identity and a boolean indicating if it was found.
func GetIdentityFromContext(c *gin.Context) (domain.Identity, bool) {
	if v, exists := c.Get(string(identityKey)); exists {
		if identity, ok := v.(domain.Identity); ok {
			return identity, true
		}
	}
	// check the request context as well
	if v := c.Request.Context().Value(identityKey); v != nil {
		if identity, ok := v.(domain.Identity); ok {
			return identity, true
		}
	}
	return domain.Identity{}, false
}
