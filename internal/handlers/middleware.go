package handlers

import (
	"net/http"
	"strings"

	"blogserver/internal/service"

	"github.com/gin-gonic/gin"
)

// Context key for the verified identity set by identityMiddleware.
const identityKey = "identity"

// identityMiddleware gates mutating routes: it requires a well-formed
// Bearer token, verifies it, and attaches the resolved identity to the
// request context. The downstream handler is never invoked on rejection,
// and the middleware itself performs no data-store access.
func (h *Handler) identityMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	ident, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(identityKey, ident)
	c.Next()
}

// identityFromContext retrieves what identityMiddleware stored. The bool is
// false only when a protected handler runs without the middleware, which is
// a wiring bug.
func identityFromContext(c *gin.Context) (service.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return service.Identity{}, false
	}
	ident, ok := v.(service.Identity)
	return ident, ok
}
