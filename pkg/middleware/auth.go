package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lexdesk/lexdesk/internal/config"
	"github.com/lexdesk/lexdesk/internal/sessions"
	"github.com/lexdesk/lexdesk/internal/tokens"
)

const identityKey = "attorney"

// AuthMiddleware verifies the Bearer token on every protected call and
// injects the resolved attorney identity into the request context. When a
// blacklist is configured, revoked tokens are rejected even if still within
// their expiry window.
func AuthMiddleware(cfg *config.Config, bl sessions.Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no authentication token, authorization denied"})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no authentication token, authorization denied"})
			return
		}

		if bl != nil {
			revoked, err := bl.IsRevoked(c.Request.Context(), raw)
			if err == nil && revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token is not valid"})
				return
			}
			// blacklist lookup errors fail open: token verification below
			// still gates the request
		}

		ident, err := tokens.Parse(cfg, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token is not valid"})
			return
		}

		c.Set(identityKey, ident)
		c.Set("rawToken", raw)
		c.Next()
	}
}

// IdentityFrom returns the verified identity set by AuthMiddleware.
func IdentityFrom(c *gin.Context) (*tokens.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	ident, ok := v.(*tokens.Identity)
	return ident, ok
}

// RawTokenFrom returns the bearer token string set by AuthMiddleware.
func RawTokenFrom(c *gin.Context) string {
	v, ok := c.Get("rawToken")
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
