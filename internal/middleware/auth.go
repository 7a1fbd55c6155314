package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akuprof/fleetmanager/internal/redis"
)

const sessionContextKey = "session"

// AuthMiddleware returns middleware that resolves the bearer token to a
// session and attaches it to the request context. Requests without a valid
// session are rejected.
func AuthMiddleware(sessions redis.SessionStoreInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		session, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			return
		}
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// RequireRole returns middleware that rejects sessions whose role is not in
// the allowed set. Must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		session := SessionFromContext(c)
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		if _, ok := allowed[session.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// SessionFromContext returns the session attached by AuthMiddleware, or nil.
func SessionFromContext(c *gin.Context) *redis.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, _ := v.(*redis.Session)
	return session
}

// BearerTokenFromContext returns the raw bearer token on the request.
func BearerTokenFromContext(c *gin.Context) string {
	return bearerToken(c.GetHeader("Authorization"))
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
