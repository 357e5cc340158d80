package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"homestead/server/internal/models"
)

const (
	ctxActorID   = "actorID"
	ctxActorRole = "actorRole"
)

// Middleware validates the Bearer token and stores the acting party's
// id and role on the request context.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required",
			})
			return
		}

		partyID, role, err := m.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(ctxActorID, partyID)
		c.Set(ctxActorRole, role)
		c.Next()
	}
}

// RequireRole rejects requests whose token carries none of the given
// roles. Must run after Middleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorRole := ActorRole(c)
		for _, r := range roles {
			if actorRole == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Access denied",
		})
	}
}

// ActorID returns the authenticated party id, or "" outside Middleware.
func ActorID(c *gin.Context) string {
	return c.GetString(ctxActorID)
}

// ActorRole returns the authenticated role, or "" outside Middleware.
func ActorRole(c *gin.Context) models.Role {
	if v, ok := c.Get(ctxActorRole); ok {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return ""
}
