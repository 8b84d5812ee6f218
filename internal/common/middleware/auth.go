package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authmodels "loyalty-platform-backend/internal/features/auth/models"
	authservice "loyalty-platform-backend/internal/features/auth/service"
	usermodels "loyalty-platform-backend/internal/features/user/models"
)

const sessionKey = "session"

// Auth resolves the Authorization bearer token into a session and stores it
// in the request context. Requests without a token pass through unauthenticated;
// role gates decide what is actually reachable.
func Auth(auth authservice.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}

		session, err := auth.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate session"})
			return
		}
		if session != nil {
			c.Set(sessionKey, session)
		}

		c.Next()
	}
}

// RequireRole admits only authenticated callers whose role is in allowed.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: authentication required"})
			return
		}

		for _, role := range allowed {
			if session.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient role"})
	}
}

// RequireAdmin admits ADMIN and SUPERADMIN callers.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(usermodels.RoleAdmin, usermodels.RoleSuperadmin)
}

// RequireSuperadmin admits only SUPERADMIN callers.
func RequireSuperadmin() gin.HandlerFunc {
	return RequireRole(usermodels.RoleSuperadmin)
}

// GetSession returns the authenticated session or nil.
func GetSession(c *gin.Context) *authmodels.Session {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil
	}
	session, ok := value.(*authmodels.Session)
	if !ok {
		return nil
	}
	return session
}

func extractBearer(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
