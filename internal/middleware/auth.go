package middleware

import (
	"net/http"
	"strings"

	"anoa.com/presensisekolah/internal/entity"
	"anoa.com/presensisekolah/internal/token"
	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	issuer *token.Issuer
}

func NewAuthMiddleware(issuer *token.Issuer) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer}
}

// RequireAuth admits a request only with a valid bearer access token. The
// token is the sole source of identity: the store is never consulted, so a
// deactivated account keeps its access until the token expires.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		// Bearer header is the only accepted transport.
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := m.issuer.VerifyAccessToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid/Expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("user_email", claims.Email)
		c.Set("user_nama", claims.Nama)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// RequireAdmin restricts a route to admin roles, based on the role claim set
// by RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			c.Abort()
			return
		}

		if !entity.IsAdminRole(role.(string)) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Akses khusus admin"})
			c.Abort()
			return
		}

		c.Next()
	}
}
