package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campus-hub/school-service/internal/auth"
	"github.com/campus-hub/school-service/internal/models"
)

// AuthMiddleware verifies bearer identity tokens. Token verification happens
// before any role or ownership gate and before any entity logic; the caller
// only ever sees a generic unauthenticated rejection.
type AuthMiddleware struct {
	tokens *auth.TokenManager
}

func NewAuthMiddleware(tokens *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (am *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthenticated(c)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			unauthenticated(c)
			return
		}

		claims, err := am.tokens.Verify(parts[1])
		if err != nil {
			// Expired and invalid tokens get the same boundary answer.
			unauthenticated(c)
			return
		}

		c.Set("user_id", claims.UserID())
		c.Set("username", claims.Username)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// RequireRole allows the request through only when the verified caller role
// is in the allowed set.
func (am *AuthMiddleware) RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, callerRole, ok := currentIdentity(c)
		if !ok {
			unauthenticated(c)
			return
		}

		for _, role := range roles {
			if callerRole == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Insufficient role"})
		c.Abort()
	}
}

func unauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthenticated"})
	c.Abort()
}
