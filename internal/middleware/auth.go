package middleware

import (
	"net/http"
	"strings"
	"tourbay_backend/internal/auth"
	"tourbay_backend/internal/logger"
	"tourbay_backend/internal/models"
	"tourbay_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware verifies the bearer token and rejects requests from
// suspended or banned accounts. The account check hits the users table
// so a block takes effect immediately, not at token expiry.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if db, ok := c.Get(string(contextkeys.DBContextKey)); ok {
			var user models.User
			err := db.(*gorm.DB).Select("status").First(&user, "id = ?", claims.UserID).Error
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
				return
			}
			if user.Blocked() {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is blocked"})
				return
			}
		}

		c.Set("userID", claims.UserID)
		c.Set("role", models.NormalizeRole(models.UserRole(claims.Role)))

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles allows the request through only when the caller's role is
// one of the given roles. Role synonyms are normalized on both sides.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[models.NormalizeRole(r)] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok {
			roleStr, isString := roleVal.(string)
			if !isString {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: invalid role type"})
				return
			}
			role = models.UserRole(roleStr)
		}

		if !roleSet[models.NormalizeRole(role)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
			return
		}

		c.Next()
	}
}

// GetUserID returns the authenticated user ID stored by AuthMiddleware,
// or an empty string for unauthenticated requests.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}
