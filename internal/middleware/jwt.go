package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"EPI_monitor/internal/auth"
	"EPI_monitor/internal/models"
)

type JWTMiddleware struct {
	jwtService *auth.JWTService
	db         *gorm.DB
}

func NewJWTMiddleware(jwtService *auth.JWTService, db *gorm.DB) *JWTMiddleware {
	return &JWTMiddleware{
		jwtService: jwtService,
		db:         db,
	}
}

func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			c.Abort()
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			slog.Warn("Invalid token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// Проверяем что пользователь существует
		var user models.User
		if err := m.db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		// Добавляем данные в контекст
		c.Set("user_id", claims.UserID)
		c.Set("user_login", claims.Login)
		c.Set("user_role", claims.Role)
		c.Set("user", &user)
		c.Set("claims", claims)

		c.Next()
	}
}

func (m *JWTMiddleware) extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if bearerToken != "" {
		tokenParts := strings.Split(bearerToken, " ")
		if len(tokenParts) == 2 && strings.ToLower(tokenParts[0]) == "bearer" {
			return tokenParts[1]
		}
	}
	return ""
}
