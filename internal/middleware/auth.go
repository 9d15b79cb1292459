package middleware

import (
	"strings"
	"time"

	"rhello_flow_backend/internal/config"
	"rhello_flow_backend/internal/model"
	"rhello_flow_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware valida o token Bearer e injeta as claims no contexto.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(parts[1], cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// RoleMiddleware restringe a rota aos papéis informados.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		util.Forbidden(c)
		c.Abort()
	}
}

// UserActivityRepo registra o último acesso do usuário autenticado.
type UserActivityRepo interface {
	TouchLastSeen(userID uint, at time.Time) error
}

// ActivityMiddleware atualiza last_seen de forma assíncrona, sem bloquear a requisição.
func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := util.GetUserFromContext(c); claims != nil {
			go func(userID uint) {
				_ = repo.TouchLastSeen(userID, time.Now())
			}(claims.UserID)
		}
		c.Next()
	}
}
