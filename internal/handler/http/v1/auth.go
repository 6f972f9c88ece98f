package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/config"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/models"
)

const actorContextKey = "actor"

// JWTAuthMiddleware authenticates requests via a Bearer token and attaches
// the resulting Actor to the gin context. Token issuance happens elsewhere;
// this layer only consumes the authenticated identity and role.
func JWTAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Warn("Missing bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication token required"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			log.WithError(err).Warn("Invalid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		sub, _ := claims["sub"].(string)
		actorID, err := uuid.Parse(sub)
		if err != nil {
			log.Warn("Token subject is not a valid user id")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
			return
		}

		role := models.RoleUser
		if r, _ := claims["role"].(string); r == string(models.RoleAdmin) {
			role = models.RoleAdmin
		}

		c.Set(actorContextKey, models.Actor{ID: actorID, Role: role})
		c.Next()
	}
}

// actorFrom returns the authenticated actor set by the middleware.
func actorFrom(c *gin.Context) models.Actor {
	actor, _ := c.Get(actorContextKey)
	a, _ := actor.(models.Actor)
	return a
}
