package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/warit-s/acadpay-api/internal/middleware"
	"github.com/warit-s/acadpay-api/internal/models"
	"github.com/warit-s/acadpay-api/internal/service"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// actorFromContext converts verified claims into the explicit caller
// context the workflow service operates on.
func actorFromContext(c *gin.Context) service.Actor {
	claims := claimsFromContext(c)
	if claims == nil {
		return service.Actor{}
	}
	return service.Actor{
		Username: claims.Username,
		FullName: claims.FullName,
		Role:     claims.Role,
	}
}
