package credits

import (
	"car-marketplace-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup) {
	h := NewHandler()

	// Public operations route; the mobile client sends userId in the body,
	// mirroring the hosted-function call it replaces.
	r.POST("/credits/operations", h.Operations)

	// Protected wallet routes
	auth := r.Group("/credits")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/balance", h.Balance)
	}
}
