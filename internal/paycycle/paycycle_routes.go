package paycycle

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	cycles := r.Group("/pay-cycles")
	cycles.Use(auth)
	{
		cycles.GET("", handler.Get)
		cycles.PUT("", middleware.RequireRole(middleware.RoleAdmin), handler.Configure)
	}
}
