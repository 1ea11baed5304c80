package rateconfig

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	rates := r.Group("/rate-configs")
	rates.Use(auth, middleware.RequireRole(middleware.RoleAdmin))
	{
		rates.GET("", handler.GetAll)
		rates.GET("/:employee_id", handler.GetByEmployee)
		rates.PUT("/:employee_id", middleware.RateLimitByUser(0.5, 2), handler.Upsert)
	}
}
