package analytics

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	summaries := r.Group("/payroll-summaries")
	summaries.Use(auth, middleware.RequireRole(middleware.RoleAdmin))
	{
		summaries.GET("/monthly", handler.GetMonthlySummary)
	}
}
