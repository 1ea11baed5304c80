package approval

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(auth, middleware.RequireRole(middleware.RoleAdmin))
	{
		payrolls.POST("/:id/approve", handler.Approve)
		payrolls.POST("/:id/reject", handler.Reject)
	}
}
