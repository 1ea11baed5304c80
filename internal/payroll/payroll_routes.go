package payroll

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payrolls := r.Group("/payrolls")
	payrolls.Use(auth)
	{
		payrolls.GET("", handler.GetAll)
		payrolls.GET("/:id", handler.GetByID)
		payrolls.GET("/:id/breakdown", handler.GetBreakdown)
		payrolls.GET("/:id/payslip", handler.DownloadPayslip)
		if redisClient != nil {
			payrolls.POST(
				"/calculate",
				middleware.RequireRole(middleware.RoleAdmin),
				middleware.Idempotency(redisClient),
				handler.Calculate,
			)
		} else {
			payrolls.POST("/calculate", middleware.RequireRole(middleware.RoleAdmin), handler.Calculate)
		}
	}
}
