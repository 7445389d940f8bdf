package payroll

import (
	"go-erp/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payrolls := r.Group("/payrolls")
	{
		payrolls.GET("", handler.GetAll)
		payrolls.GET("/:id", handler.GetById)
		if redisClient != nil {
			payrolls.POST("/generate-monthly", middleware.Idempotency(redisClient), handler.GenerateMonthly)
			payrolls.POST("/generate-from-approved", middleware.Idempotency(redisClient), handler.GenerateFromApproved)
		} else {
			payrolls.POST("/generate-monthly", handler.GenerateMonthly)
			payrolls.POST("/generate-from-approved", handler.GenerateFromApproved)
		}
	}
}
