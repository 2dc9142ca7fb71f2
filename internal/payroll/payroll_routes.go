package payroll

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}
	idempotent := middleware.Idempotency(redisClient)

	payrolls := r.Group("/payrolls")
	{
		payrolls.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetAll)
		payrolls.GET("/register.xlsx", middleware.RBACAuthorize(rbacService, "payroll", "export"), handler.ExportRegister)
		payrolls.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetByID)
		payrolls.GET("/:id/payslip", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.DownloadPayslip)

		payrolls.POST("/process", middleware.RBACAuthorize(rbacService, "payroll", "process"), idempotent, handler.ProcessPeriod)
		payrolls.POST("/pay-batch", middleware.RBACAuthorize(rbacService, "payroll", "pay"), idempotent, handler.PayBatch)
		payrolls.POST("/:id/adjustments", middleware.RBACAuthorize(rbacService, "payroll", "adjust"), handler.AddAdjustment)
		payrolls.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "payroll", "approve"), handler.Approve)
		payrolls.POST("/:id/revoke", middleware.RBACAuthorize(rbacService, "payroll", "approve"), handler.Revoke)
		payrolls.POST("/:id/pay", middleware.RBACAuthorize(rbacService, "payroll", "pay"), idempotent, handler.Pay)
		payrolls.POST("/:id/notify", middleware.RBACAuthorize(rbacService, "payroll", "notify"), handler.ResendNotification)
	}
}
