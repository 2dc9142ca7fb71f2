package attendance

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	attendances := r.Group("/attendances")
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.ListMonth)
		attendances.GET("/me", middleware.RBACAuthorize(rbacService, "attendance", "clock"), h.ListMine)
		attendances.GET("/lop", middleware.RBACAuthorize(rbacService, "attendance", "lop"), h.ResolveLOP)
		attendances.POST("/clock-in", middleware.RBACAuthorize(rbacService, "attendance", "clock"), h.ClockIn)
		attendances.POST("/clock-out", middleware.RBACAuthorize(rbacService, "attendance", "clock"), h.ClockOut)
		attendances.PUT("/days", middleware.RBACAuthorize(rbacService, "attendance", "manage"), h.MarkDay)
	}
}
