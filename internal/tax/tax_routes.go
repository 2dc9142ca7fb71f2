package tax

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	r.POST("/tax/estimate", middleware.RBACAuthorize(rbacService, "tax", "estimate"), handler.Estimate)

	declarations := r.Group("/tax-declarations")
	{
		declarations.GET("", middleware.RBACAuthorize(rbacService, "tax", "declare"), handler.GetAll)
		declarations.GET("/:id", middleware.RBACAuthorize(rbacService, "tax", "declare"), handler.GetByID)
		declarations.GET("/:id/estimate", middleware.RBACAuthorize(rbacService, "tax", "declare"), handler.OfficialEstimate)
		declarations.POST("", middleware.RBACAuthorize(rbacService, "tax", "declare"), handler.Create)
		declarations.PUT("/:id", middleware.RBACAuthorize(rbacService, "tax", "declare"), handler.Update)
		declarations.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "tax", "declare"), handler.Submit)
		declarations.POST("/:id/verify", middleware.RBACAuthorize(rbacService, "tax", "verify"), handler.Verify)
		declarations.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "tax", "verify"), handler.Reject)
	}
}
