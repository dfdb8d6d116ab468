package leavelifecycle

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	leaves := r.Group("/leave-requests")
	{
		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), h.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "approve"), h.Reject)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "delete"), h.Delete)
	}
}
