package attendance

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	attendances := r.Group("/attendances")
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.List)
		attendances.POST("/check-in", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.CheckIn)
		attendances.POST("/check-out", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.CheckOut)
		attendances.POST("/reminders", middleware.RBACAuthorize(rbacService, "attendance", "remind"), h.SendReminders)
	}
}
