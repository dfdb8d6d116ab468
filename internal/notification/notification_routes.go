package notification

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	r.GET("/employees/:numeric_id/notifications",
		middleware.RBACAuthorize(rbacService, "notification", "read"),
		h.ListForEmployee,
	)
	r.GET("/employees/:numeric_id/notifications/unread-count",
		middleware.RBACAuthorize(rbacService, "notification", "read"),
		h.UnreadCount,
	)

	notifications := r.Group("/notifications")
	{
		notifications.PATCH("/:id/read", middleware.RBACAuthorize(rbacService, "notification", "update"), h.MarkRead)
		notifications.POST("", middleware.RBACAuthorize(rbacService, "notification", "create"), h.Notify)
		notifications.POST("/broadcast",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "notification", "broadcast"),
			h.Broadcast,
		)
	}
}
