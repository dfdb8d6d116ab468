package policy

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	holidays := r.Group("/holidays")
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, "holiday", "read"), h.ListHolidays)
		holidays.POST("", middleware.RBACAuthorize(rbacService, "holiday", "create"), h.CreateHoliday)
		holidays.POST("/expire", middleware.RBACAuthorize(rbacService, "holiday", "update"), h.ExpireHolidays)
		holidays.PUT("/:id", middleware.RBACAuthorize(rbacService, "holiday", "update"), h.UpdateHoliday)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, "holiday", "delete"), h.DeleteHoliday)
	}

	settings := r.Group("/settings")
	{
		settings.GET("/working-hours", middleware.RBACAuthorize(rbacService, "settings", "read"), h.GetWorkingHours)
		settings.PUT("/working-hours", middleware.RBACAuthorize(rbacService, "settings", "update"), h.UpdateWorkingHours)
		settings.GET("/attendance-rules", middleware.RBACAuthorize(rbacService, "settings", "read"), h.GetAttendanceRules)
		settings.PUT("/attendance-rules", middleware.RBACAuthorize(rbacService, "settings", "update"), h.UpdateAttendanceRules)
	}

	r.POST("/announcements/vacation",
		middleware.RateLimitByUser(0.2, 2),
		middleware.RBACAuthorize(rbacService, "announcement", "create"),
		h.AnnounceVacation,
	)
}
