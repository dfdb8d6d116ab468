package ledger

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	employees := r.Group("/employees/:numeric_id")
	{
		employees.GET("/leave-days", middleware.RBACAuthorize(rbacService, "leave_ledger", "read"), h.TotalDays)
		employees.GET("/leave-ledger", middleware.RBACAuthorize(rbacService, "leave_ledger", "read"), h.ListForEmployee)
	}
}
