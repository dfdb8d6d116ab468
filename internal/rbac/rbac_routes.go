package rbac

import (
	"go-attendance/internal/domain"
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	group := r.Group("/rbac")
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/policies", middleware.RBACAuthorize(service, "rbac", "read"), handler.ListPolicies)
		group.POST("/reload",
			middleware.RoleMiddleware(domain.RoleAdmin),
			middleware.RBACAuthorize(service, "rbac", "manage"),
			handler.Reload,
		)
	}
}
