package middleware

import (
	"go-attendance/internal/domain"
	"go-attendance/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by anything that can answer an EnforceRequest.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ContextRole)
		if !ok {
			abortWith(c, apperror.ErrUnauthorized, "missing auth context")
			return
		}

		req := domain.EnforceRequest{
			EmployeeID: c.GetString(ContextEmployeeID),
			Role:       role.(string),
			Resource:   resource,
			Action:     action,
		}

		allowed, err := service.Enforce(req)
		if err != nil {
			abortWith(c, apperror.ErrInternal, nil)
			return
		}

		if !allowed {
			abortWith(c, apperror.ErrForbidden, gin.H{"required": req.Permission()})
			return
		}
		c.Next()
	}
}
