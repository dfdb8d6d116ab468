package middleware

import (
	"context"

	"go-attendance/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextEmployeeID = "employee_id"
	ContextRole       = "role"
)

// Actor is the caller as currently stored, looked up on every request.
type Actor struct {
	NumericID string
	Role      string
}

type ActorResolver interface {
	ResolveActor(ctx context.Context, employeeID uuid.UUID) (Actor, error)
}

func IsAdmin(c *gin.Context) bool {
	return c.GetString(ContextRole) == domain.RoleAdmin
}

// CanAccessEmployee reports whether the caller may read data owned by numericID.
func CanAccessEmployee(c *gin.Context, numericID string) bool {
	if IsAdmin(c) {
		return true
	}
	actor := c.GetString(ContextEmployeeID)
	return actor != "" && actor == numericID
}
