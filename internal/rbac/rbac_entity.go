package rbac

import "go-attendance/internal/domain"

const Wildcard = "*"

// RolePermission grants a role an action on a resource. Wildcard matches anything.
type RolePermission struct {
	Role     string `gorm:"primaryKey;size:32"`
	Resource string `gorm:"primaryKey;size:64"`
	Action   string `gorm:"primaryKey;size:32"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

// DefaultPermissions is seeded when role_permissions is empty.
var DefaultPermissions = []RolePermission{
	{Role: domain.RoleAdmin, Resource: Wildcard, Action: Wildcard},

	{Role: domain.RoleEmployee, Resource: "leave", Action: "create"},
	{Role: domain.RoleEmployee, Resource: "leave", Action: "read"},
	{Role: domain.RoleEmployee, Resource: "leave_ledger", Action: "read"},
	{Role: domain.RoleEmployee, Resource: "notification", Action: "read"},
	{Role: domain.RoleEmployee, Resource: "notification", Action: "update"},
	{Role: domain.RoleEmployee, Resource: "employee", Action: "read"},
	{Role: domain.RoleEmployee, Resource: "employee", Action: "update"},
	{Role: domain.RoleEmployee, Resource: "holiday", Action: "read"},
	{Role: domain.RoleEmployee, Resource: "settings", Action: "read"},
	{Role: domain.RoleEmployee, Resource: "attendance", Action: "create"},
	{Role: domain.RoleEmployee, Resource: "attendance", Action: "read"},
}
